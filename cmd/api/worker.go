package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/company-directory-go/internal/pkg/email"
	"github.com/cmlabs-hris/company-directory-go/internal/service/notification"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
)

var workerConcurrency int

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Process queued emails",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required to run the worker")
		}

		emailService, err := email.NewEmailService(cfg.SMTP)
		if err != nil {
			return fmt.Errorf("failed to initialize email service: %w", err)
		}

		mux := asynq.NewServeMux()
		notification.RegisterHandlers(mux, emailService)

		srv := asynq.NewServer(redisOpt(cfg), asynq.Config{
			Queues:      map[string]int{notification.QueueMail: 1},
			Concurrency: workerConcurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				slog.Error("task failed", "type", task.Type(), "error", err)
			}),
		})

		slog.Info("worker starting", "redis", cfg.Redis.Addr, "concurrency", workerConcurrency)
		// Run blocks until SIGINT or SIGTERM.
		return srv.Run(mux)
	},
}

func init() {
	workerCmd.Flags().IntVar(&workerConcurrency, "concurrency", 5, "number of emails sent in parallel")
}
