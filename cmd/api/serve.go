package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/company-directory-go/internal/config"
	"github.com/cmlabs-hris/company-directory-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/company-directory-go/internal/handler/http"
	"github.com/cmlabs-hris/company-directory-go/internal/pkg/email"
	companyService "github.com/cmlabs-hris/company-directory-go/internal/service/company"
	employeeService "github.com/cmlabs-hris/company-directory-go/internal/service/employee"
	"github.com/cmlabs-hris/company-directory-go/internal/service/file"
	"github.com/cmlabs-hris/company-directory-go/internal/service/notification"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
)

var serveSeed bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveSeed, "seed", false, "load the demo directory before serving (memory driver only)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if serveSeed {
		if st.db != nil {
			return errors.New("--seed only applies to STORE_DRIVER=memory, use the seed command")
		}
		result, err := fixtures.Seed(ctx, st.companies, st.employees)
		if err != nil {
			return err
		}
		slog.Info("demo directory loaded", "companies", result.Companies, "employees", result.Employees)
	}

	fileStorage, storageDir, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}

	var enqueuer notification.Enqueuer
	if cfg.Mail.Dispatch == config.MailDispatchQueue {
		client := asynq.NewClient(redisOpt(cfg))
		defer client.Close()
		enqueuer = client
	}

	notifier := notification.NewCompanyCreatedNotifier(notification.Config{
		Recipient: cfg.Mail.Recipient,
		Dispatch:  cfg.Mail.Dispatch,
	}, emailService, enqueuer)

	fileService := file.NewFileService(fileStorage)
	companySvc := companyService.NewCompanyService(st.companies, fileService, notifier)
	employeeSvc := employeeService.NewEmployeeService(st.employees, st.companies)

	router := appHTTP.NewRouter(
		slog.Default(),
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
			StorageDir:     storageDir,
			StorageURL:     cfg.Storage.BaseURL,
		},
		appHTTP.NewCompanyHandler(companySvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "store", cfg.Database.Driver, "storage", cfg.Storage.Type, "mail_dispatch", cfg.Mail.Dispatch)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func redisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
}
