package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/company-directory-go/internal/domain/company"
	"github.com/cmlabs-hris/company-directory-go/internal/pkg/email"
	"github.com/hibiken/asynq"
)

const (
	// DispatchSync sends the email inside the request that created the company.
	DispatchSync = "sync"
	// DispatchQueue enqueues the email for the worker process.
	DispatchQueue = "queue"

	TypeCompanyCreated = "mail:company_created"
	QueueMail          = "mail"
)

// Enqueuer is the part of *asynq.Client used for queued dispatch.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// CompanyCreatedPayload is the queued form of a company created email.
type CompanyCreatedPayload struct {
	Recipient string                   `json:"recipient"`
	Company   email.CompanyCreatedData `json:"company"`
}

type Config struct {
	// Recipient receives every company created email. Empty disables sending.
	Recipient string
	// Dispatch is DispatchSync or DispatchQueue.
	Dispatch string
}

type companyCreatedNotifier struct {
	cfg      Config
	mailer   email.EmailService
	enqueuer Enqueuer
}

// NewCompanyCreatedNotifier returns the notifier told about new companies.
// enqueuer may be nil unless cfg.Dispatch is DispatchQueue.
func NewCompanyCreatedNotifier(cfg Config, mailer email.EmailService, enqueuer Enqueuer) company.CreatedNotifier {
	return &companyCreatedNotifier{
		cfg:      cfg,
		mailer:   mailer,
		enqueuer: enqueuer,
	}
}

// CompanyCreated implements company.CreatedNotifier. Failures are logged and
// never reach the caller.
func (n *companyCreatedNotifier) CompanyCreated(ctx context.Context, c company.Company) {
	if n.cfg.Recipient == "" {
		return
	}

	payload := CompanyCreatedPayload{
		Recipient: n.cfg.Recipient,
		Company:   NewCompanyCreatedData(c),
	}

	if n.cfg.Dispatch == DispatchQueue && n.enqueuer != nil {
		if err := n.enqueue(ctx, payload); err != nil {
			slog.Error("failed to enqueue company created email", "company_id", c.ID, "error", err)
		}
		return
	}

	if err := n.mailer.SendCompanyCreated(ctx, payload.Recipient, payload.Company); err != nil {
		slog.Error("failed to send company created email", "company_id", c.ID, "error", err)
	}
}

func (n *companyCreatedNotifier) enqueue(ctx context.Context, payload CompanyCreatedPayload) error {
	task, err := NewCompanyCreatedTask(payload)
	if err != nil {
		return err
	}
	info, err := n.enqueuer.EnqueueContext(ctx, task, asynq.Queue(QueueMail), asynq.MaxRetry(0))
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeCompanyCreated, err)
	}
	slog.Info("company created email queued", "company_id", payload.Company.ID, "task_id", info.ID)
	return nil
}

// NewCompanyCreatedData flattens c into the email template data.
func NewCompanyCreatedData(c company.Company) email.CompanyCreatedData {
	data := email.CompanyCreatedData{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
	if c.Email != nil {
		data.Email = *c.Email
	}
	if c.Website != nil {
		data.Website = *c.Website
	}
	if c.Logo != nil {
		data.Logo = *c.Logo
	}
	return data
}

func NewCompanyCreatedTask(payload CompanyCreatedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", TypeCompanyCreated, err)
	}
	return asynq.NewTask(TypeCompanyCreated, body), nil
}

// CompanyCreatedHandler delivers queued company created emails.
type CompanyCreatedHandler struct {
	mailer email.EmailService
}

func NewCompanyCreatedHandler(mailer email.EmailService) *CompanyCreatedHandler {
	return &CompanyCreatedHandler{mailer: mailer}
}

func (h *CompanyCreatedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload CompanyCreatedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		slog.Error("failed to unmarshal company created payload", "error", err)
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	slog.Info("processing company created email", "company_id", payload.Company.ID, "to", payload.Recipient)
	if err := h.mailer.SendCompanyCreated(ctx, payload.Recipient, payload.Company); err != nil {
		return fmt.Errorf("send company created email: %w", err)
	}
	return nil
}

// RegisterHandlers wires every mail task handler into mux.
func RegisterHandlers(mux *asynq.ServeMux, mailer email.EmailService) {
	mux.Handle(TypeCompanyCreated, NewCompanyCreatedHandler(mailer))
}
