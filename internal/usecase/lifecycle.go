package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tutorhive/tutorhive-api/internal/entity"
)

// LeadLifecycleUseCase covers the admin dashboard operations on a lead:
// status transitions, notes, outbound email, deletion.
//
// Every mutation is a read-then-write against a single document with no
// optimistic concurrency token, so two concurrent admin edits can overwrite
// each other (last write wins). Accepted for a low-concurrency internal tool.
type LeadLifecycleUseCase struct {
	Repo         entity.LeadRepositoryInterface
	SettingsRepo entity.SettingsRepositoryInterface
	EmailService EmailService
	Defaults     entity.Settings
}

func NewLeadLifecycleUseCase(
	repo entity.LeadRepositoryInterface,
	settingsRepo entity.SettingsRepositoryInterface,
	emailService EmailService,
	defaults entity.Settings,
) *LeadLifecycleUseCase {
	return &LeadLifecycleUseCase{
		Repo:         repo,
		SettingsRepo: settingsRepo,
		EmailService: emailService,
		Defaults:     defaults,
	}
}

var errLeadNotFound = &DomainError{Code: "NOT_FOUND", Message: "lead request not found"}

// List returns the full set for a kind, newest first. Search, filtering and
// re-sorting are the caller's responsibility.
func (uc *LeadLifecycleUseCase) List(ctx context.Context, kind entity.LeadKind) ([]*entity.Lead, error) {
	leads, err := uc.Repo.FindAll(ctx, kind)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to list lead requests"}
	}
	return leads, nil
}

func (uc *LeadLifecycleUseCase) Get(ctx context.Context, kind entity.LeadKind, id string) (*entity.Lead, error) {
	lead, err := uc.Repo.FindByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, errLeadNotFound
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to load lead request"}
	}
	return lead, nil
}

func (uc *LeadLifecycleUseCase) UpdateStatus(ctx context.Context, kind entity.LeadKind, id, newStatus string) (*entity.Lead, error) {
	if !entity.IsValidStatus(newStatus) {
		return nil, &DomainError{
			Code:    "INVALID_STATUS",
			Message: fmt.Sprintf("status must be one of: %s, %s, %s", entity.StatusPending, entity.StatusAccepted, entity.StatusDeclined),
		}
	}

	entry := entity.HistoryEntry{
		Action:      "status_change",
		Details:     fmt.Sprintf("Status changed to %s", newStatus),
		PerformedBy: "Admin",
		Timestamp:   time.Now(),
	}

	return uc.applyStatus(ctx, kind, id, "status", newStatus, entry)
}

func (uc *LeadLifecycleUseCase) UpdateTeleCallingStatus(ctx context.Context, kind entity.LeadKind, id, newStatus string) (*entity.Lead, error) {
	if !entity.IsValidTeleCallingStatus(newStatus) {
		return nil, &DomainError{
			Code:    "INVALID_STATUS",
			Message: "tele-calling status is not one of the allowed values",
		}
	}

	entry := entity.HistoryEntry{
		Action:      "tele_calling_status_change",
		Details:     fmt.Sprintf("Tele-calling status changed to %s", newStatus),
		PerformedBy: "Admin",
		Timestamp:   time.Now(),
	}

	return uc.applyStatus(ctx, kind, id, "teleCallingStatus", newStatus, entry)
}

func (uc *LeadLifecycleUseCase) applyStatus(ctx context.Context, kind entity.LeadKind, id, field, newStatus string, entry entity.HistoryEntry) (*entity.Lead, error) {
	lead, err := uc.Repo.UpdateStatus(ctx, kind, id, field, newStatus, entry)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, errLeadNotFound
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update lead request"}
	}
	return lead, nil
}

func (uc *LeadLifecycleUseCase) AddNote(ctx context.Context, kind entity.LeadKind, id, content string) (*entity.Lead, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &DomainError{Code: "EMPTY_NOTE", Message: "note content must not be empty"}
	}

	note := entity.Note{Content: content, CreatedAt: time.Now()}
	lead, err := uc.Repo.AppendNote(ctx, kind, id, note)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, errLeadNotFound
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to add note"}
	}
	return lead, nil
}

// SendEmail dispatches to the lead's address, then records the subject in the
// history. The two steps run through the transaction helper so a failed send
// leaves no history entry; a failed append after a successful send cannot be
// compensated (email is not unsendable) and surfaces as an error instead.
func (uc *LeadLifecycleUseCase) SendEmail(ctx context.Context, kind entity.LeadKind, id, subject, body string) error {
	if strings.TrimSpace(subject) == "" {
		return &DomainError{Code: "VALIDATION_ERROR", Message: "validation failed: subject (is required)"}
	}

	lead, err := uc.Get(ctx, kind, id)
	if err != nil {
		return err
	}

	from := uc.Defaults.FromEmail
	if settings, err := uc.SettingsRepo.GetOrCreate(ctx, uc.Defaults); err == nil {
		from = settings.FromEmail
	}

	entry := entity.HistoryEntry{
		Action:      "email_sent",
		Details:     fmt.Sprintf("Email sent: %s", subject),
		PerformedBy: "Admin",
		Timestamp:   time.Now(),
	}

	txn := NewTransaction()
	txn.AddOperation("send_email", func(ctx context.Context) error {
		return uc.EmailService.Send(from, lead.Email, subject, body)
	})
	txn.AddOperation("append_history", func(ctx context.Context) error {
		return uc.Repo.AppendHistory(ctx, kind, id, entry)
	})

	if err := txn.Execute(ctx); err != nil {
		return &TechnicalError{Code: "EMAIL_ERROR", Message: err.Error()}
	}

	return nil
}

// Delete is a hard delete. No tombstone, no undo.
func (uc *LeadLifecycleUseCase) Delete(ctx context.Context, kind entity.LeadKind, id string) error {
	if err := uc.Repo.Delete(ctx, kind, id); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return errLeadNotFound
		}
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to delete lead request"}
	}
	return nil
}
