package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/tutorhive/tutorhive-api/internal/constants"
	"github.com/tutorhive/tutorhive-api/internal/entity"
	"github.com/tutorhive/tutorhive-api/internal/infra/queue"
)

type SubmitLeadUseCase struct {
	Repo         entity.LeadRepositoryInterface
	SettingsRepo entity.SettingsRepositoryInterface
	Captcha      CaptchaVerifier
	RateLimiter  *RateLimiter
	Queue        NotificationProducerInterface
	EmailService EmailService
	Defaults     entity.Settings
}

func NewSubmitLeadUseCase(
	repo entity.LeadRepositoryInterface,
	settingsRepo entity.SettingsRepositoryInterface,
	captcha CaptchaVerifier,
	rateLimiter *RateLimiter,
	producer NotificationProducerInterface,
	emailService EmailService,
	defaults entity.Settings,
) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{
		Repo:         repo,
		SettingsRepo: settingsRepo,
		Captcha:      captcha,
		RateLimiter:  rateLimiter,
		Queue:        producer,
		EmailService: emailService,
		Defaults:     defaults,
	}
}

// Execute runs the public submission pipeline: captcha, rate limit, field
// validation, durable write, then best-effort notifications.
//
// For join submissions the caller is expected to have taken the email through
// a successful verification check first; this use case trusts that and does
// not re-verify. Success is judged by persistence alone; notification
// failures never fail the submission.
func (uc *SubmitLeadUseCase) Execute(ctx context.Context, input SubmitLeadInput) (*SubmitLeadOutput, error) {
	if input.CaptchaToken == "" || !uc.Captcha.Verify(ctx, input.CaptchaToken) {
		return nil, &DomainError{
			Code:    "CAPTCHA_FAILED",
			Message: "captcha verification failed",
		}
	}

	if !uc.RateLimiter.Allow(ctx, input.ClientIP+":submit", constants.SubmitLimit, constants.SubmitWindow) {
		return nil, &DomainError{
			Code:    "RATE_LIMIT_EXCEEDED",
			Message: "too many requests, try again later",
		}
	}

	validationErrors := ValidateSubmitLeadInput(input)
	if len(validationErrors) > 0 {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: joinValidationErrors(validationErrors),
		}
	}

	lead := buildLead(input)

	if err := uc.Repo.Create(ctx, lead); err != nil {
		// Tracking IDs are short and human-shareable, so collisions happen.
		// One regenerate-and-retry before giving up.
		if errors.Is(err, entity.ErrDuplicateTrackingID) {
			lead.TrackingID = entity.NewTrackingID(lead.Kind)
			err = uc.Repo.Create(ctx, lead)
		}
		if err != nil {
			return nil, &TechnicalError{
				Code:    "DATABASE_ERROR",
				Message: "failed to persist lead request: " + err.Error(),
			}
		}
	}

	// The record is durable; notifications are fire-and-forget from here.
	go uc.notify(lead)

	return &SubmitLeadOutput{
		ID:         lead.ID,
		TrackingID: lead.TrackingID,
		Status:     lead.Status,
		Msg:        "Request received. We will get back to you soon.",
	}, nil
}

func buildLead(input SubmitLeadInput) *entity.Lead {
	lead := entity.NewLead(entity.LeadKind(input.Kind), input.Name, input.Email, input.Phone)
	lead.Meta = input.Meta

	if lead.Kind == entity.KindJoin {
		payload := &entity.JoinPayload{Role: input.Role}
		if input.Role == "student" {
			payload.Student = &entity.StudentDetails{
				Grade:    input.Grade,
				Board:    input.Board,
				Subjects: input.Subjects,
			}
		} else {
			payload.Teacher = &entity.TeacherDetails{
				Qualification: input.Qualification,
				Experience:    input.Experience,
				Subjects:      input.Subjects,
			}
		}
		lead.Join = payload
	} else {
		lead.Contact = &entity.ContactPayload{
			Subject: input.Subject,
			Message: input.Message,
		}
	}

	return lead
}

func (uc *SubmitLeadUseCase) notify(lead *entity.Lead) {
	ctx := context.Background()

	settings, err := uc.SettingsRepo.GetOrCreate(ctx, uc.Defaults)
	if err != nil {
		settings = &uc.Defaults
	}

	payload := queue.NotificationPayload{
		LeadID:     lead.ID,
		Kind:       string(lead.Kind),
		TrackingID: lead.TrackingID,
		Name:       lead.Name,
		Email:      lead.Email,
		FromEmail:  settings.FromEmail,
		AdminEmail: settings.AdminEmail,
	}

	if uc.Queue != nil {
		if err := uc.Queue.PublishNotification(ctx, payload); err == nil {
			return
		} else {
			log.Printf("⚠️ queue publish failed for lead %s, sending directly: %v", lead.ID, err)
		}
	}

	// Queue unavailable: degrade to direct sends. Failures are logged and
	// swallowed, the submission already succeeded.
	if uc.EmailService == nil {
		return
	}

	adminSubject := "New " + string(lead.Kind) + " request: " + lead.Name
	adminBody := "<p>A new " + string(lead.Kind) + " request arrived from <strong>" + lead.Name +
		"</strong> (" + lead.Email + ").</p><p>Reference: " + lead.TrackingID + "</p>"
	if err := uc.EmailService.Send(settings.FromEmail, settings.AdminEmail, adminSubject, adminBody); err != nil {
		log.Printf("⚠️ admin notification failed for lead %s: %v", lead.ID, err)
	}

	ackBody := "<p>Hi " + lead.Name + ",</p><p>Thanks for reaching out. Your reference number is <strong>" +
		lead.TrackingID + "</strong>.</p>"
	if err := uc.EmailService.Send(settings.FromEmail, lead.Email, "We received your request", ackBody); err != nil {
		log.Printf("⚠️ acknowledgement email failed for lead %s: %v", lead.ID, err)
	}
}
