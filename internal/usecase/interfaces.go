package usecase

import (
	"context"

	"github.com/tutorhive/tutorhive-api/internal/infra/queue"
)

// CaptchaVerifier fails closed: any transport or parsing problem reads as an
// invalid token.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) bool
}

type EmailService interface {
	Send(from, to, subject, html string) error
}

type NotificationProducerInterface interface {
	PublishNotification(ctx context.Context, payload queue.NotificationPayload) error
}
