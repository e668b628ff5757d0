package queue

import (
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

type EmailSender interface {
	Send(from, to, subject, html string) error
}

// Worker drains the notification queue and hands each payload to the mail
// collaborator. Notification delivery is best-effort by contract: the lead is
// already persisted by the time anything lands here, so failures are logged
// and dead-lettered, never propagated back to the submitter.
type Worker struct {
	Channel *amqp.Channel
	Mailer  EmailSender
}

func NewWorker(ch *amqp.Channel, mailer EmailSender) *Worker {
	return &Worker{
		Channel: ch,
		Mailer:  mailer,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload NotificationPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] malformed message, dropping: %s", err)
				d.Nack(false, false)
				continue
			}

			if err := w.process(payload); err != nil {
				log.Printf("❌ [WORKER] notification failed for lead %s: %s", payload.LeadID, err)
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] notifications sent for lead %s (%s)", payload.LeadID, payload.TrackingID)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] notification worker waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) process(payload NotificationPayload) error {
	adminSubject := fmt.Sprintf("New %s request: %s (%s)", payload.Kind, payload.Name, payload.TrackingID)
	adminBody := fmt.Sprintf(
		"<p>A new %s request arrived from <strong>%s</strong> (%s).</p><p>Reference: %s</p>",
		payload.Kind, payload.Name, payload.Email, payload.TrackingID,
	)

	if err := w.Mailer.Send(payload.FromEmail, payload.AdminEmail, adminSubject, adminBody); err != nil {
		return fmt.Errorf("admin notice: %w", err)
	}

	ackSubject := "We received your request"
	ackBody := fmt.Sprintf(
		"<p>Hi %s,</p><p>Thanks for reaching out. Your reference number is <strong>%s</strong>. Our team will contact you shortly.</p>",
		payload.Name, payload.TrackingID,
	)

	if err := w.Mailer.Send(payload.FromEmail, payload.Email, ackSubject, ackBody); err != nil {
		return fmt.Errorf("submitter ack: %w", err)
	}

	return nil
}
