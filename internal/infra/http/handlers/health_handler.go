package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
)

type HealthHandler struct {
	DB             *mongo.Database
	RabbitMQ       *amqp091.Connection
	CaptchaEnabled bool
	StartTime      time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db *mongo.Database, rabbitMQ *amqp091.Connection, captchaEnabled bool) *HealthHandler {
	return &HealthHandler{
		DB:             db,
		RabbitMQ:       rabbitMQ,
		CaptchaEnabled: captchaEnabled,
		StartTime:      time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.Client().Ping(ctx, nil); err != nil {
			deps["mongodb"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["mongodb"] = "healthy"
		}
	} else {
		deps["mongodb"] = "not configured"
	}

	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	if h.CaptchaEnabled {
		deps["captcha"] = "configured"
	} else {
		deps["captcha"] = "not configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}
