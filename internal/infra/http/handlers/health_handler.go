package handlers

import (
	"context"
	"net/http"
	"time"
)

const (
	depHealthy       = "healthy"
	depConfigured    = "configured"
	depNotConfigured = "not configured"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type BrokerStatus interface {
	Healthy() bool
}

// HealthHandler: Postgres e RabbitMQ são checados ativamente; OpenAI e SMTP
// só informam se estão configurados, e não degradam o status.
type HealthHandler struct {
	DB          Pinger
	RabbitMQ    BrokerStatus
	AIEnabled   bool
	MailEnabled bool
	StartTime   time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db Pinger, rabbitMQ BrokerStatus, aiEnabled, mailEnabled bool) *HealthHandler {
	return &HealthHandler{
		DB:          db,
		RabbitMQ:    rabbitMQ,
		AIEnabled:   aiEnabled,
		MailEnabled: mailEnabled,
		StartTime:   time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := map[string]string{
		"database": h.checkDB(r.Context()),
		"rabbitmq": h.checkBroker(),
		"openai":   configured(h.AIEnabled),
		"smtp":     configured(h.MailEnabled),
	}

	status, code := "healthy", http.StatusOK
	for _, v := range deps {
		if v != depHealthy && v != depConfigured && v != depNotConfigured {
			status, code = "degraded", http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, code, HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	})
}

func (h *HealthHandler) checkDB(ctx context.Context) string {
	if h.DB == nil {
		return depNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		return "unhealthy: " + err.Error()
	}
	return depHealthy
}

func (h *HealthHandler) checkBroker() string {
	switch {
	case h.RabbitMQ == nil:
		return depNotConfigured
	case h.RabbitMQ.Healthy():
		return depHealthy
	default:
		return "unhealthy: connection closed"
	}
}

func configured(ok bool) string {
	if ok {
		return depConfigured
	}
	return depNotConfigured
}
