package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/creator-deals/internal/infra/http/middleware"
)

type RouterConfig struct {
	Health      *HealthHandler
	Outreach    *OutreachHandler
	Brand       *BrandHandler
	Campaign    *CampaignHandler
	Creator     *CreatorHandler
	CORSOrigins []string
	// AILimiter limita as rotas de geração. nil desliga.
	AILimiter *RateLimiter
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(chimw.Timeout(90 * time.Second))

	if cfg.Health != nil {
		r.Get("/healthz", cfg.Health.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())

	if o := cfg.Outreach; o != nil {
		r.Route("/outreaches", func(r chi.Router) {
			r.Post("/", o.Start)
			r.Get("/", o.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", o.Get)
				r.Delete("/", o.Delete)
				r.Patch("/drafts", o.UpdateDrafts)
				r.Post("/emails/{number}/send", o.SendEmail)
				r.Post("/actions/{action}", o.Transition)
				r.Put("/auto-send", o.SetAutoSend)
				r.Post("/proposal/send", o.SendProposal)

				r.Group(func(r chi.Router) {
					if cfg.AILimiter != nil {
						r.Use(cfg.AILimiter.Middleware)
					}
					r.Post("/generate/emails", o.GenerateEmails)
					r.Post("/generate/proposal", o.GenerateProposal)
				})
			})
		})
	}

	if b := cfg.Brand; b != nil {
		r.Route("/brands", func(r chi.Router) {
			r.Post("/", b.Create)
			r.Get("/", b.List)
			r.Get("/{id}", b.Get)
			r.Put("/{id}", b.Update)
			r.Delete("/{id}", b.Delete)
			r.Patch("/{id}/stage", b.MoveStage)
		})
	}

	if c := cfg.Campaign; c != nil {
		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", c.Create)
			r.Get("/", c.List)
			r.Get("/{id}", c.Get)
			r.Patch("/{id}/status", c.UpdateStatus)
			r.Post("/{id}/deliverables", c.AddDeliverable)
		})
		r.Patch("/deliverables/{id}/status", c.UpdateDeliverableStatus)
		r.Post("/deliverables/{id}/posted", c.MarkPosted)
	}

	if cr := cfg.Creator; cr != nil {
		r.Put("/creators/{id}/profile", cr.SaveProfile)
		r.Get("/creators/{id}/profile", cr.GetProfile)
	}

	return r
}
