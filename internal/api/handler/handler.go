// Package handler wires the HTTP surface to the application services. The
// view layer is an external collaborator: every route reads user intent,
// calls one component and re-renders from the resulting state.
package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"complainthub/backend/internal/auth"
	"complainthub/backend/internal/complaint"
	"complainthub/backend/internal/config"
	"complainthub/backend/internal/eventhub"
	"complainthub/backend/internal/logging"
	"complainthub/backend/internal/models"
	"complainthub/backend/internal/session"
)

// Notifier receives complaint lifecycle notifications. Telegram in
// production; nil disables notifications.
type Notifier interface {
	ComplaintCreated(c models.Complaint)
	ComplaintResolved(c models.Complaint)
}

// Handler holds every dependency the routes need.
type Handler struct {
	Auth     *auth.Service
	Repo     *complaint.Repository
	State    *session.State
	Hub      *eventhub.Hub
	Notifier Notifier
	Cfg      config.Config

	log *logging.Logger
}

// New builds the handler.
func New(authSvc *auth.Service, repo *complaint.Repository, state *session.State, hub *eventhub.Hub, notifier Notifier, cfg config.Config, log *logging.Logger) *Handler {
	return &Handler{
		Auth:     authSvc,
		Repo:     repo,
		State:    state,
		Hub:      hub,
		Notifier: notifier,
		Cfg:      cfg,
		log:      log,
	}
}

// Routes registers all endpoints on r.
func (h *Handler) Routes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/auth/login", h.Login)
		api.POST("/auth/register", h.Register)
		api.POST("/auth/logout", h.RequireAuth(), h.Logout)
		api.GET("/session", h.Session)

		api.GET("/complaints", h.ListComplaints)
		api.POST("/complaints", h.CreateComplaint)
		api.GET("/complaints/:id", h.GetComplaint)
		api.PATCH("/complaints/:id", h.RequireAuth(), h.RequireAdmin(), h.UpdateComplaint)

		api.POST("/uploads", h.UploadImage)
		api.GET("/stats", h.GetStats)
	}

	r.GET("/ws", h.ServeEvents)
	r.Static("/uploads", h.Cfg.UploadDir)
}

// simulate sleeps for the configured canned delay. Once started it always
// completes; there is no cancellation path.
func (h *Handler) simulate(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
