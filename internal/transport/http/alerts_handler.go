package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "dealpulse/internal/errors"
	"dealpulse/pkg/contracts/domain"
)

// AlertsHandler manages alert rule CRUD over HTTP
type AlertsHandler struct {
	service  RuleService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewAlertsHandler creates an alerts handler
func NewAlertsHandler(service RuleService, logger *slog.Logger) *AlertsHandler {
	return &AlertsHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With(slog.String("component", "alerts_handler")),
	}
}

// Routes returns the alert rule routes
func (h *AlertsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/", h.ListRules)
	r.Post("/", h.CreateRule)
	r.Delete("/{id}", h.DeactivateRule)
	return r
}

// CreateRuleRequest is the POST /api/alerts body
type CreateRuleRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=200"`
	Owner     string   `json:"owner" validate:"required,min=1,max=200"`
	Keywords  []string `json:"keywords"`
	Industry  string   `json:"industry"`
	Geography string   `json:"geography"`
	MinValue  *float64 `json:"min_value" validate:"omitempty,gte=0"`
	Index     string   `json:"index"`
}

// Bind implements render.Binder
func (req *CreateRuleRequest) Bind(r *http.Request) error {
	return nil
}

// RuleResponse wraps a created rule id
type RuleResponse struct {
	ID string `json:"id"`
}

// ListRules handles GET /api/alerts
func (h *AlertsHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	rules, err := h.service.ListRules(r.Context(), activeOnly)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list rules failed", slog.String("error", err.Error()))
		apierrors.WriteError(w, apierrors.FromDomain(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, rules)
}

// CreateRule handles POST /api/alerts
func (h *AlertsHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req CreateRuleRequest
	if err := render.Bind(r, &req); err != nil {
		apierrors.WriteError(w, apierrors.ErrInvalidRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		apierrors.WriteError(w, apierrors.NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", err.Error()))
		return
	}

	rule := &domain.AlertRule{
		Name:      req.Name,
		Owner:     req.Owner,
		Keywords:  req.Keywords,
		Industry:  req.Industry,
		Geography: req.Geography,
		MinValue:  req.MinValue,
		Index:     req.Index,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}

	id, err := h.service.AddRule(r.Context(), rule)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "create rule failed", slog.String("error", err.Error()))
		apierrors.WriteError(w, apierrors.FromDomain(err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, &RuleResponse{ID: id})
}

// DeactivateRule handles DELETE /api/alerts/{id}
func (h *AlertsHandler) DeactivateRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, apierrors.ErrValidation("id", "rule id is required"))
		return
	}

	if err := h.service.DeactivateRule(r.Context(), id); err != nil {
		h.logger.ErrorContext(r.Context(), "deactivate rule failed",
			slog.String("rule_id", id),
			slog.String("error", err.Error()))
		apierrors.WriteError(w, apierrors.FromDomain(err))
		return
	}

	render.Status(r, http.StatusNoContent)
	render.NoContent(w, r)
}
