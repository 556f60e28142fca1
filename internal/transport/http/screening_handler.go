package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "dealpulse/internal/errors"
	"dealpulse/internal/repository"
	"dealpulse/pkg/contracts/domain"
)

// ScreeningHandler exposes target screening over HTTP
type ScreeningHandler struct {
	service ScreeningService
	logger  *slog.Logger
}

// NewScreeningHandler creates a screening handler
func NewScreeningHandler(service ScreeningService, logger *slog.Logger) *ScreeningHandler {
	return &ScreeningHandler{
		service: service,
		logger:  logger.With(slog.String("component", "screening_handler")),
	}
}

// Routes returns the screening routes
func (h *ScreeningHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/targets", h.SearchTargets)
	r.Get("/companies/{id}/deals", h.TransactionHistory)
	r.Post("/tags", h.Tag)
	r.Get("/watchlist", h.Watchlist)
	r.Post("/watchlist", h.Watch)
	r.Delete("/watchlist/{id}", h.Unwatch)
	r.Get("/keywords/trending", h.TrendingKeywords)
	return r
}

// SearchTargets handles GET /api/screening/targets
func (h *ScreeningHandler) SearchTargets(w http.ResponseWriter, r *http.Request) {
	filter, err := screeningFilterFromQuery(r)
	if err != nil {
		apierrors.WriteError(w, apierrors.ErrValidation("query", err.Error()))
		return
	}

	companies, err := h.service.SearchTargets(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "target search failed", slog.String("error", err.Error()))
		apierrors.WriteError(w, apierrors.FromDomain(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, companies)
}

// TransactionHistory handles GET /api/screening/companies/{id}/deals
func (h *ScreeningHandler) TransactionHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, apierrors.ErrValidation("id", "company id is required"))
		return
	}

	deals, err := h.service.TransactionHistory(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, apierrors.FromDomain(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, deals)
}

// TagRequest is the POST /api/screening/tags body
type TagRequest struct {
	CompanyIDs []string `json:"company_ids"`
	Tag        string   `json:"tag"`
}

// Bind implements render.Binder
func (req *TagRequest) Bind(r *http.Request) error {
	return nil
}

// Tag handles POST /api/screening/tags
func (h *ScreeningHandler) Tag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := render.Bind(r, &req); err != nil {
		apierrors.WriteError(w, apierrors.ErrInvalidRequest)
		return
	}
	if len(req.CompanyIDs) == 0 {
		apierrors.WriteError(w, apierrors.ErrValidation("company_ids", "at least one company id is required"))
		return
	}
	if strings.TrimSpace(req.Tag) == "" {
		apierrors.WriteError(w, apierrors.ErrValidation("tag", "tag is required"))
		return
	}

	if err := h.service.Tag(r.Context(), req.CompanyIDs, req.Tag); err != nil {
		apierrors.WriteError(w, apierrors.FromDomain(err))
		return
	}

	render.Status(r, http.StatusNoContent)
	render.NoContent(w, r)
}

// WatchRequest is the POST /api/screening/watchlist body
type WatchRequest struct {
	Owner      string `json:"owner"`
	EntityID   string `json:"entity_id"`
	EntityKind string `json:"entity_kind"`
	EntityName string `json:"entity_name"`
	Notes      string `json:"notes"`
}

// Bind implements render.Binder
func (req *WatchRequest) Bind(r *http.Request) error {
	return nil
}

// Watch handles POST /api/screening/watchlist
func (h *ScreeningHandler) Watch(w http.ResponseWriter, r *http.Request) {
	var req WatchRequest
	if err := render.Bind(r, &req); err != nil {
		apierrors.WriteError(w, apierrors.ErrInvalidRequest)
		return
	}
	if req.Owner == "" || req.EntityID == "" {
		apierrors.WriteError(w, apierrors.ErrValidation("owner", "owner and entity_id are required"))
		return
	}

	entry := &domain.WatchlistEntry{
		Owner:      req.Owner,
		EntityID:   req.EntityID,
		EntityKind: domain.EntityKind(req.EntityKind),
		EntityName: req.EntityName,
		Notes:      req.Notes,
		AddedAt:    time.Now().UTC(),
	}

	id, err := h.service.Watch(r.Context(), entry)
	if err != nil {
		apierrors.WriteError(w, apierrors.FromDomain(err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]string{"id": id})
}

// Watchlist handles GET /api/screening/watchlist
func (h *ScreeningHandler) Watchlist(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")

	entries, err := h.service.Watchlist(r.Context(), owner)
	if err != nil {
		apierrors.WriteError(w, apierrors.FromDomain(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, entries)
}

// Unwatch handles DELETE /api/screening/watchlist/{id}
func (h *ScreeningHandler) Unwatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, apierrors.ErrValidation("id", "watchlist entry id is required"))
		return
	}

	if err := h.service.Unwatch(r.Context(), id); err != nil {
		apierrors.WriteError(w, apierrors.FromDomain(err))
		return
	}

	render.Status(r, http.StatusNoContent)
	render.NoContent(w, r)
}

// TrendingKeywords handles GET /api/screening/keywords/trending
func (h *ScreeningHandler) TrendingKeywords(w http.ResponseWriter, r *http.Request) {
	window := 30 * 24 * time.Hour
	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			apierrors.WriteError(w, apierrors.ErrValidation("days", "days must be a positive integer"))
			return
		}
		window = time.Duration(days) * 24 * time.Hour
	}

	counts, err := h.service.TrendingKeywords(r.Context(), window)
	if err != nil {
		apierrors.WriteError(w, apierrors.FromDomain(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, counts)
}

func screeningFilterFromQuery(r *http.Request) (repository.ScreeningFilter, error) {
	q := r.URL.Query()
	filter := repository.ScreeningFilter{
		Index: q.Get("index"),
		Limit: 100,
	}
	if v := q.Get("industries"); v != "" {
		filter.Industries = splitCSV(v)
	}
	if v := q.Get("geographies"); v != "" {
		filter.Geographies = splitCSV(v)
	}
	if v := q.Get("tags"); v != "" {
		filter.Tags = splitCSV(v)
	}
	var err error
	if filter.MinRevenue, err = floatParam(q.Get("min_revenue")); err != nil {
		return filter, err
	}
	if filter.MaxRevenue, err = floatParam(q.Get("max_revenue")); err != nil {
		return filter, err
	}
	if filter.MinMarketCap, err = floatParam(q.Get("min_market_cap")); err != nil {
		return filter, err
	}
	if filter.MaxMarketCap, err = floatParam(q.Get("max_market_cap")); err != nil {
		return filter, err
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return filter, errInvalidLimit
		}
		filter.Limit = limit
	}
	return filter, nil
}

var errInvalidLimit = &paramError{"limit must be a positive integer"}

type paramError struct{ msg string }

func (e *paramError) Error() string { return e.msg }

func floatParam(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &paramError{"numeric filter values must be valid numbers"}
	}
	return &v, nil
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
