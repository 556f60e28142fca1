package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "dealpulse/internal/errors"
	"dealpulse/pkg/contracts/domain"
)

// IngestHandler exposes batch ingestion over HTTP
type IngestHandler struct {
	service IngestService
	maxRows int
	logger  *slog.Logger
}

// NewIngestHandler creates an ingest handler
func NewIngestHandler(service IngestService, maxRows int, logger *slog.Logger) *IngestHandler {
	return &IngestHandler{
		service: service,
		maxRows: maxRows,
		logger:  logger.With(slog.String("component", "ingest_handler")),
	}
}

// Routes returns the ingestion routes
func (h *IngestHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Post("/", h.IngestBatch)
	return r
}

// IngestBatchRequest is the POST /api/ingest body
type IngestBatchRequest struct {
	Source string              `json:"source"`
	Rows   []map[string]string `json:"rows"`
}

// Bind implements render.Binder
func (req *IngestBatchRequest) Bind(r *http.Request) error {
	return nil
}

// IngestBatch handles POST /api/ingest
func (h *IngestHandler) IngestBatch(w http.ResponseWriter, r *http.Request) {
	var req IngestBatchRequest
	if err := render.Bind(r, &req); err != nil {
		apierrors.WriteError(w, apierrors.ErrInvalidRequest)
		return
	}

	source := domain.SourceType(req.Source)
	if !source.Valid() {
		apierrors.WriteError(w, apierrors.ErrValidation("source", "unknown source type"))
		return
	}
	if len(req.Rows) == 0 {
		apierrors.WriteError(w, apierrors.ErrValidation("rows", "at least one row is required"))
		return
	}
	if h.maxRows > 0 && len(req.Rows) > h.maxRows {
		apierrors.WriteError(w, apierrors.ErrValidation("rows", "batch exceeds the maximum row count"))
		return
	}

	report, err := h.service.IngestBatch(r.Context(), source, req.Rows)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "ingest failed", slog.String("error", err.Error()))
		apierrors.WriteError(w, apierrors.FromDomain(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, report)
}
