package diagnostic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/futig/eco-advisor/internal/entity"
	"github.com/futig/eco-advisor/internal/pkg/chart"
	"github.com/futig/eco-advisor/internal/pkg/formatter"
	"github.com/futig/eco-advisor/internal/pkg/logger"
	"github.com/futig/eco-advisor/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// maxBodySize caps questionnaire payloads.
const maxBodySize = 64 << 10

type Handler struct {
	usecase    DiagnosticUsecase
	formatters *formatter.Factory
}

func NewHandler(usecase DiagnosticUsecase) *Handler {
	return &Handler{
		usecase:    usecase,
		formatters: formatter.NewFactory(),
	}
}

// GetQuestionnaire handles GET /questionnaire - Question definitions
func (h *Handler) GetQuestionnaire(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetQuestionnaire")
	ctxzap.Debug(ctx, "serving questionnaire")

	response.Success(w, toQuestionnaireDTO(h.usecase.Questions()))
}

// CreateDiagnostic handles POST /diagnostics - Score answers and fetch advice
func (h *Handler) CreateDiagnostic(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateDiagnostic")

	q, ok := h.decodeQuestionnaire(ctx, w, r)
	if !ok {
		return
	}

	d, err := h.usecase.Diagnose(ctx, q)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "diagnostic created",
		zap.String("diagnostic_id", d.ID),
		zap.Bool("advice_ok", d.Advice.OK()),
	)

	response.Success(w, toDiagnosticDTO(d))
}

// CreateReport handles POST /diagnostics/report - Downloadable report
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateReport")

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatMarkdown)
	}

	format := entity.ResultFormat(formatParam)
	if !format.IsValid() {
		ctxzap.Warn(ctx, "invalid format parameter", zap.String("format", formatParam))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid format parameter",
			fmt.Errorf("%w: format must be one of: markdown, docx, pdf", entity.ErrInvalidFormat))
		return
	}

	ctx = logger.AddFields(ctx, zap.String("format", string(format)))

	fmtr, err := h.formatters.Create(format)
	if err != nil {
		h.respondError(ctx, w, http.StatusNotImplemented, "format not implemented", err)
		return
	}

	q, ok := h.decodeQuestionnaire(ctx, w, r)
	if !ok {
		return
	}

	d, err := h.usecase.Diagnose(ctx, q)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	report, err := fmtr.Format(d)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to format result", err)
		return
	}

	ctxzap.Info(ctx, "report generated",
		zap.String("diagnostic_id", d.ID),
		zap.Int("bytes", len(report)),
	)

	response.Attachment(w, fmtr.ContentType(), formatter.Filename(d, fmtr), report)
}

// CreateCharts handles POST /diagnostics/charts - Bar and radar charts of the scores
func (h *Handler) CreateCharts(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateCharts")

	q, ok := h.decodeQuestionnaire(ctx, w, r)
	if !ok {
		return
	}

	scores, err := h.usecase.Score(ctx, q)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	page, err := chart.HTML(scores)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to render charts", err)
		return
	}

	ctxzap.Info(ctx, "charts rendered", zap.Int("total", scores.Total()))

	w.Header().Set("Content-Type", chart.ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}

func (h *Handler) decodeQuestionnaire(ctx context.Context, w http.ResponseWriter, r *http.Request) (*entity.Questionnaire, bool) {
	var q entity.Questionnaire
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&q); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return nil, false
	}
	return &q, true
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Error(err))
	}
	response.Error(w, status, message, err)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrIncompleteInput) {
		h.respondError(ctx, w, http.StatusBadRequest, "questionnaire is incomplete", err)
	} else if errors.Is(err, entity.ErrInvalidLabel) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid answer", err)
	} else if errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrInvalidFormat) || errors.Is(err, entity.ErrMissingField) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
