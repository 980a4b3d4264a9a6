package learner_progress_handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/IT-Nick/tutorbot/internal/domain/dto"
	"github.com/IT-Nick/tutorbot/internal/domain/model"
	httpError "github.com/IT-Nick/tutorbot/pkg/http"
	"go.uber.org/zap"
)

// ProgressSource собирает отчет о прогрессе ученика
type ProgressSource interface {
	LearnerProgress(ctx context.Context, telegramID int64) (*dto.LearnerProgressResponse, error)
}

// LearnerProgressHandler структура для обработчика GET /learners/{id}/progress
type LearnerProgressHandler struct {
	reports ProgressSource
	log     *zap.Logger
}

// NewLearnerProgressHandler создает новый экземпляр обработчика
func NewLearnerProgressHandler(reports ProgressSource, log *zap.Logger) *LearnerProgressHandler {
	return &LearnerProgressHandler{reports: reports, log: log}
}

// ServeHTTP метод для обработки запроса
func (h *LearnerProgressHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	telegramID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid learner id")
		return
	}

	report, err := h.reports.LearnerProgress(r.Context(), telegramID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			httpError.ErrorResponse(w, http.StatusNotFound, fmt.Sprintf("Learner %d not found", telegramID))
			return
		}
		h.log.Error("failed to build learner progress", zap.Int64("telegram_id", telegramID), zap.Error(err))
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate report")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		h.log.Error("failed to encode learner progress", zap.Error(err))
	}
}
