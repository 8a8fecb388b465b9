package audit

import (
	"log/slog"
	"net/http"

	"github.com/bakeryhq/bakery-admin/internal/api"
)

const defaultListLimit = 100

type Handler struct {
	repo   AuditRepo
	logger *slog.Logger
}

func NewHandler(repo AuditRepo, logger *slog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// GetAuditLogs godoc
// @Summary      List audit logs
// @Description  Returns the most recent audit log entries, newest first.
// @Tags         AuditLogs
// @Produce      json
// @Success      200 {object} map[string]interface{} "Audit log entries"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Security     BearerAuth
// @Router       /api/audit-logs [get]
func (h *Handler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetAuditLogs"))

	entries, err := h.repo.ListRecent(ctx, defaultListLimit)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch audit logs", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch audit logs")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   entries,
	})
}
