// Package http exposes editing sessions over a JSON API.
package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/facadeworks/facade-workbench/internal/logging"
	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
	"github.com/facadeworks/facade-workbench/internal/workbench/schema"
	"github.com/facadeworks/facade-workbench/internal/workbench/service"
)

// Handler bundles the dependencies for workbench HTTP endpoints.
type Handler struct {
	wb  *service.Workbench
	res *schema.Resolver
}

func New(wb *service.Workbench, res *schema.Resolver) *Handler {
	return &Handler{wb: wb, res: res}
}

// session resolves the :session_id parameter, writing the error response
// itself when it fails.
func (h *Handler) session(c *gin.Context) (*service.Session, bool) {
	s, err := h.wb.Session(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		writeError(c, "get_session", err)
		return nil, false
	}
	return s, true
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrEntityNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrRevisionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDocumentParse):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownAttribute),
		errors.Is(err, domain.ErrUnknownVariant),
		errors.Is(err, domain.ErrInvalidOption):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrStaleResponse):
		return http.StatusConflict
	case errors.Is(err, service.ErrSessionClosed):
		return http.StatusGone
	case errors.Is(err, service.ErrArchiveDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, operation string, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		logging.NewLogger(c.Request.Context()).LogError(operation, err)
	}
	c.JSON(status, gin.H{"ok": false, "error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
