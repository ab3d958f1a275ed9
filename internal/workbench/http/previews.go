package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
)

func (h *Handler) refreshPreview(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	st, err := s.RefreshPreview(c.Request.Context(), domain.EntityID(c.Param("entity_id")))
	if err != nil {
		writeError(c, "refresh_preview", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "preview": st})
}

func (h *Handler) refreshWindPreview(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	st, err := s.RefreshWindPreview(c.Request.Context())
	if err != nil {
		writeError(c, "refresh_wind_preview", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "preview": st})
}

func (h *Handler) refreshFigures(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	report, err := s.RefreshFigures(c.Request.Context())
	if err != nil {
		writeError(c, "refresh_figures", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "figures": report})
}

func (h *Handler) report(c *gin.Context) {
	summary, _ := strconv.ParseBool(c.DefaultQuery("summary", "false"))
	s, ok := h.session(c)
	if !ok {
		return
	}
	r, err := s.GenerateReport(c.Request.Context(), summary)
	if err != nil {
		writeError(c, "generate_report", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", r.Filename))
	c.Data(http.StatusOK, r.ContentType, r.Data)
}

func (h *Handler) previewSummary(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	html, err := s.PreviewSummary(c.Request.Context())
	if err != nil {
		writeError(c, "preview_summary", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// schema answers the attribute list of an entity kind and variant, e.g.
// /schema/frame?variant=Regular&variant=Aluminum+Only.
func (h *Handler) schema(c *gin.Context) {
	sc, err := h.res.Resolve(domain.EntityKind(c.Param("kind")), c.QueryArray("variant")...)
	if err != nil {
		writeError(c, "get_schema", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "schema": sc})
}

func (h *Handler) refreshCatalog(c *gin.Context) {
	if err := h.wb.RefreshCatalog(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
