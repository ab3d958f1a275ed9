package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
	"github.com/facadeworks/facade-workbench/internal/workbench/service"
)

type documentReq struct {
	DocumentText string `json:"document_text"`
}

func (h *Handler) createSession(c *gin.Context) {
	s, err := h.wb.CreateSession(c.Request.Context())
	if err != nil {
		writeError(c, "create_session", err)
		return
	}
	v, err := s.View(c.Request.Context())
	if err != nil {
		writeError(c, "create_session", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "session": v})
}

func (h *Handler) openDocument(c *gin.Context) {
	var req documentReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.DocumentText) == "" {
		badRequest(c, "invalid body")
		return
	}
	s, report, err := h.wb.OpenDocument(c.Request.Context(), req.DocumentText)
	if err != nil {
		writeError(c, "open_document", err)
		return
	}
	v, err := s.View(c.Request.Context())
	if err != nil {
		writeError(c, "open_document", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "session": v, "warnings": report.Warnings})
}

func (h *Handler) getSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	v, err := s.View(c.Request.Context())
	if err != nil {
		writeError(c, "get_session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": v})
}

func (h *Handler) closeSession(c *gin.Context) {
	if err := h.wb.CloseSession(c.Request.Context(), c.Param("session_id")); err != nil {
		writeError(c, "close_session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type fieldReq struct {
	Value *string `json:"value"`
}

func (h *Handler) setField(c *gin.Context) {
	var req fieldReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == nil {
		badRequest(c, "invalid body")
		return
	}
	h.mutateEntity(c, "set_field", func(s *service.Session, id domain.EntityID) error {
		return s.SetField(c.Request.Context(), id, c.Param("attr"), *req.Value)
	})
}

func (h *Handler) clearField(c *gin.Context) {
	h.mutateEntity(c, "clear_field", func(s *service.Session, id domain.EntityID) error {
		return s.ClearField(c.Request.Context(), id, c.Param("attr"))
	})
}

type variantReq struct {
	Variant []string `json:"variant"`
}

func (h *Handler) setVariant(c *gin.Context) {
	var req variantReq
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Variant) == 0 {
		badRequest(c, "invalid body")
		return
	}
	h.mutateEntity(c, "set_variant", func(s *service.Session, id domain.EntityID) error {
		return s.SetVariant(c.Request.Context(), id, req.Variant...)
	})
}

func (h *Handler) removeEntity(c *gin.Context) {
	h.mutateEntity(c, "remove_entity", func(s *service.Session, id domain.EntityID) error {
		return s.RemoveItem(c.Request.Context(), id)
	})
}

// mutateEntity runs fn against :entity_id and answers with the new state.
func (h *Handler) mutateEntity(c *gin.Context, operation string, fn func(*service.Session, domain.EntityID) error) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := fn(s, domain.EntityID(c.Param("entity_id"))); err != nil {
		writeError(c, operation, err)
		return
	}
	v, err := s.View(c.Request.Context())
	if err != nil {
		writeError(c, operation, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": v})
}

type addEntityReq struct {
	Kind       string   `json:"kind"`
	CategoryID string   `json:"category_id"`
	Variant    []string `json:"variant"`
}

func (h *Handler) addEntity(c *gin.Context) {
	var req addEntityReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Kind == "" {
		badRequest(c, "invalid body")
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}
	e, err := s.AddItem(c.Request.Context(), domain.EntityKind(req.Kind), domain.EntityID(req.CategoryID), req.Variant...)
	if err != nil {
		writeError(c, "add_entity", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "entity": e})
}

type categoryReq struct {
	Name string `json:"name"`
}

func (h *Handler) addCategory(c *gin.Context) {
	var req categoryReq
	_ = c.ShouldBindJSON(&req)
	s, ok := h.session(c)
	if !ok {
		return
	}
	cat, err := s.AddCategory(c.Request.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		writeError(c, "add_category", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "category": cat})
}

func (h *Handler) renameCategory(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.RenameCategory(c.Request.Context(), domain.EntityID(c.Param("category_id")), req.Name); err != nil {
		writeError(c, "rename_category", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) removeCategory(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.RemoveCategory(c.Request.Context(), domain.EntityID(c.Param("category_id"))); err != nil {
		writeError(c, "remove_category", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) importDocument(c *gin.Context) {
	var req documentReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.DocumentText) == "" {
		badRequest(c, "invalid body")
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}
	report, err := s.Import(c.Request.Context(), req.DocumentText)
	if err != nil {
		writeError(c, "import_document", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "warnings": report.Warnings})
}

func (h *Handler) exportDocument(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	text, err := s.Export(c.Request.Context())
	if err != nil {
		writeError(c, "export_document", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="design.yaml"`)
	c.Data(http.StatusOK, "application/yaml; charset=utf-8", []byte(text))
}

func (h *Handler) recompute(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	failures, err := s.RecomputeAll(c.Request.Context())
	if err != nil {
		writeError(c, "recompute", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "failures": failures})
}

func (h *Handler) flush(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Flush(c.Request.Context()); err != nil {
		writeError(c, "flush", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) saveRevision(c *gin.Context) {
	rev, err := h.wb.SaveRevision(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		writeError(c, "save_revision", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "revision": rev})
}

func (h *Handler) listRevisions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		badRequest(c, "invalid limit")
		return
	}
	revs, err := h.wb.Revisions(c.Request.Context(), c.Param("session_id"), limit)
	if err != nil {
		writeError(c, "list_revisions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "revisions": revs})
}

func (h *Handler) restoreRevision(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("revision_id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid revision id")
		return
	}
	report, err := h.wb.RestoreRevision(c.Request.Context(), c.Param("session_id"), id)
	if err != nil {
		writeError(c, "restore_revision", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "warnings": report.Warnings})
}
