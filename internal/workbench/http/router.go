package http

import "github.com/gin-gonic/gin"

// Register attaches workbench routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/schema/:kind", h.schema)
	rg.POST("/catalog/refresh", h.refreshCatalog)

	rg.POST("/sessions", h.createSession)
	rg.POST("/sessions/open", h.openDocument)

	s := rg.Group("/sessions/:session_id")
	s.GET("", h.getSession)
	s.DELETE("", h.closeSession)

	s.POST("/entities", h.addEntity)
	s.DELETE("/entities/:entity_id", h.removeEntity)
	s.PUT("/entities/:entity_id/fields/:attr", h.setField)
	s.DELETE("/entities/:entity_id/fields/:attr", h.clearField)
	s.PUT("/entities/:entity_id/variant", h.setVariant)
	s.POST("/entities/:entity_id/preview", h.refreshPreview)

	s.POST("/categories", h.addCategory)
	s.PATCH("/categories/:category_id", h.renameCategory)
	s.DELETE("/categories/:category_id", h.removeCategory)

	s.POST("/wind/preview", h.refreshWindPreview)
	s.POST("/recompute", h.recompute)
	s.POST("/flush", h.flush)

	s.POST("/import", h.importDocument)
	s.GET("/export", h.exportDocument)

	s.POST("/figures", h.refreshFigures)
	s.GET("/report", h.report)
	s.GET("/summary", h.previewSummary)

	s.POST("/revisions", h.saveRevision)
	s.GET("/revisions", h.listRevisions)
	s.POST("/revisions/:revision_id/restore", h.restoreRevision)
}
