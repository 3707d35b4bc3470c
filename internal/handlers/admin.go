package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kyle-1207/components-plat-sub002/internal/logger"
	"github.com/kyle-1207/components-plat-sub002/internal/services"
)

type AdminHandler struct {
	log              *logger.Logger
	componentService services.ComponentService
}

func NewAdminHandler(log *logger.Logger, componentService services.ComponentService) *AdminHandler {
	return &AdminHandler{
		log:              log.With("handler", "AdminHandler"),
		componentService: componentService,
	}
}

// InvalidateCache is the operator-triggered invalidation signal, used after
// bulk re-imports. Cached search pages have no TTL, so this is the only way
// stale results get dropped. scope=search (default) clears cached search
// pages; scope=all clears everything under the platform prefix.
func (h *AdminHandler) InvalidateCache(c *gin.Context) {
	scope := c.DefaultQuery("scope", "search")
	var (
		deleted int
		err     error
	)
	switch scope {
	case "search":
		deleted, err = h.componentService.InvalidateSearchCache(c.Request.Context())
	case "all":
		deleted, err = h.componentService.InvalidateAllCache(c.Request.Context())
	default:
		RespondError(c, http.StatusBadRequest, "invalid_cache_scope", fmt.Errorf("unknown scope %q", scope))
		return
	}
	if err != nil {
		h.log.Error("Cache invalidation failed", "scope", scope, "error", err)
		RespondError(c, http.StatusInternalServerError, "cache_invalidate_failed", err)
		return
	}
	h.log.Info("Cache invalidated", "scope", scope, "deleted", deleted)
	RespondOK(c, gin.H{"scope": scope, "deleted": deleted})
}
