package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kuhaiku/cabana-2.0/internal/gallery"
	"github.com/Kuhaiku/cabana-2.0/internal/logger"
	"github.com/Kuhaiku/cabana-2.0/internal/redis"
)

type GalleryHandler struct {
	lister gallery.Lister
	cache  *redis.Cache
	log    *logger.Logger
}

func NewGalleryHandler(lister gallery.Lister, cache *redis.Cache, log *logger.Logger) *GalleryHandler {
	return &GalleryHandler{
		lister: lister,
		cache:  cache,
		log:    log,
	}
}

// List returns the public gallery URLs. Media-host failures degrade to an
// empty list so the site keeps rendering; the error is only logged.
func (h *GalleryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if urls, ok := h.cache.GetGalleryURLs(ctx); ok {
		c.JSON(http.StatusOK, urls)
		return
	}

	if h.lister == nil {
		h.log.Warn("GALLERY", "No media host configured, serving empty gallery")
		c.JSON(http.StatusOK, []string{})
		return
	}

	urls, err := h.lister.ListGalleryURLs(ctx)
	if err != nil {
		h.log.Error("GALLERY", "Failed to list gallery assets: "+err.Error())
		c.JSON(http.StatusOK, []string{})
		return
	}
	if urls == nil {
		urls = []string{}
	}

	h.cache.SetGalleryURLs(ctx, urls)
	c.JSON(http.StatusOK, urls)
}
