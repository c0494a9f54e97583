package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kuhaiku/cabana-2.0/internal/handlers"
	"github.com/Kuhaiku/cabana-2.0/internal/logger"
)

type stubLister struct {
	urls []string
	err  error
}

func (s *stubLister) ListGalleryURLs(ctx context.Context) ([]string, error) {
	return s.urls, s.err
}

func galleryRouter(lister *stubLister) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewGalleryHandler(lister, nil, logger.NewLogger())
	r := gin.New()
	r.GET("/api/galeria", h.List)
	return r
}

func TestGalleryListsAssetURLs(t *testing.T) {
	router := galleryRouter(&stubLister{urls: []string{
		"https://res.example.com/cabana/galeria/a.jpg",
		"https://res.example.com/cabana/galeria/b.jpg",
	}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/galeria", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var urls []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &urls))
	assert.Len(t, urls, 2)
}

func TestGalleryFailsOpenOnMediaHostError(t *testing.T) {
	router := galleryRouter(&stubLister{err: errors.New("media host unreachable")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/galeria", nil))

	// Outages degrade to an empty listing, never an error status.
	require.Equal(t, http.StatusOK, w.Code)

	var urls []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &urls))
	assert.Empty(t, urls)
}
