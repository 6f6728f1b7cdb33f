package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shashankb2004/edublog/internal/config"
	"github.com/shashankb2004/edublog/internal/logger"
	"github.com/shashankb2004/edublog/internal/markdown"
	"github.com/shashankb2004/edublog/internal/service"
)

// Pinger is the dependency of the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth     service.AuthService
	blog     service.BlogService
	renderer *markdown.Renderer
	health   Pinger
	cfg      *config.Config
}

func New(auth service.AuthService, blog service.BlogService, renderer *markdown.Renderer, health Pinger, cfg *config.Config) *Handler {
	return &Handler{auth: auth, blog: blog, renderer: renderer, health: health, cfg: cfg}
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// Welcome handles the root route.
func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to EduBlog API"})
}
