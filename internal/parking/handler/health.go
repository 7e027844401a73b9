package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	httputil "parq/pkg/http"
	"parq/pkg/logger"
)

// HealthHandler reports liveness/readiness. The engine is in-memory, so
// a running process is a ready process.
type HealthHandler struct {
	log *logger.Logger
}

func NewHealthHandler(log *logger.Logger) *HealthHandler {
	return &HealthHandler{log: log}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Health)
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
