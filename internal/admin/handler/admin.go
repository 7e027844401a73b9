package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"parq/internal/parking/service"
	apperrors "parq/pkg/errors"
	httputil "parq/pkg/http"
	"parq/pkg/logger"
	"parq/pkg/model"
)

// AdminHandler is the inventory/audit surface: spot and zone
// management, forced frees, cancellations, and per-spot history. It
// drives the same engine as the client surface.
type AdminHandler struct {
	service service.ParkingService
	log     *logger.Logger
}

func NewAdminHandler(service service.ParkingService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log,
	}
}

func (h *AdminHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/admin/spots", h.GetAllSpots)
	router.POST("/api/v1/admin/spots", h.AddSpot)
	router.DELETE("/api/v1/admin/spots/:id", h.RemoveSpot)
	router.POST("/api/v1/admin/spots/:id/free", h.FreeSpot)
	router.GET("/api/v1/admin/spots/:id/history", h.GetSpotHistory)

	router.GET("/api/v1/admin/reservations", h.GetAllReservations)
	router.DELETE("/api/v1/admin/reservations/:id", h.CancelReservation)

	router.GET("/api/v1/admin/zones", h.GetAllZones)
	router.POST("/api/v1/admin/zones", h.AddZone)
	router.DELETE("/api/v1/admin/zones/:name", h.RemoveZone)
	router.GET("/api/v1/admin/zones/:name/spots", h.ListSpotsByZone)
}

func (h *AdminHandler) GetAllSpots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	httputil.WriteSuccess(w, h.service.GetAllSpots(r.Context()))
}

func (h *AdminHandler) AddSpot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.AddSpotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	spot, err := h.service.AddSpot(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, spot)
}

func (h *AdminHandler) RemoveSpot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := spotID(ps)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.RemoveSpot(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AdminHandler) FreeSpot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := spotID(ps)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	spot, err := h.service.FreeSpot(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, spot)
}

func (h *AdminHandler) GetSpotHistory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := spotID(ps)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	history, err := h.service.GetSpotHistory(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, history)
}

func (h *AdminHandler) GetAllReservations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	httputil.WriteSuccess(w, h.service.GetAllReservations(r.Context()))
}

func (h *AdminHandler) CancelReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.CancelReservation(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AdminHandler) GetAllZones(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	httputil.WriteSuccess(w, h.service.ListZones(r.Context()))
}

func (h *AdminHandler) AddZone(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.AddZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	zone, err := h.service.AddZone(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, zone)
}

func (h *AdminHandler) RemoveZone(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.RemoveZone(r.Context(), ps.ByName("name")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AdminHandler) ListSpotsByZone(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	spots, err := h.service.ListSpotsByZone(r.Context(), ps.ByName("name"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, spots)
}

func spotID(ps httprouter.Params) (int, error) {
	raw := ps.ByName("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, apperrors.InvalidInput("invalid spot id: " + raw)
	}
	return id, nil
}
