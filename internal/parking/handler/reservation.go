package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"parq/internal/parking/service"
	httputil "parq/pkg/http"
	"parq/pkg/logger"
	"parq/pkg/model"
)

// ReservationHandler is the client-facing surface: browsing zones and
// available spots, reserving, paying, and fetching a reservation.
type ReservationHandler struct {
	service service.ParkingService
	log     *logger.Logger
}

func NewReservationHandler(service service.ParkingService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/zones", h.ListZones)
	router.GET("/api/v1/spots/available", h.ListAvailable)
	router.POST("/api/v1/reservations", h.Reserve)
	router.GET("/api/v1/reservations/:id", h.GetReservation)
	router.POST("/api/v1/reservations/:id/payment", h.Pay)
}

func (h *ReservationHandler) ListZones(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	httputil.WriteSuccess(w, h.service.ListZones(r.Context()))
}

func (h *ReservationHandler) ListAvailable(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	zone := r.URL.Query().Get("zone")
	httputil.WriteSuccess(w, h.service.ListAvailableSpots(r.Context(), zone))
}

func (h *ReservationHandler) Reserve(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	reservation, err := h.service.Reserve(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, reservation)
}

func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservation, err := h.service.GetReservation(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, reservation)
}

func (h *ReservationHandler) Pay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var payment model.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	reservation, err := h.service.Pay(r.Context(), ps.ByName("id"), &payment)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, reservation)
}
