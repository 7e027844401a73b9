package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"parq/internal/parking/service"
	"parq/internal/parking/store"
	"parq/internal/parking/validator"
	"parq/pkg/config"
	"parq/pkg/events"
	"parq/pkg/logger"
	"parq/pkg/model"
)

func newTestRouter(t *testing.T) *httprouter.Router {
	t.Helper()

	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	cfg := &config.Config{Log: log, NotifyTimeout: time.Second}

	st := store.New(1.0)
	if err := st.AddZone("Mall", "Shopping mall"); err != nil {
		t.Fatalf("AddZone: %v", err)
	}
	for _, label := range []string{"MA1", "MA2"} {
		if _, err := st.AddSpot(label, "Mall"); err != nil {
			t.Fatalf("AddSpot(%s): %v", label, err)
		}
	}

	svc := service.NewParkingService(st, validator.NewParkingValidator(24), nil, events.NopPublisher{}, cfg)

	router := httprouter.New()
	NewReservationHandler(svc, log).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()

	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &wrapper); err != nil {
		t.Fatalf("decode envelope: %v (body: %s)", err, rec.Body.String())
	}
	if err := json.Unmarshal(wrapper.Data, target); err != nil {
		t.Fatalf("decode data: %v (body: %s)", err, rec.Body.String())
	}
}

func reservationBody() map[string]any {
	return map[string]any{
		"client":  map[string]any{"name": "Ali Ben Salah", "phone": "+21655123456"},
		"vehicle": map[string]any{"plate": "123TUN456", "model": "Clio", "color": "blue"},
		"spot_id": 1,
		"hours":   2,
	}
}

func TestListZones(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/zones", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var zones []model.Zone
	decodeData(t, rec, &zones)
	if len(zones) != 1 || zones[0].Name != "Mall" {
		t.Errorf("unexpected zones: %+v", zones)
	}
}

func TestListAvailable_ExcludesReserved(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/reservations", reservationBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("reserve: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/spots/available?zone=Mall", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var spots []model.Spot
	decodeData(t, rec, &spots)
	if len(spots) != 1 || spots[0].Label != "MA2" {
		t.Errorf("expected only MA2 available, got %+v", spots)
	}
}

func TestReserve_Lifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/reservations", reservationBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	var r model.Reservation
	decodeData(t, rec, &r)
	if r.ID == "" || r.Amount != 2.0 || r.Spot.Label != "MA1" {
		t.Fatalf("unexpected reservation: %+v", r)
	}

	// Same spot again conflicts.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/reservations", reservationBody())
	if rec.Code != http.StatusConflict {
		t.Errorf("double booking: expected 409, got %d", rec.Code)
	}

	// Wrong amount is rejected.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/reservations/"+r.ID+"/payment",
		model.Payment{Method: "card", Amount: 3.0})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("wrong amount: expected 422, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/reservations/"+r.ID+"/payment",
		model.Payment{Method: "card", Amount: 2.0})
	if rec.Code != http.StatusOK {
		t.Fatalf("payment: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var paid model.Reservation
	decodeData(t, rec, &paid)
	if !paid.Paid {
		t.Error("reservation should be paid")
	}

	// Paying twice conflicts.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/reservations/"+r.ID+"/payment",
		model.Payment{Method: "card", Amount: 2.0})
	if rec.Code != http.StatusConflict {
		t.Errorf("re-pay: expected 409, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/reservations/"+r.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}
}

func TestReserve_BadRequests(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: expected 400, got %d", rec.Code)
	}

	body := reservationBody()
	body["hours"] = 25
	rec = doJSON(t, router, http.MethodPost, "/api/v1/reservations", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("25 hours: expected 422, got %d", rec.Code)
	}

	body = reservationBody()
	body["spot_id"] = 99
	rec = doJSON(t, router, http.MethodPost, "/api/v1/reservations", body)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown spot: expected 404, got %d", rec.Code)
	}
}

func TestGetReservation_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/reservations/no-such-id", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
