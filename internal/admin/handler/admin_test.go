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

type testEnv struct {
	router *httprouter.Router
	store  store.Store
	svc    service.ParkingService
}

func newTestEnv(t *testing.T) *testEnv {
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
	NewAdminHandler(svc, log).RegisterRoutes(router)
	return &testEnv{router: router, store: st, svc: svc}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
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
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) reserve(t *testing.T, spotID int) *model.Reservation {
	t.Helper()

	r, err := e.store.Reserve(
		model.ClientInfo{Name: "Ali Ben Salah", Phone: "+21655123456"},
		model.Vehicle{Plate: "123TUN456"},
		spotID, 2,
	)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	return r
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

func TestSpotManagement(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/spots", model.AddSpotRequest{Label: "ma3", Zone: "Mall"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add spot: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	var added model.Spot
	decodeData(t, rec, &added)
	if added.Label != "MA3" {
		t.Errorf("label should be uppercased, got %q", added.Label)
	}
	if added.ID != 3 {
		t.Errorf("expected id 3, got %d", added.ID)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/admin/spots", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list spots: expected 200, got %d", rec.Code)
	}
	var spots []model.Spot
	decodeData(t, rec, &spots)
	if len(spots) != 3 {
		t.Errorf("expected 3 spots, got %d", len(spots))
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/spots/3", nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("remove spot: expected 204, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/spots/3", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("remove twice: expected 404, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/spots/abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id: expected 400, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/admin/spots", model.AddSpotRequest{Label: "XX1", Zone: "Nowhere"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown zone: expected 422, got %d", rec.Code)
	}
}

func TestRemoveSpot_BlockedWhileReserved(t *testing.T) {
	env := newTestEnv(t)
	env.reserve(t, 1)

	rec := env.do(t, http.MethodDelete, "/api/v1/admin/spots/1", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestFreeSpot(t *testing.T) {
	env := newTestEnv(t)
	r := env.reserve(t, 1)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/spots/1/free", struct{}{})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var sp model.Spot
	decodeData(t, rec, &sp)
	if sp.Reserved {
		t.Error("spot should be free")
	}

	if _, err := env.store.GetReservation(r.ID); err == nil {
		t.Error("reservation should have been removed with the forced free")
	}

	rec = env.do(t, http.MethodPost, "/api/v1/admin/spots/99/free", struct{}{})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown spot: expected 404, got %d", rec.Code)
	}
}

func TestSpotHistory(t *testing.T) {
	env := newTestEnv(t)
	r := env.reserve(t, 1)
	if _, err := env.store.Pay(r.ID, model.Payment{Method: "card", Amount: 2.0}); err != nil {
		t.Fatalf("Pay: %v", err)
	}

	rec := env.do(t, http.MethodGet, "/api/v1/admin/spots/1/history", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var history []model.HistoryEntry
	decodeData(t, rec, &history)
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if history[0].Kind != model.HistoryPayment || history[1].Kind != model.HistoryReservation {
		t.Errorf("history not newest first: %+v", history)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/admin/spots/99/history", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown spot: expected 404, got %d", rec.Code)
	}
}

func TestReservationAdministration(t *testing.T) {
	env := newTestEnv(t)
	r := env.reserve(t, 1)

	rec := env.do(t, http.MethodGet, "/api/v1/admin/reservations", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list []model.Reservation
	decodeData(t, rec, &list)
	if len(list) != 1 || list[0].ID != r.ID {
		t.Errorf("unexpected listing: %+v", list)
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/reservations/"+r.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("cancel: expected 204, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/reservations/"+r.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cancel twice: expected 404, got %d", rec.Code)
	}

	sp, err := env.store.GetSpot(1)
	if err != nil {
		t.Fatalf("GetSpot: %v", err)
	}
	if sp.Reserved {
		t.Error("spot should be free after cancellation")
	}
}

func TestZoneManagement(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/zones", model.AddZoneRequest{Name: "  Airport ", Description: "Long  stay"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add zone: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	// The response carries the zone as recorded, not the raw request.
	var created model.Zone
	decodeData(t, rec, &created)
	if created.Name != "Airport" || created.Description != "Long stay" {
		t.Errorf("unexpected created zone: %+v", created)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/admin/zones", model.AddZoneRequest{Name: "airport"})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate zone: expected 409, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/admin/zones", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list zones: expected 200, got %d", rec.Code)
	}
	var zones []model.Zone
	decodeData(t, rec, &zones)
	if len(zones) != 2 {
		t.Errorf("expected 2 zones, got %d", len(zones))
	}

	rec = env.do(t, http.MethodGet, "/api/v1/admin/zones/Mall/spots", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list zone spots: expected 200, got %d", rec.Code)
	}
	var spots []model.Spot
	decodeData(t, rec, &spots)
	if len(spots) != 2 {
		t.Errorf("expected 2 Mall spots, got %d", len(spots))
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/zones/Mall", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("zone with spots: expected 409, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/zones/Airport", nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("remove empty zone: expected 204, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/zones/Nowhere", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown zone: expected 404, got %d", rec.Code)
	}
}
