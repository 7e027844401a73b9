package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	parkingerrors "parq/internal/parking/errors"
	"parq/pkg/model"
)

// amountEpsilon is the floating-point tolerance for payment matching.
const amountEpsilon = 1e-6

// Store owns all mutable reservation state: zones, spots, reservations
// and the per-spot history logs. Every operation is one critical
// section under a single mutex, so the externally observable effect of
// concurrent calls is always some sequential interleaving. Reads hand
// out snapshots only; no live reference ever escapes the lock.
type Store interface {
	AddZone(name, description string) error
	RemoveZone(name string) error
	ListZones() []model.Zone

	AddSpot(label, zone string) (*model.Spot, error)
	RemoveSpot(id int) error
	GetSpot(id int) (*model.Spot, error)
	GetSpotHistory(id int) ([]model.HistoryEntry, error)
	ListAvailable(zoneFilter string) []model.Spot
	ListByZone(zone string) ([]model.Spot, error)
	ListAllSpots() []model.Spot

	Reserve(client model.ClientInfo, vehicle model.Vehicle, spotID, hours int) (*model.Reservation, error)
	Pay(reservationID string, payment model.Payment) (*model.Reservation, error)
	Cancel(reservationID string) (*model.Reservation, error)
	GetReservation(id string) (*model.Reservation, error)
	ListReservations() []model.Reservation

	FreeSpot(spotID int) (*model.Spot, *model.Reservation, error)

	PricePerHour() float64
}

type spot struct {
	id       int
	label    string
	zone     string
	reserved bool
	history  []model.HistoryEntry // newest first
}

type reservation struct {
	id        string
	client    model.ClientInfo
	vehicle   model.Vehicle
	spot      *spot
	hours     int
	amount    float64
	paid      bool
	createdAt time.Time
}

type parkingStore struct {
	mu           sync.Mutex
	zones        []model.Zone // insertion order
	spots        map[int]*spot
	reservations map[string]*reservation
	nextSpotID   int
	pricePerHour float64
}

func New(pricePerHour float64) Store {
	return &parkingStore{
		spots:        make(map[int]*spot),
		reservations: make(map[string]*reservation),
		nextSpotID:   1,
		pricePerHour: pricePerHour,
	}
}

func (s *parkingStore) PricePerHour() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pricePerHour
}

// ======= Zones =======

func (s *parkingStore) AddZone(name, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, z := range s.zones {
		if strings.EqualFold(z.Name, name) {
			return parkingerrors.ErrZoneExists
		}
	}

	s.zones = append(s.zones, model.Zone{Name: name, Description: description})
	return nil
}

func (s *parkingStore) RemoveZone(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, z := range s.zones {
		if strings.EqualFold(z.Name, name) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return parkingerrors.ErrZoneNotFound
	}

	for _, sp := range s.spots {
		if strings.EqualFold(sp.zone, name) {
			return parkingerrors.ErrZoneNotEmpty
		}
	}

	s.zones = append(s.zones[:idx], s.zones[idx+1:]...)
	return nil
}

func (s *parkingStore) ListZones() []model.Zone {
	s.mu.Lock()
	defer s.mu.Unlock()

	zones := make([]model.Zone, len(s.zones))
	copy(zones, s.zones)
	return zones
}

func (s *parkingStore) zoneExists(name string) bool {
	for _, z := range s.zones {
		if strings.EqualFold(z.Name, name) {
			return true
		}
	}
	return false
}

// ======= Spots =======

func (s *parkingStore) AddSpot(label, zone string) (*model.Spot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.zoneExists(zone) {
		return nil, parkingerrors.ErrZoneNotFound
	}

	// Ids come from a strictly monotonic counter and are never reused,
	// even after removals.
	id := s.nextSpotID
	s.nextSpotID++

	sp := &spot{id: id, label: label, zone: zone}
	s.spots[id] = sp

	snap := snapshotSpot(sp)
	return &snap, nil
}

func (s *parkingStore) RemoveSpot(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.spots[id]
	if !ok {
		return parkingerrors.ErrSpotNotFound
	}

	// A spot with an active reservation cannot be removed; cancel the
	// reservation first. Keeps every reservation pointing at a live spot.
	if s.reservationForSpot(id) != nil || sp.reserved {
		return parkingerrors.ErrSpotReserved
	}

	delete(s.spots, id)
	return nil
}

func (s *parkingStore) GetSpot(id int) (*model.Spot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.spots[id]
	if !ok {
		return nil, parkingerrors.ErrSpotNotFound
	}

	snap := snapshotSpot(sp)
	return &snap, nil
}

func (s *parkingStore) GetSpotHistory(id int) ([]model.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.spots[id]
	if !ok {
		return nil, parkingerrors.ErrSpotNotFound
	}

	history := make([]model.HistoryEntry, len(sp.history))
	copy(history, sp.history)
	return history, nil
}

func (s *parkingStore) ListAvailable(zoneFilter string) []model.Spot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var list []model.Spot
	for _, sp := range s.spots {
		if sp.reserved {
			continue
		}
		if zoneFilter != "" && !strings.EqualFold(sp.zone, zoneFilter) {
			continue
		}
		list = append(list, snapshotSpot(sp))
	}
	sortSpots(list)
	return list
}

func (s *parkingStore) ListByZone(zone string) ([]model.Spot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.zoneExists(zone) {
		return nil, parkingerrors.ErrZoneNotFound
	}

	var list []model.Spot
	for _, sp := range s.spots {
		if strings.EqualFold(sp.zone, zone) {
			list = append(list, snapshotSpot(sp))
		}
	}
	sortSpots(list)
	return list, nil
}

func (s *parkingStore) ListAllSpots() []model.Spot {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]model.Spot, 0, len(s.spots))
	for _, sp := range s.spots {
		list = append(list, snapshotSpot(sp))
	}
	sortSpots(list)
	return list
}

// ======= Reservations =======

func (s *parkingStore) Reserve(client model.ClientInfo, vehicle model.Vehicle, spotID, hours int) (*model.Reservation, error) {
	if hours < 1 {
		return nil, parkingerrors.ErrInvalidHours
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.spots[spotID]
	if !ok {
		return nil, parkingerrors.ErrSpotNotFound
	}
	if sp.reserved {
		return nil, parkingerrors.ErrSpotReserved
	}

	sp.reserved = true
	amount := float64(hours) * s.pricePerHour

	r := &reservation{
		id:        uuid.New().String(),
		client:    client,
		vehicle:   vehicle,
		spot:      sp,
		hours:     hours,
		amount:    amount,
		createdAt: time.Now(),
	}
	s.reservations[r.id] = r

	appendHistory(sp, model.HistoryReservation,
		fmt.Sprintf("Ref: %s Client: %s", r.id, client.Name), amount)

	snap := snapshotReservation(r)
	return &snap, nil
}

func (s *parkingStore) Pay(reservationID string, payment model.Payment) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[reservationID]
	if !ok {
		return nil, parkingerrors.ErrReservationNotFound
	}
	if r.paid {
		return nil, parkingerrors.ErrAlreadyPaid
	}
	if diff := r.amount - payment.Amount; diff > amountEpsilon || diff < -amountEpsilon {
		return nil, parkingerrors.ErrAmountMismatch
	}

	r.paid = true

	appendHistory(r.spot, model.HistoryPayment,
		fmt.Sprintf("Payment for reservation %s by %s", r.id, r.client.Name), payment.Amount)

	snap := snapshotReservation(r)
	return &snap, nil
}

func (s *parkingStore) Cancel(reservationID string) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[reservationID]
	if !ok {
		return nil, parkingerrors.ErrReservationNotFound
	}

	delete(s.reservations, reservationID)
	r.spot.reserved = false

	appendHistory(r.spot, model.HistoryCancel,
		fmt.Sprintf("Reservation %s cancelled", r.id), 0)

	snap := snapshotReservation(r)
	return &snap, nil
}

func (s *parkingStore) GetReservation(id string) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[id]
	if !ok {
		return nil, parkingerrors.ErrReservationNotFound
	}

	snap := snapshotReservation(r)
	return &snap, nil
}

func (s *parkingStore) ListReservations() []model.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]model.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		list = append(list, snapshotReservation(r))
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

// FreeSpot is the admin override: it frees the spot and removes any
// reservation still referencing it, so the reserved flag and the
// reservation book never disagree. The removed reservation (if any) is
// returned so the caller can notify its owner.
func (s *parkingStore) FreeSpot(spotID int) (*model.Spot, *model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.spots[spotID]
	if !ok {
		return nil, nil, parkingerrors.ErrSpotNotFound
	}

	var removed *model.Reservation
	if r := s.reservationForSpot(spotID); r != nil {
		delete(s.reservations, r.id)
		snap := snapshotReservation(r)
		removed = &snap
	}

	sp.reserved = false
	appendHistory(sp, model.HistoryFree,
		fmt.Sprintf("Admin freed spot %d", spotID), 0)

	snap := snapshotSpot(sp)
	return &snap, removed, nil
}

// ======= Internal helpers (caller must hold the lock) =======

func (s *parkingStore) reservationForSpot(spotID int) *reservation {
	for _, r := range s.reservations {
		if r.spot.id == spotID {
			return r
		}
	}
	return nil
}

func appendHistory(sp *spot, kind model.HistoryKind, details string, amount float64) {
	entry := model.HistoryEntry{
		At:      time.Now(),
		Kind:    kind,
		Details: details,
		Amount:  amount,
	}
	// Newest first; entries are never mutated or reordered afterwards.
	sp.history = append([]model.HistoryEntry{entry}, sp.history...)
}

func snapshotSpot(sp *spot) model.Spot {
	history := make([]model.HistoryEntry, len(sp.history))
	copy(history, sp.history)
	return model.Spot{
		ID:       sp.id,
		Label:    sp.label,
		Zone:     sp.zone,
		Reserved: sp.reserved,
		History:  history,
	}
}

func snapshotReservation(r *reservation) model.Reservation {
	return model.Reservation{
		ID:        r.id,
		Client:    r.client,
		Vehicle:   r.vehicle,
		Spot:      snapshotSpot(r.spot),
		Hours:     r.hours,
		Amount:    r.amount,
		Paid:      r.paid,
		CreatedAt: r.createdAt,
	}
}

func sortSpots(list []model.Spot) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}
