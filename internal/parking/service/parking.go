package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	parkingerrors "parq/internal/parking/errors"
	"parq/internal/parking/store"
	"parq/internal/parking/validator"
	"parq/pkg/config"
	apperrors "parq/pkg/errors"
	"parq/pkg/events"
	"parq/pkg/model"
	"parq/pkg/sanitizer"
)

// ParkingService is the coordinator in front of the store: it owns
// input sanitization, validation, structured logging, and the
// best-effort side channels (notifications, lifecycle events). All
// external callers go through it; nothing else touches the store.
type ParkingService interface {
	ListZones(ctx context.Context) []model.Zone
	ListAvailableSpots(ctx context.Context, zone string) []model.Spot
	Reserve(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error)
	Pay(ctx context.Context, reservationID string, payment *model.Payment) (*model.Reservation, error)
	GetReservation(ctx context.Context, id string) (*model.Reservation, error)

	GetAllSpots(ctx context.Context) []model.Spot
	GetAllReservations(ctx context.Context) []model.Reservation
	AddSpot(ctx context.Context, req *model.AddSpotRequest) (*model.Spot, error)
	RemoveSpot(ctx context.Context, id int) error
	FreeSpot(ctx context.Context, id int) (*model.Spot, error)
	CancelReservation(ctx context.Context, id string) error
	AddZone(ctx context.Context, req *model.AddZoneRequest) (*model.Zone, error)
	RemoveZone(ctx context.Context, name string) error
	ListSpotsByZone(ctx context.Context, zone string) ([]model.Spot, error)
	GetSpotHistory(ctx context.Context, id int) ([]model.HistoryEntry, error)
}

// Notifier pushes a notification to whichever channel is registered for
// the client key. Push must never block the caller indefinitely.
type Notifier interface {
	Push(clientKey string, n model.Notification)
}

type parkingService struct {
	store     store.Store
	validator *validator.ParkingValidator
	notifier  Notifier
	publisher events.Publisher
	cfg       *config.Config
}

func NewParkingService(
	st store.Store,
	v *validator.ParkingValidator,
	notifier Notifier,
	publisher events.Publisher,
	cfg *config.Config,
) ParkingService {
	return &parkingService{
		store:     st,
		validator: v,
		notifier:  notifier,
		publisher: publisher,
		cfg:       cfg,
	}
}

// ======= Client surface =======

func (s *parkingService) ListZones(ctx context.Context) []model.Zone {
	return s.store.ListZones()
}

func (s *parkingService) ListAvailableSpots(ctx context.Context, zone string) []model.Spot {
	return s.store.ListAvailable(sanitizer.NormalizeZoneName(zone))
}

func (s *parkingService) Reserve(ctx context.Context, req *model.ReservationRequest) (*model.Reservation, error) {
	s.sanitizeReservation(req)

	if req.Client.Phone == "" {
		return nil, apperrors.Validation("Reservation validation failed", map[string]any{
			"error": "client phone could not be normalized to E.164",
		})
	}
	if err := s.validator.ValidateReservation(req); err != nil {
		s.cfg.Log.Warn("Reservation validation failed",
			"spot_id", req.SpotID,
			"phone", req.Client.Phone,
			"error", err,
		)
		return nil, apperrors.Validation("Reservation validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	r, err := s.store.Reserve(req.Client, req.Vehicle, req.SpotID, req.Hours)
	if err != nil {
		return nil, s.translateReserveErr(err, req.SpotID)
	}

	s.cfg.Log.Info("Reservation created",
		"reservation_id", r.ID,
		"spot_id", r.Spot.ID,
		"phone", r.Client.Phone,
		"hours", r.Hours,
		"amount", r.Amount,
	)

	s.notify(r.Client.Phone, "Reservation created",
		fmt.Sprintf("Ref: %s Spot: %s", r.ID, r.Spot.Label))
	s.publish(events.TypeReservationCreated, strconv.Itoa(r.Spot.ID), r)

	return r, nil
}

func (s *parkingService) Pay(ctx context.Context, reservationID string, payment *model.Payment) (*model.Reservation, error) {
	if reservationID == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}
	if err := s.validator.ValidatePayment(payment); err != nil {
		return nil, apperrors.Validation("Payment validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	r, err := s.store.Pay(reservationID, *payment)
	if err != nil {
		switch {
		case errors.Is(err, parkingerrors.ErrReservationNotFound):
			return nil, apperrors.NotFoundWithID("Reservation", reservationID)
		case errors.Is(err, parkingerrors.ErrAlreadyPaid):
			return nil, apperrors.Conflict("Reservation is already paid")
		case errors.Is(err, parkingerrors.ErrAmountMismatch):
			return nil, apperrors.Validation("Payment amount does not match reservation amount", map[string]any{
				"reservation_id": reservationID,
			})
		default:
			s.cfg.Log.Error("Failed to pay reservation", "reservation_id", reservationID, "error", err)
			return nil, apperrors.Internal("Failed to pay reservation", err)
		}
	}

	s.cfg.Log.Info("Payment received",
		"reservation_id", r.ID,
		"phone", r.Client.Phone,
		"amount", payment.Amount,
		"method", payment.Method,
	)

	s.notify(r.Client.Phone, "Payment received",
		fmt.Sprintf("Ref: %s Amount: %.2f DT", r.ID, payment.Amount))
	s.publish(events.TypeReservationPaid, strconv.Itoa(r.Spot.ID), r)

	return r, nil
}

func (s *parkingService) GetReservation(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	r, err := s.store.GetReservation(id)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Reservation", id)
	}
	return r, nil
}

// ======= Admin surface =======

func (s *parkingService) GetAllSpots(ctx context.Context) []model.Spot {
	return s.store.ListAllSpots()
}

func (s *parkingService) GetAllReservations(ctx context.Context) []model.Reservation {
	return s.store.ListReservations()
}

func (s *parkingService) AddSpot(ctx context.Context, req *model.AddSpotRequest) (*model.Spot, error) {
	req.Label = sanitizer.NormalizeLabel(req.Label)
	req.Zone = sanitizer.NormalizeZoneName(req.Zone)

	if err := s.validator.ValidateAddSpot(req); err != nil {
		return nil, apperrors.Validation("Spot validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	sp, err := s.store.AddSpot(req.Label, req.Zone)
	if err != nil {
		if errors.Is(err, parkingerrors.ErrZoneNotFound) {
			return nil, apperrors.Validation("Zone does not exist", map[string]any{
				"zone": req.Zone,
			})
		}
		s.cfg.Log.Error("Failed to add spot", "label", req.Label, "zone", req.Zone, "error", err)
		return nil, apperrors.Internal("Failed to add spot", err)
	}

	s.cfg.Log.Info("Spot added", "spot_id", sp.ID, "label", sp.Label, "zone", sp.Zone)
	s.publish(events.TypeSpotAdded, strconv.Itoa(sp.ID), sp)

	return sp, nil
}

func (s *parkingService) RemoveSpot(ctx context.Context, id int) error {
	if err := s.store.RemoveSpot(id); err != nil {
		switch {
		case errors.Is(err, parkingerrors.ErrSpotNotFound):
			return apperrors.NotFoundWithID("Spot", strconv.Itoa(id))
		case errors.Is(err, parkingerrors.ErrSpotReserved):
			return apperrors.Conflict("Spot has an active reservation; cancel it before removing the spot")
		default:
			s.cfg.Log.Error("Failed to remove spot", "spot_id", id, "error", err)
			return apperrors.Internal("Failed to remove spot", err)
		}
	}

	s.cfg.Log.Info("Spot removed", "spot_id", id)
	s.publish(events.TypeSpotRemoved, strconv.Itoa(id), map[string]any{"spot_id": id})

	return nil
}

func (s *parkingService) FreeSpot(ctx context.Context, id int) (*model.Spot, error) {
	sp, removed, err := s.store.FreeSpot(id)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Spot", strconv.Itoa(id))
	}

	s.cfg.Log.Info("Spot freed by admin",
		"spot_id", id,
		"had_reservation", removed != nil,
	)

	if removed != nil {
		s.notify(removed.Client.Phone, "Reservation closed",
			fmt.Sprintf("Ref: %s Spot %s was freed by an administrator", removed.ID, sp.Label))
	}
	s.publish(events.TypeSpotFreed, strconv.Itoa(id), sp)

	return sp, nil
}

func (s *parkingService) CancelReservation(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	r, err := s.store.Cancel(id)
	if err != nil {
		return apperrors.NotFoundWithID("Reservation", id)
	}

	s.cfg.Log.Info("Reservation cancelled",
		"reservation_id", id,
		"spot_id", r.Spot.ID,
		"phone", r.Client.Phone,
	)

	s.notify(r.Client.Phone, "Reservation cancelled",
		fmt.Sprintf("Ref: %s Spot: %s is released", r.ID, r.Spot.Label))
	s.publish(events.TypeReservationCancelled, strconv.Itoa(r.Spot.ID), r)

	return nil
}

func (s *parkingService) AddZone(ctx context.Context, req *model.AddZoneRequest) (*model.Zone, error) {
	req.Name = sanitizer.NormalizeZoneName(req.Name)
	req.Description = sanitizer.TrimAndNormalize(req.Description)

	if err := s.validator.ValidateAddZone(req); err != nil {
		return nil, apperrors.Validation("Zone validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.store.AddZone(req.Name, req.Description); err != nil {
		return nil, apperrors.Conflict(fmt.Sprintf("Zone %q already exists", req.Name))
	}

	zone := &model.Zone{Name: req.Name, Description: req.Description}

	s.cfg.Log.Info("Zone added", "zone", zone.Name)
	s.publish(events.TypeZoneAdded, zone.Name, zone)

	return zone, nil
}

func (s *parkingService) RemoveZone(ctx context.Context, name string) error {
	name = sanitizer.NormalizeZoneName(name)
	if name == "" {
		return apperrors.InvalidInput("Zone name cannot be empty")
	}

	if err := s.store.RemoveZone(name); err != nil {
		switch {
		case errors.Is(err, parkingerrors.ErrZoneNotFound):
			return apperrors.NotFoundWithID("Zone", name)
		case errors.Is(err, parkingerrors.ErrZoneNotEmpty):
			return apperrors.Conflict("Zone still has spots assigned; remove them first")
		default:
			s.cfg.Log.Error("Failed to remove zone", "zone", name, "error", err)
			return apperrors.Internal("Failed to remove zone", err)
		}
	}

	s.cfg.Log.Info("Zone removed", "zone", name)
	s.publish(events.TypeZoneRemoved, name, map[string]any{"zone": name})

	return nil
}

func (s *parkingService) ListSpotsByZone(ctx context.Context, zone string) ([]model.Spot, error) {
	zone = sanitizer.NormalizeZoneName(zone)
	if zone == "" {
		return nil, apperrors.InvalidInput("Zone name cannot be empty")
	}

	spots, err := s.store.ListByZone(zone)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Zone", zone)
	}
	return spots, nil
}

func (s *parkingService) GetSpotHistory(ctx context.Context, id int) ([]model.HistoryEntry, error) {
	history, err := s.store.GetSpotHistory(id)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Spot", strconv.Itoa(id))
	}
	return history, nil
}

// ======= Helpers =======

func (s *parkingService) sanitizeReservation(req *model.ReservationRequest) {
	req.Client.Name = sanitizer.NormalizeName(req.Client.Name)
	req.Client.Phone = sanitizer.NormalizePhone(req.Client.Phone)
	req.Vehicle.Plate = sanitizer.NormalizePlate(req.Vehicle.Plate)
	req.Vehicle.Model = sanitizer.TrimAndNormalize(req.Vehicle.Model)
	req.Vehicle.Color = sanitizer.TrimAndNormalize(req.Vehicle.Color)
}

func (s *parkingService) translateReserveErr(err error, spotID int) error {
	switch {
	case errors.Is(err, parkingerrors.ErrSpotNotFound):
		return apperrors.NotFoundWithID("Spot", strconv.Itoa(spotID))
	case errors.Is(err, parkingerrors.ErrSpotReserved):
		return apperrors.Conflict("Spot is already reserved")
	case errors.Is(err, parkingerrors.ErrInvalidHours):
		return apperrors.InvalidInput("Hours must be a positive integer")
	default:
		s.cfg.Log.Error("Failed to reserve spot", "spot_id", spotID, "error", err)
		return apperrors.Internal("Failed to reserve spot", err)
	}
}

// notify runs after the store operation committed. Delivery is
// fire-and-forget: a slow or missing listener never affects the
// operation that triggered it.
func (s *parkingService) notify(clientKey, title, message string) {
	if s.notifier == nil || clientKey == "" {
		return
	}
	go s.notifier.Push(clientKey, model.Notification{Title: title, Message: message})
}

func (s *parkingService) publish(eventType, key string, payload any) {
	if s.publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.NotifyTimeout)
		defer cancel()
		if err := s.publisher.Publish(ctx, events.New(eventType, key, payload)); err != nil {
			s.cfg.Log.Warn("Failed to publish lifecycle event",
				"event_type", eventType,
				"key", key,
				"error", err,
			)
		}
	}()
}
