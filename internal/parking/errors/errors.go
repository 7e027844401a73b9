package errors

import "errors"

var (
	ErrZoneExists   = errors.New("zone with this name already exists")
	ErrZoneNotFound = errors.New("zone not found")
	ErrZoneNotEmpty = errors.New("zone still has spots assigned to it")

	ErrSpotNotFound = errors.New("spot not found")
	ErrSpotReserved = errors.New("spot is already reserved")

	ErrReservationNotFound = errors.New("reservation not found")
	ErrAmountMismatch      = errors.New("payment amount does not match reservation amount")
	ErrAlreadyPaid         = errors.New("reservation is already paid")

	ErrInvalidHours = errors.New("hours must be a positive integer")
)
