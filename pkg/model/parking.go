package model

import "time"

// Zone groups parking spots under a unique (case-insensitive) name.
type Zone struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description,omitempty" validate:"omitempty,max=200"`
}

type HistoryKind string

const (
	HistoryReservation HistoryKind = "RESERVATION"
	HistoryPayment     HistoryKind = "PAYMENT"
	HistoryFree        HistoryKind = "FREE"
	HistoryCancel      HistoryKind = "CANCEL"
)

// HistoryEntry is an immutable audit record of an event on one spot.
// Amount is 0 when no money was involved.
type HistoryEntry struct {
	At      time.Time   `json:"at"`
	Kind    HistoryKind `json:"kind"`
	Details string      `json:"details"`
	Amount  float64     `json:"amount"`
}

// Spot is a read-only snapshot of a parking spot. History is ordered
// newest first.
type Spot struct {
	ID       int            `json:"id"`
	Label    string         `json:"label"`
	Zone     string         `json:"zone"`
	Reserved bool           `json:"reserved"`
	History  []HistoryEntry `json:"history,omitempty"`
}

type ClientInfo struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Phone string `json:"phone" validate:"required,e164"`
}

type Vehicle struct {
	Plate string `json:"plate" validate:"required,min=2,max=16"`
	Model string `json:"model,omitempty" validate:"omitempty,max=50"`
	Color string `json:"color,omitempty" validate:"omitempty,max=30"`
}

// Reservation is a client's claim on a spot for a priced duration.
// Amount is frozen at creation time; later rate changes do not touch it.
type Reservation struct {
	ID        string     `json:"id"`
	Client    ClientInfo `json:"client"`
	Vehicle   Vehicle    `json:"vehicle"`
	Spot      Spot       `json:"spot"`
	Hours     int        `json:"hours"`
	Amount    float64    `json:"amount"`
	Paid      bool       `json:"paid"`
	CreatedAt time.Time  `json:"created_at"`
}

type Payment struct {
	Method string  `json:"method" validate:"required,oneof=card cash mobile"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// Notification is an ephemeral best-effort message pushed to a
// registered client. It is never persisted.
type Notification struct {
	Title   string    `json:"title"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type ReservationRequest struct {
	Client  ClientInfo `json:"client" validate:"required"`
	Vehicle Vehicle    `json:"vehicle" validate:"required"`
	SpotID  int        `json:"spot_id" validate:"required,min=1"`
	Hours   int        `json:"hours" validate:"required,min=1"`
}

type AddSpotRequest struct {
	Label string `json:"label" validate:"required,min=2,max=20"`
	Zone  string `json:"zone" validate:"required,min=2,max=50"`
}

type AddZoneRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description,omitempty" validate:"omitempty,max=200"`
}
