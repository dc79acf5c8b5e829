package models

import "time"

// Reservation books a coworking space for one user on one date.
type Reservation struct {
	ID               string    `bson:"_id" json:"_id"`
	ReservationDate  time.Time `bson:"reservationDate" json:"reservationDate"`
	UserID           string    `bson:"user" json:"user"`
	CoworkingSpaceID string    `bson:"coworkingSpace" json:"-"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
}

// ReservationView is a reservation with its space embedded, as returned to clients.
type ReservationView struct {
	Reservation
	CoworkingSpace any `json:"coworkingSpace"`
}

// ReservationFilter narrows reservation lookups. Empty fields match everything.
type ReservationFilter struct {
	UserID           string
	CoworkingSpaceID string
}

// ReservationRequest is the body of POST and PUT reservation calls.
type ReservationRequest struct {
	ReservationDate time.Time `json:"reservationDate" binding:"required"`
}
