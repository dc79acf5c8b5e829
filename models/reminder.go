package models

import "time"

// ReminderPayload is the asynq task body for a reservation reminder.
type ReminderPayload struct {
	ReservationID   string    `json:"reservationId"`
	UserID          string    `json:"userId"`
	SpaceName       string    `json:"spaceName"`
	ReservationDate time.Time `json:"reservationDate"`
}
