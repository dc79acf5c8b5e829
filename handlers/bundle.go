package handlers

import "cowork/services/auth"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// AuthService backs the pending-login and session gates.
	AuthService auth.AuthService

	Auth         *AuthHandler
	Spaces       *SpaceHandler
	Reservations *ReservationHandler
	Favorites    *FavoriteHandler
}
