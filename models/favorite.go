package models

import "time"

// Favorite marks a space for a user. (UserID, CoworkingSpaceID) is unique.
type Favorite struct {
	ID               string    `bson:"_id" json:"_id"`
	UserID           string    `bson:"user" json:"user"`
	CoworkingSpaceID string    `bson:"coworkingSpace" json:"-"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
}

// FavoriteView embeds the space summary.
type FavoriteView struct {
	Favorite
	CoworkingSpace any `json:"coworkingSpace"`
}

// FavoriteRequest is the body of POST /favorites.
type FavoriteRequest struct {
	CoworkingSpaceID string `json:"coworkingSpaceId" binding:"required"`
}
