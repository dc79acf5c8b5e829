package spaceRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cowork/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new space, assigning its ID and creation time.
func (r *mongoSpaceRepo) Create(ctx context.Context, space *models.CoworkingSpace) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if space.ID == "" {
		space.ID = uuid.New().String()
	}
	space.Name = strings.TrimSpace(space.Name)
	space.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, space); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to create space: %w", err)
	}
	return nil
}

// GetByID returns a space by ID.
func (r *mongoSpaceRepo) GetByID(ctx context.Context, id string) (*models.CoworkingSpace, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var space models.CoworkingSpace
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&space); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch space %s: %w", id, err)
	}
	return &space, nil
}

// Update applies the non-nil fields and returns the updated document.
func (r *mongoSpaceRepo) Update(ctx context.Context, id string, update models.SpaceUpdate) (*models.CoworkingSpace, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{}
	if update.Name != nil {
		set["name"] = strings.TrimSpace(*update.Name)
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}
	if update.Tel != nil {
		set["tel"] = *update.Tel
	}
	if update.OpenTime != nil {
		set["openTime"] = *update.OpenTime
	}
	if update.CloseTime != nil {
		set["closeTime"] = *update.CloseTime
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var space models.CoworkingSpace
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&space)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update space %s: %w", id, err)
	}
	return &space, nil
}

// Delete removes a space by ID.
func (r *mongoSpaceRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete space %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrSpaceNotFound
	}
	return nil
}
