package favoriteRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cowork/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrDuplicateFavorite = errors.New("space is already in favorites")

type FavoriteRepository interface {
	Create(ctx context.Context, fav *models.Favorite) error
	FindByUser(ctx context.Context, userID string) ([]models.Favorite, error)
	Exists(ctx context.Context, userID, spaceID string) (bool, error)
	// DeleteByUserAndSpace reports whether a favorite was removed.
	DeleteByUserAndSpace(ctx context.Context, userID, spaceID string) (bool, error)
	DeleteBySpace(ctx context.Context, spaceID string) (int64, error)
}

type mongoFavoriteRepo struct {
	coll *mongo.Collection
}

func NewMongoFavoriteRepo(db *mongo.Database) (FavoriteRepository, error) {
	repo := &mongoFavoriteRepo{coll: db.Collection("favorites")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "coworkingSpace", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create favorite indexes: %w", err)
	}
	return repo, nil
}

func (r *mongoFavoriteRepo) Create(ctx context.Context, fav *models.Favorite) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if fav.ID == "" {
		fav.ID = uuid.New().String()
	}
	fav.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, fav); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateFavorite
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *mongoFavoriteRepo) FindByUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.Favorite{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}
	return out, nil
}

func (r *mongoFavoriteRepo) Exists(ctx context.Context, userID, spaceID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"user": userID, "coworkingSpace": spaceID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return n > 0, nil
}

func (r *mongoFavoriteRepo) DeleteByUserAndSpace(ctx context.Context, userID, spaceID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"user": userID, "coworkingSpace": spaceID})
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *mongoFavoriteRepo) DeleteBySpace(ctx context.Context, spaceID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"coworkingSpace": spaceID})
	if err != nil {
		return 0, fmt.Errorf("failed to remove favorites of space %s: %w", spaceID, err)
	}
	return res.DeletedCount, nil
}
