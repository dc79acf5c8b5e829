package spaceRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoSpaceRepo struct {
	coll *mongo.Collection
}

// NewMongoSpaceRepo returns a SpaceRepository backed by the coworkingspaces collection.
func NewMongoSpaceRepo(db *mongo.Database) (SpaceRepository, error) {
	repo := &mongoSpaceRepo{coll: db.Collection("coworkingspaces")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *mongoSpaceRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create space indexes: %w", err)
	}
	return nil
}
