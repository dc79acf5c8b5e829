package spaceRepo

import (
	"context"
	"fmt"
	"time"

	"cowork/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Find runs a filtered, sorted, paginated directory query.
func (r *mongoSpaceRepo) Find(ctx context.Context, query models.SpaceQuery) ([]models.CoworkingSpace, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := buildFilter(query.Filters)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count spaces: %w", err)
	}

	opts := options.Find().SetSort(buildSort(query.Sort)).SetSkip(query.Skip)
	if query.Limit > 0 {
		opts.SetLimit(query.Limit)
	}
	if len(query.Select) > 0 {
		projection := bson.M{"_id": 1}
		for _, f := range query.Select {
			projection[f] = 1
		}
		opts.SetProjection(projection)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list spaces: %w", err)
	}
	defer cursor.Close(ctx)

	spaces := []models.CoworkingSpace{}
	if err := cursor.All(ctx, &spaces); err != nil {
		return nil, 0, fmt.Errorf("failed to decode spaces: %w", err)
	}
	return spaces, total, nil
}

// buildFilter ANDs every condition. A lone equality stays a plain value; once a
// field also carries an operator the equality moves into the same document as $eq.
func buildFilter(filters []models.FieldFilter) bson.M {
	out := bson.M{}
	for _, f := range filters {
		existing, seen := out[f.Field]
		cond, isCond := existing.(bson.M)
		if f.Op == models.OpEq && !seen {
			out[f.Field] = f.Values[0]
			continue
		}
		if !isCond {
			cond = bson.M{}
			if seen {
				cond["$eq"] = existing
			}
			out[f.Field] = cond
		}
		switch f.Op {
		case models.OpEq:
			cond["$eq"] = f.Values[0]
		case models.OpIn:
			cond["$in"] = f.Values
		default:
			cond["$"+string(f.Op)] = f.Values[0]
		}
	}
	return out
}

func buildSort(fields []models.SortField) bson.D {
	if len(fields) == 0 {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	sort := make(bson.D, 0, len(fields))
	for _, f := range fields {
		dir := 1
		if f.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: f.Field, Value: dir})
	}
	return sort
}
