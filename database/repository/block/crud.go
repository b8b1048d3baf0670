// File: database/repository/block/crud.go
package blockRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"whenfree/models"
)

func (r *mongoBlockRepo) Create(ctx context.Context, block *models.BusyBlock) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if block.ID == "" {
		block.ID = uuid.New().String()
	}
	if block.CreatedAt.IsZero() {
		block.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, block)
	return err
}

func (r *mongoBlockRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]models.BusyBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var blocks []models.BusyBlock
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *mongoBlockRepo) GetByOwnerIDs(ctx context.Context, ownerIDs []string) (map[string][]models.BusyBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"ownerId": bson.M{"$in": ownerIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var blocks []models.BusyBlock
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, err
	}

	// Seed every requested owner so zero-block users still appear in the map.
	grouped := make(map[string][]models.BusyBlock, len(ownerIDs))
	for _, id := range ownerIDs {
		grouped[id] = []models.BusyBlock{}
	}
	for _, b := range blocks {
		grouped[b.OwnerID] = append(grouped[b.OwnerID], b)
	}
	return grouped, nil
}

func (r *mongoBlockRepo) DeleteByID(ctx context.Context, ownerID, blockID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": blockID, "ownerId": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoBlockRepo) DeleteExpiredBefore(ctx context.Context, cutoffDate string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	filter := bson.M{
		"activeUntil": bson.M{"$gt": "", "$lt": cutoffDate},
	}
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
