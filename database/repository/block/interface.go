// File: database/repository/block/interface.go
package blockRepo

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/mongo"

	"whenfree/database"
	"whenfree/models"
)

// BlockRepository defines data access for recurring busy blocks.
type BlockRepository interface {
	// Create inserts a new busy block.
	Create(ctx context.Context, block *models.BusyBlock) error
	// GetByOwnerID retrieves all blocks owned by one user.
	GetByOwnerID(ctx context.Context, ownerID string) ([]models.BusyBlock, error)
	// GetByOwnerIDs retrieves blocks for a set of users, grouped by owner.
	// Every requested owner is present in the result, empty-handed or not.
	GetByOwnerIDs(ctx context.Context, ownerIDs []string) (map[string][]models.BusyBlock, error)
	// DeleteByID removes one block owned by the given user.
	DeleteByID(ctx context.Context, ownerID, blockID string) error
	// DeleteExpiredBefore removes blocks whose activeUntil date is strictly
	// before the cutoff date ("2006-01-02"). Unbounded blocks are kept.
	DeleteExpiredBefore(ctx context.Context, cutoffDate string) (int64, error)
}

type mongoBlockRepo struct {
	coll *mongo.Collection
}

// NewMongoBlockRepo constructs a MongoDB-backed BlockRepository.
func NewMongoBlockRepo() BlockRepository {
	r := &mongoBlockRepo{coll: database.DB().Collection("busy_blocks")}
	if err := r.EnsureIndexes(); err != nil {
		log.Printf("busy block indexes: %v", err)
	}
	return r
}
