package overlap

import (
	"context"
	"errors"
	"fmt"
	"time"

	blockRepo "whenfree/database/repository/block"
	"whenfree/models"
)

// ErrStoreUnavailable wraps failures fetching busy blocks from the persistent
// store. The engine is never reached when it occurs.
var ErrStoreUnavailable = errors.New("busy block store unavailable")

// OverlapService computes shared free-time windows for a set of users.
type OverlapService interface {
	SharedFreeWindows(ctx context.Context, userIDs []string, rangeStart, rangeEnd time.Time, minFreeUsers int) ([]models.OverlapWindow, error)
}

// DefaultOverlapService fetches each user's blocks and runs the engine.
type DefaultOverlapService struct {
	BlockRepo blockRepo.BlockRepository
}

func (s *DefaultOverlapService) SharedFreeWindows(ctx context.Context, userIDs []string, rangeStart, rangeEnd time.Time, minFreeUsers int) ([]models.OverlapWindow, error) {
	usersBlocks, err := s.BlockRepo.GetByOwnerIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// Stored blocks were validated at ingestion; a malformed one surfacing
	// here is a contract violation and aborts the query.
	for _, blocks := range usersBlocks {
		for _, b := range blocks {
			if err := ValidateBlock(b); err != nil {
				return nil, fmt.Errorf("stored block %q is malformed: %w", b.ID, err)
			}
		}
	}

	return ComputeOverlaps(usersBlocks, rangeStart, rangeEnd, minFreeUsers)
}
