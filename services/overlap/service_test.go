package overlap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whenfree/models"
)

type stubBlockRepo struct {
	blocks map[string][]models.BusyBlock
	err    error
}

func (r *stubBlockRepo) Create(context.Context, *models.BusyBlock) error { return nil }
func (r *stubBlockRepo) GetByOwnerID(context.Context, string) ([]models.BusyBlock, error) {
	return nil, nil
}
func (r *stubBlockRepo) DeleteByID(context.Context, string, string) error { return nil }
func (r *stubBlockRepo) DeleteExpiredBefore(context.Context, string) (int64, error) {
	return 0, nil
}

func (r *stubBlockRepo) GetByOwnerIDs(_ context.Context, ownerIDs []string) (map[string][]models.BusyBlock, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make(map[string][]models.BusyBlock, len(ownerIDs))
	for _, id := range ownerIDs {
		out[id] = r.blocks[id]
	}
	return out, nil
}

func TestSharedFreeWindowsFetchesAndComputes(t *testing.T) {
	svc := &DefaultOverlapService{BlockRepo: &stubBlockRepo{
		blocks: map[string][]models.BusyBlock{
			"user1": {weeklyBlock("user1", 9*60, 9*60+50, []time.Weekday{time.Monday}, "2026-01-01", "")},
		},
	}}

	windows, err := svc.SharedFreeWindows(context.Background(), []string{"user1", "user2"},
		instant(t, monday, 0, 0), instant(t, tuesday, 0, 0), 2)
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, []string{"user1", "user2"}, windows[0].FreeUserIDs)
}

func TestSharedFreeWindowsWrapsStoreFailure(t *testing.T) {
	svc := &DefaultOverlapService{BlockRepo: &stubBlockRepo{err: errors.New("connection refused")}}

	_, err := svc.SharedFreeWindows(context.Background(), []string{"user1"},
		instant(t, monday, 0, 0), instant(t, tuesday, 0, 0), 1)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestSharedFreeWindowsRejectsMalformedStoredBlock(t *testing.T) {
	svc := &DefaultOverlapService{BlockRepo: &stubBlockRepo{
		blocks: map[string][]models.BusyBlock{
			"user1": {weeklyBlock("user1", 10*60, 9*60, []time.Weekday{time.Monday}, "2026-01-01", "")},
		},
	}}

	_, err := svc.SharedFreeWindows(context.Background(), []string{"user1"},
		instant(t, monday, 0, 0), instant(t, tuesday, 0, 0), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)
}
