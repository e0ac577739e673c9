package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/contesthq/contest-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWinRepositoryDayBoundaries(t *testing.T) {
	ctx := context.Background()
	repo := NewWinRepository()
	prizeID := primitive.NewObjectID()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	for _, ts := range []time.Time{
		day,                          // midnight, inclusive
		day.Add(23*time.Hour + 59*time.Minute + 59*time.Second),
		day.AddDate(0, 0, -1),        // previous day
		day.AddDate(0, 0, 1),         // next day's midnight, exclusive
	} {
		require.NoError(t, repo.Create(ctx, &models.WinRecord{PrizeID: prizeID, UserID: "alice", Timestamp: ts}))
	}

	count, err := repo.CountByPrizeAndDate(ctx, prizeID, day.Add(12*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	userCount, err := repo.CountByUserAndDate(ctx, "alice", day.Add(12*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), userCount)

	records, err := repo.FindByPrizeAndDate(ctx, prizeID, day)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Timestamp.Before(records[1].Timestamp))
}

func TestWinRepositoryConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	repo := NewWinRepository()
	prizeID := primitive.NewObjectID()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	const writers = 32
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Create(ctx, &models.WinRecord{PrizeID: prizeID, Timestamp: now})
		}()
	}
	wg.Wait()

	count, err := repo.CountByPrizeAndDate(ctx, prizeID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(writers), count)
}
