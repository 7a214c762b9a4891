package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

type fakeVenueWriter struct {
	deleted   int
	inserted  []*models.CatalogEntry
	deleteErr error
}

func (f *fakeVenueWriter) DeleteAll(context.Context) error {
	f.deleted++
	return f.deleteErr
}

func (f *fakeVenueWriter) BulkCreate(_ context.Context, entries []*models.CatalogEntry) error {
	f.inserted = append(f.inserted, entries...)
	return nil
}

func (f *fakeVenueWriter) Count(context.Context) (int, error) {
	return len(f.inserted), nil
}

func TestSeedVenuesCreatesRequestedCount(t *testing.T) {
	dest := &fakeVenueWriter{}
	cfg := &models.Config{SeedVenues: 45, Seed: 42}

	require.NoError(t, seedVenues(context.Background(), dest, cfg))

	assert.Len(t, dest.inserted, 45)
	assert.Zero(t, dest.deleted, "without --fresh the existing venues stay")
}

func TestSeedVenuesFreshWipesFirst(t *testing.T) {
	dest := &fakeVenueWriter{}
	cfg := &models.Config{SeedVenues: 5, Seed: 42, SeedFresh: true}

	require.NoError(t, seedVenues(context.Background(), dest, cfg))

	assert.Equal(t, 1, dest.deleted)
	assert.Len(t, dest.inserted, 5)
}

func TestSeedVenuesFreshWipeFailureAborts(t *testing.T) {
	dest := &fakeVenueWriter{deleteErr: errors.New("permission denied")}
	cfg := &models.Config{SeedVenues: 5, Seed: 42, SeedFresh: true}

	err := seedVenues(context.Background(), dest, cfg)

	require.Error(t, err)
	assert.Empty(t, dest.inserted, "nothing is inserted when the wipe fails")
}
