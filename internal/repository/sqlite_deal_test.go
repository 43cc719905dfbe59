package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelinecarr/dealsense/internal/domain"
	"github.com/avelinecarr/dealsense/internal/testutil"
)

func TestDealRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDealRepo(db)
	ctx := context.Background()

	created := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	deal := testutil.NewTestDeal("Acme Corp",
		testutil.WithValue(150_000),
		testutil.WithStage(domain.StageProposal),
		testutil.WithCreatedAt(created),
	)
	require.NoError(t, repo.Create(ctx, deal))

	fetched, err := repo.GetByID(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, deal.ID, fetched.ID)
	assert.Equal(t, "Acme Corp", fetched.Name)
	assert.Equal(t, domain.StageProposal, fetched.Stage)
	assert.Equal(t, 150_000.0, fetched.Value)
	assert.True(t, fetched.CreatedAt.Equal(created))
	assert.Nil(t, fetched.ArchivedAt)
}

func TestDealRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDealRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDealRepo_GetByPrefix(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDealRepo(db)
	ctx := context.Background()

	deal := testutil.NewTestDeal("Globex")
	require.NoError(t, repo.Create(ctx, deal))

	fetched, err := repo.GetByPrefix(ctx, deal.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, deal.ID, fetched.ID)

	_, err = repo.GetByPrefix(ctx, "zzzzzzzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDealRepo_List_ExcludesArchived(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDealRepo(db)
	ctx := context.Background()

	live := testutil.NewTestDeal("Live")
	require.NoError(t, repo.Create(ctx, live))
	gone := testutil.NewTestDeal("Gone")
	require.NoError(t, repo.Create(ctx, gone))
	require.NoError(t, repo.Archive(ctx, gone.ID))

	deals, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Equal(t, "Live", deals[0].Name)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDealRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDealRepo(db)
	ctx := context.Background()

	deal := testutil.NewTestDeal("Initech")
	require.NoError(t, repo.Create(ctx, deal))

	deal.Stage = domain.StageNegotiation
	deal.Value = 90_000
	deal.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, deal))

	fetched, err := repo.GetByID(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageNegotiation, fetched.Stage)
	assert.Equal(t, 90_000.0, fetched.Value)
}

func TestDealRepo_Update_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDealRepo(db)

	ghost := testutil.NewTestDeal("Ghost")
	err := repo.Update(context.Background(), ghost)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDealRepo_UpdateSignalCache(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDealRepo(db)
	ctx := context.Background()

	deal := testutil.NewTestDeal("Hooli")
	require.NoError(t, repo.Create(ctx, deal))

	deal.Status = domain.DealAtRisk
	deal.RiskScore = 0.75
	deal.RiskLevel = domain.RiskHigh
	deal.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.UpdateSignalCache(ctx, deal))

	fetched, err := repo.GetByID(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DealAtRisk, fetched.Status)
	assert.Equal(t, 0.75, fetched.RiskScore)
	assert.Equal(t, domain.RiskHigh, fetched.RiskLevel)
	// Non-cache fields are untouched.
	assert.Equal(t, "Hooli", fetched.Name)
}

func TestDealRepo_ArchiveAndUnarchive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDealRepo(db)
	ctx := context.Background()

	deal := testutil.NewTestDeal("Umbrella")
	require.NoError(t, repo.Create(ctx, deal))

	require.NoError(t, repo.Archive(ctx, deal.ID))
	fetched, err := repo.GetByID(ctx, deal.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.ArchivedAt)

	require.NoError(t, repo.Unarchive(ctx, deal.ID))
	fetched, err = repo.GetByID(ctx, deal.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.ArchivedAt)
}

func TestDealRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDealRepo(db)
	ctx := context.Background()

	deal := testutil.NewTestDeal("Doomed")
	require.NoError(t, repo.Create(ctx, deal))
	require.NoError(t, repo.Delete(ctx, deal.ID))

	_, err := repo.GetByID(ctx, deal.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
