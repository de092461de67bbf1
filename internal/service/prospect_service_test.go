package service

import (
	"context"
	"errors"
	"testing"

	"github.com/brunovidal/funnel/internal/domain"
	"github.com/brunovidal/funnel/internal/repository"
	"github.com/brunovidal/funnel/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProspectConvert_ConsumesProspect(t *testing.T) {
	database := testutil.NewTestDB(t)
	prospects := repository.NewSQLiteProspectRepo(database)
	budgets := repository.NewSQLiteBudgetRepo(database)
	svc := NewProspectService(prospects, testutil.NewTestUoW(database), nil)
	ctx := context.Background()

	p := testutil.NewTestProspect("Acme lead")
	clientID := uuid.New().String()
	p.ClientID = &clientID
	require.NoError(t, svc.Create(ctx, p))

	b, err := svc.Convert(ctx, p.ID, "Acme quote", decimal.NewFromInt(2500))
	require.NoError(t, err)
	assert.Equal(t, domain.BudgetSent, b.Status)
	assert.Equal(t, clientID, b.ClientID)
	assert.True(t, b.Value.Equal(decimal.NewFromInt(2500)))

	_, err = prospects.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound, "converted prospect is consumed")

	got, err := budgets.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme quote", got.Title)
}

func TestProspectConvert_EmptyTitleFallsBackToName(t *testing.T) {
	database := testutil.NewTestDB(t)
	prospects := repository.NewSQLiteProspectRepo(database)
	svc := NewProspectService(prospects, testutil.NewTestUoW(database), nil)
	ctx := context.Background()

	p := testutil.NewTestProspect("Acme lead")
	clientID := uuid.New().String()
	p.ClientID = &clientID
	require.NoError(t, svc.Create(ctx, p))

	b, err := svc.Convert(ctx, p.ID, "", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, "Acme lead", b.Title)
}

func TestProspectConvert_FailureKeepsProspect(t *testing.T) {
	database := testutil.NewTestDB(t)
	prospects := repository.NewSQLiteProspectRepo(database)
	ctx := context.Background()

	setup := NewProspectService(prospects, testutil.NewTestUoW(database), nil)
	p := testutil.NewTestProspect("Acme lead")
	clientID := uuid.New().String()
	p.ClientID = &clientID
	require.NoError(t, setup.Create(ctx, p))

	// First exec inside the transaction is the budget insert; failing the
	// second (the prospect delete) must roll back both writes.
	injected := errors.New("disk full")
	failing := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: injected}
	svc := NewProspectService(prospects, failing, nil)

	_, err := svc.Convert(ctx, p.ID, "Acme quote", decimal.NewFromInt(2500))
	require.Error(t, err)
	assert.ErrorIs(t, err, injected)

	_, err = prospects.GetByID(ctx, p.ID)
	assert.NoError(t, err, "failed conversion leaves the prospect intact")

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM budgets`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestProspectConvert_MissingClientRejected(t *testing.T) {
	database := testutil.NewTestDB(t)
	prospects := repository.NewSQLiteProspectRepo(database)
	svc := NewProspectService(prospects, testutil.NewTestUoW(database), nil)
	ctx := context.Background()

	p := testutil.NewTestProspect("Unlinked lead")
	require.NoError(t, svc.Create(ctx, p))

	_, err := svc.Convert(ctx, p.ID, "Quote", decimal.NewFromInt(100))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = prospects.GetByID(ctx, p.ID)
	assert.NoError(t, err)
}

func TestProspectConvert_NonPositiveValue(t *testing.T) {
	database := testutil.NewTestDB(t)
	prospects := repository.NewSQLiteProspectRepo(database)
	svc := NewProspectService(prospects, testutil.NewTestUoW(database), nil)

	_, err := svc.Convert(context.Background(), "whatever", "Quote", decimal.Zero)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
