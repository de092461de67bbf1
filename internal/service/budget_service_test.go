package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/brunovidal/funnel/internal/domain"
	"github.com/brunovidal/funnel/internal/repository"
	"github.com/brunovidal/funnel/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetCreate_DefaultsAndValidation(t *testing.T) {
	svc, _ := newBudgetService(t)
	ctx := context.Background()

	b := testutil.NewTestBudget("New quote")
	b.Status = ""
	require.NoError(t, svc.Create(ctx, b))
	assert.Equal(t, domain.BudgetSent, b.Status)
	assert.NotEmpty(t, b.ID)

	bad := testutil.NewTestBudget("Bad quote", testutil.WithValue(0))
	err := svc.Create(ctx, bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRecordFollowUp_FromOnHold(t *testing.T) {
	// An on-hold budget with no scheduled date: recording a follow-up moves
	// it to following_up, grows the log by exactly one and leaves the
	// schedule cleared.
	svc, _ := newBudgetService(t)
	ctx := context.Background()

	b := testutil.NewTestBudget("Stalled deal", testutil.WithStatus(domain.BudgetOnHold))
	require.NoError(t, svc.Create(ctx, b))

	updated, err := svc.RecordFollowUp(ctx, b.ID, "called client", nil, domain.TagNone, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.BudgetFollowingUp, updated.Status)
	require.Len(t, updated.FollowUps, 1)
	assert.Equal(t, "called client", updated.FollowUps[0].Note)
	assert.Nil(t, updated.NextFollowUp)

	got, err := svc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BudgetFollowingUp, got.Status)
	assert.Len(t, got.FollowUps, 1)
}

func TestRecordFollowUp_SchedulesNextDate(t *testing.T) {
	svc, _ := newBudgetService(t)
	ctx := context.Background()

	b := testutil.NewTestBudget("Quote")
	require.NoError(t, svc.Create(ctx, b))

	next := time.Now().UTC().AddDate(0, 0, 3).Truncate(time.Second)
	updated, err := svc.RecordFollowUp(ctx, b.ID, "sent revised pricing", nil, domain.TagWaitingResponse, &next)
	require.NoError(t, err)
	require.NotNil(t, updated.NextFollowUp)
	assert.True(t, updated.NextFollowUp.Equal(next))
	assert.Equal(t, domain.TagWaitingResponse, updated.FollowUps[0].Tag)
}

func TestRecordFollowUp_EmptyContentRejectedBeforeWrite(t *testing.T) {
	svc, _ := newBudgetService(t)
	ctx := context.Background()

	b := testutil.NewTestBudget("Quote")
	require.NoError(t, svc.Create(ctx, b))

	_, err := svc.RecordFollowUp(ctx, b.ID, "  ", nil, domain.TagNone, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := svc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, got.FollowUps, "rejected follow-up must not be persisted")
	assert.Equal(t, domain.BudgetSent, got.Status)
}

func TestRecordFollowUp_MissingBudget(t *testing.T) {
	svc, _ := newBudgetService(t)
	_, err := svc.RecordFollowUp(context.Background(), "nope", "note", nil, domain.TagNone, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestChangeStatus_TerminalClearsSchedule(t *testing.T) {
	svc, _ := newBudgetService(t)
	ctx := context.Background()

	next := time.Now().UTC().AddDate(0, 0, 2)
	b := testutil.NewTestBudget("Quote", testutil.WithNextFollowUp(next))
	require.NoError(t, svc.Create(ctx, b))

	updated, err := svc.ChangeStatus(ctx, b.ID, domain.BudgetInvoiced)
	require.NoError(t, err)
	assert.Equal(t, domain.BudgetInvoiced, updated.Status)
	assert.Nil(t, updated.NextFollowUp)

	got, err := svc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got.NextFollowUp)
}

func TestMarkLost_PersistsReason(t *testing.T) {
	svc, _ := newBudgetService(t)
	ctx := context.Background()

	b := testutil.NewTestBudget("Quote", testutil.WithStatus(domain.BudgetFollowingUp))
	require.NoError(t, svc.Create(ctx, b))

	_, err := svc.MarkLost(ctx, b.ID, domain.LostReasonNoResponse, "stopped answering")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BudgetLost, got.Status)
	assert.Equal(t, domain.LostReasonNoResponse, got.LostReason)
	assert.Equal(t, "stopped answering", got.LostNotes)
}

func TestConfirmWin_FullValue_SingleRecord(t *testing.T) {
	svc, database := newBudgetService(t)
	ctx := context.Background()

	b := testutil.NewTestBudget("Quote", testutil.WithValue(1000))
	require.NoError(t, svc.Create(ctx, b))

	result, err := svc.ConfirmWin(ctx, b.ID, decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.Nil(t, result.LostSibling)
	assert.Equal(t, domain.BudgetInvoiced, result.Budget.Status)
	assert.True(t, result.Budget.Value.Equal(decimal.NewFromInt(1000)))

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM budgets`).Scan(&count))
	assert.Equal(t, 1, count, "full win must not create a sibling")
}

func TestConfirmWin_PartialSplit(t *testing.T) {
	svc, _ := newBudgetService(t)
	ctx := context.Background()

	b := testutil.NewTestBudget("Quote", testutil.WithValue(1000))
	require.NoError(t, svc.Create(ctx, b))

	result, err := svc.ConfirmWin(ctx, b.ID, decimal.NewFromInt(700))
	require.NoError(t, err)

	assert.Equal(t, domain.BudgetInvoiced, result.Budget.Status)
	assert.True(t, result.Budget.Value.Equal(decimal.NewFromInt(700)))

	sibling := result.LostSibling
	require.NotNil(t, sibling)
	assert.NotEqual(t, b.ID, sibling.ID, "sibling is a distinct persisted entity")
	assert.Equal(t, domain.BudgetLost, sibling.Status)
	assert.True(t, sibling.Value.Equal(decimal.NewFromInt(300)))

	persisted, err := svc.GetByID(ctx, sibling.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BudgetLost, persisted.Status)
	require.Len(t, persisted.FollowUps, 1, "sibling carries the narration follow-up")
	assert.True(t, strings.HasPrefix(persisted.Title, domain.PartialLossTitlePrefix))
	assert.Contains(t, persisted.FollowUps[0].Note, "Partial win")
	assert.Contains(t, persisted.FollowUps[0].Note, "$ 700.00")
	assert.Contains(t, persisted.FollowUps[0].Note, "$ 300.00")
}

func TestConfirmWin_SplitConservation(t *testing.T) {
	svc, _ := newBudgetService(t)
	ctx := context.Background()

	b := testutil.NewTestBudget("Quote", testutil.WithValue(1000))
	require.NoError(t, svc.Create(ctx, b))

	result, err := svc.ConfirmWin(ctx, b.ID, decimal.NewFromInt(333))
	require.NoError(t, err)
	require.NotNil(t, result.LostSibling)

	sum := result.Budget.Value.Add(result.LostSibling.Value)
	assert.True(t, sum.Equal(decimal.NewFromInt(1000)),
		"%s + %s != 1000", result.Budget.Value, result.LostSibling.Value)
}

func TestConfirmWin_NonPositiveRejected(t *testing.T) {
	svc, database := newBudgetService(t)
	ctx := context.Background()

	b := testutil.NewTestBudget("Quote", testutil.WithValue(1000))
	require.NoError(t, svc.Create(ctx, b))

	_, err := svc.ConfirmWin(ctx, b.ID, decimal.Zero)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, ErrSplitFailed)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM budgets`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestConfirmWin_MissingBudget(t *testing.T) {
	svc, _ := newBudgetService(t)
	_, err := svc.ConfirmWin(context.Background(), "nope", decimal.NewFromInt(100))
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestConfirmWin_AlreadyTerminal(t *testing.T) {
	svc, _ := newBudgetService(t)
	ctx := context.Background()

	b := testutil.NewTestBudget("Quote", testutil.WithStatus(domain.BudgetLost))
	require.NoError(t, svc.Create(ctx, b))

	_, err := svc.ConfirmWin(ctx, b.ID, decimal.NewFromInt(500))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
