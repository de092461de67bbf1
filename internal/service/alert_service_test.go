package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/brunovidal/funnel/internal/alert"
	"github.com/brunovidal/funnel/internal/domain"
	"github.com/brunovidal/funnel/internal/repository"
	"github.com/brunovidal/funnel/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAlertFixture(t *testing.T) (AlertService, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	svc := NewAlertService(
		repository.NewSQLiteBudgetRepo(database),
		repository.NewSQLiteClientRepo(database),
		repository.NewSQLiteReminderRepo(database),
	)
	return svc, database
}

func TestNotifications_FromStoredRecords(t *testing.T) {
	svc, database := newAlertFixture(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	clients := repository.NewSQLiteClientRepo(database)
	acme := testutil.NewTestClient("Acme")
	require.NoError(t, clients.Create(ctx, acme))

	budgets := repository.NewSQLiteBudgetRepo(database)
	overdue := testutil.NewTestBudget("Overdue quote",
		testutil.WithClientID(acme.ID),
		testutil.WithNextFollowUp(now.AddDate(0, 0, -2)))
	dueToday := testutil.NewTestBudget("Due today",
		testutil.WithNextFollowUp(now))
	invoiced := testutil.NewTestBudget("Closed",
		testutil.WithStatus(domain.BudgetInvoiced),
		testutil.WithNextFollowUp(now.AddDate(0, 0, -5)))
	unscheduled := testutil.NewTestBudget("No date")
	for _, b := range []*domain.Budget{overdue, dueToday, invoiced, unscheduled} {
		require.NoError(t, budgets.Create(ctx, b))
	}

	got, err := svc.Notifications(ctx, testutil.TestTenant, now)
	require.NoError(t, err)
	require.Len(t, got, 2, "only the actionable budgets surface")

	// Overdue sorts ahead of due-today.
	assert.Equal(t, alert.NotificationOverdue, got[0].Type)
	assert.Equal(t, overdue.ID, got[0].BudgetID)
	assert.Equal(t, "Acme", got[0].ClientName)

	assert.Equal(t, alert.NotificationToday, got[1].Type)
	assert.Equal(t, dueToday.ID, got[1].BudgetID)
	assert.Equal(t, alert.UnknownClientName, got[1].ClientName, "client row missing for this budget")
}

func TestNotifications_StableAcrossCalls(t *testing.T) {
	svc, database := newAlertFixture(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	budgets := repository.NewSQLiteBudgetRepo(database)
	b := testutil.NewTestBudget("Overdue quote",
		testutil.WithNextFollowUp(now.AddDate(0, 0, -1)))
	require.NoError(t, budgets.Create(ctx, b))

	first, err := svc.Notifications(ctx, testutil.TestTenant, now)
	require.NoError(t, err)
	second, err := svc.Notifications(ctx, testutil.TestTenant, now)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEvaluateReminders_HolderPersistsAcrossPasses(t *testing.T) {
	svc, database := newAlertFixture(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	reminders := repository.NewSQLiteReminderRepo(database)
	early := testutil.NewTestReminder("first", testutil.WithRemindAt(now.Add(-2*time.Hour)))
	late := testutil.NewTestReminder("second", testutil.WithRemindAt(now.Add(-1*time.Hour)))
	require.NoError(t, reminders.Create(ctx, early))
	require.NoError(t, reminders.Create(ctx, late))

	eval, err := svc.EvaluateReminders(ctx, testutil.TestTenant, now)
	require.NoError(t, err)
	require.NotNil(t, eval.Triggering)
	assert.Equal(t, early.ID, eval.Triggering.ID, "earliest due reminder wins the slot")
	assert.Len(t, eval.Sorted, 2)

	// The held reminder keeps the slot on the next pass even though another
	// reminder is also due.
	eval, err = svc.EvaluateReminders(ctx, testutil.TestTenant, now.Add(time.Minute))
	require.NoError(t, err)
	require.NotNil(t, eval.Triggering)
	assert.Equal(t, early.ID, eval.Triggering.ID)
}

func TestEvaluateReminders_DismissReleasesSlot(t *testing.T) {
	svc, database := newAlertFixture(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	repo := repository.NewSQLiteReminderRepo(database)
	early := testutil.NewTestReminder("first", testutil.WithRemindAt(now.Add(-2*time.Hour)))
	late := testutil.NewTestReminder("second", testutil.WithRemindAt(now.Add(-1*time.Hour)))
	require.NoError(t, repo.Create(ctx, early))
	require.NoError(t, repo.Create(ctx, late))

	eval, err := svc.EvaluateReminders(ctx, testutil.TestTenant, now)
	require.NoError(t, err)
	require.NotNil(t, eval.Triggering)
	require.Equal(t, early.ID, eval.Triggering.ID)

	rsvc := NewReminderService(repo, nil)
	_, err = rsvc.Dismiss(ctx, early.ID)
	require.NoError(t, err)

	eval, err = svc.EvaluateReminders(ctx, testutil.TestTenant, now.Add(time.Minute))
	require.NoError(t, err)
	require.NotNil(t, eval.Triggering)
	assert.Equal(t, late.ID, eval.Triggering.ID, "dismissal frees the slot for the next due reminder")
}

func TestEvaluateReminders_NoneDue(t *testing.T) {
	svc, database := newAlertFixture(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	repo := repository.NewSQLiteReminderRepo(database)
	future := testutil.NewTestReminder("later", testutil.WithRemindAt(now.Add(time.Hour)))
	require.NoError(t, repo.Create(ctx, future))

	eval, err := svc.EvaluateReminders(ctx, testutil.TestTenant, now)
	require.NoError(t, err)
	assert.Nil(t, eval.Triggering)
	assert.Len(t, eval.Sorted, 1)
}
