package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/brunovidal/funnel/internal/domain"
	"github.com/brunovidal/funnel/internal/repository"
	"github.com/brunovidal/funnel/internal/service"
	"github.com/brunovidal/funnel/internal/testutil"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	budgetRepo := repository.NewSQLiteBudgetRepo(database)
	reminderRepo := repository.NewSQLiteReminderRepo(database)
	clientRepo := repository.NewSQLiteClientRepo(database)
	prospectRepo := repository.NewSQLiteProspectRepo(database)
	uow := testutil.NewTestUoW(database)
	amounts := domain.NewAmountFormatter(language.English, "$")

	return &App{
		Budgets:   service.NewBudgetService(budgetRepo, uow, amounts, nil),
		Reminders: service.NewReminderService(reminderRepo, nil),
		Clients:   service.NewClientService(clientRepo, nil),
		Prospects: service.NewProspectService(prospectRepo, uow, nil),
		Alerts:    service.NewAlertService(budgetRepo, clientRepo, reminderRepo),
		Amounts:   amounts,
		TenantID:  testutil.TestTenant,
		OwnerID:   testutil.TestOwner,
		// Engine left nil — watch is not exercised here.
	}
}

// executeCmd runs a cobra command and captures cobra-level output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func seedBudget(t *testing.T, app *App, opts ...testutil.BudgetOption) *domain.Budget {
	t.Helper()
	b := testutil.NewTestBudget("CLI test quote", opts...)
	require.NoError(t, app.Budgets.Create(context.Background(), b))
	return b
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "funnel")
}

func TestBudgetAddCmd_RequiresFlags(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "budget", "add", "--title", "Quote")
	assert.Error(t, err)
}

func TestBudgetAddCmd_CreatesBudget(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "budget", "add",
		"--client", uuid.New().String(),
		"--title", "Quote",
		"--value", "1234.50")
	require.NoError(t, err)

	budgets, err := app.Budgets.ListByTenant(context.Background(), app.TenantID)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, "Quote", budgets[0].Title)
	assert.Equal(t, domain.BudgetSent, budgets[0].Status)
}

func TestBudgetAddCmd_RejectsBadValue(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "budget", "add",
		"--client", uuid.New().String(),
		"--title", "Quote",
		"--value", "abc")
	assert.Error(t, err)
}

func TestBudgetFollowUpCmd_ResolvesPrefix(t *testing.T) {
	app := testApp(t)
	b := seedBudget(t, app)

	_, err := executeCmd(t, app, "budget", "followup", b.ID[:8],
		"--note", "called them", "--next", "2031-01-15")
	require.NoError(t, err)

	got, err := app.Budgets.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BudgetFollowingUp, got.Status)
	require.NotNil(t, got.NextFollowUp)
	assert.Equal(t, "2031-01-15", got.NextFollowUp.Format("2006-01-02"))
}

func TestBudgetFollowUpCmd_ShortPrefixRejected(t *testing.T) {
	app := testApp(t)
	seedBudget(t, app)

	_, err := executeCmd(t, app, "budget", "followup", "ab", "--note", "x")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestBudgetWinCmd_PartialSplit(t *testing.T) {
	app := testApp(t)
	b := seedBudget(t, app, testutil.WithValue(1000))

	_, err := executeCmd(t, app, "budget", "win", b.ID, "600")
	require.NoError(t, err)

	budgets, err := app.Budgets.ListByTenant(context.Background(), app.TenantID)
	require.NoError(t, err)
	assert.Len(t, budgets, 2, "partial win leaves the invoiced original plus the lost remainder")
}

func TestBudgetStatusCmd_UnknownStatus(t *testing.T) {
	app := testApp(t)
	b := seedBudget(t, app)

	_, err := executeCmd(t, app, "budget", "status", b.ID, "shipped")
	assert.Error(t, err)
}

func TestBudgetLoseCmd(t *testing.T) {
	app := testApp(t)
	b := seedBudget(t, app)

	_, err := executeCmd(t, app, "budget", "lose", b.ID, "--reason", "price")
	require.NoError(t, err)

	got, err := app.Budgets.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BudgetLost, got.Status)
	assert.Equal(t, domain.LostReasonPrice, got.LostReason)
}

func TestReminderAddCmd_ParsesLocalTime(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "reminder", "add", "call back", "--at", "2031-03-01 09:30")
	require.NoError(t, err)

	reminders, err := app.Reminders.ListByTenant(context.Background(), app.TenantID)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	want := time.Date(2031, 3, 1, 9, 30, 0, 0, time.Local).UTC()
	assert.True(t, reminders[0].RemindAt.Equal(want))
}

func TestReminderAddCmd_BadTime(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "reminder", "add", "call back", "--at", "tomorrow")
	assert.Error(t, err)
}

func TestReminderToggleAndDismissCmds(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	r := testutil.NewTestReminder("call back")
	require.NoError(t, app.Reminders.Create(ctx, r))

	_, err := executeCmd(t, app, "reminder", "toggle", r.ID)
	require.NoError(t, err)
	reminders, err := app.Reminders.ListByTenant(ctx, app.TenantID)
	require.NoError(t, err)
	assert.True(t, reminders[0].Completed)

	_, err = executeCmd(t, app, "reminder", "dismiss", r.ID)
	require.NoError(t, err)
	reminders, err = app.Reminders.ListByTenant(ctx, app.TenantID)
	require.NoError(t, err)
	assert.True(t, reminders[0].Dismissed)
}

func TestProspectConvertCmd(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	p := testutil.NewTestProspect("Acme lead")
	clientID := uuid.New().String()
	p.ClientID = &clientID
	require.NoError(t, app.Prospects.Create(ctx, p))

	_, err := executeCmd(t, app, "prospect", "convert", p.ID, "--value", "900")
	require.NoError(t, err)

	prospects, err := app.Prospects.ListByTenant(ctx, app.TenantID)
	require.NoError(t, err)
	assert.Empty(t, prospects)

	budgets, err := app.Budgets.ListByTenant(ctx, app.TenantID)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, "Acme lead", budgets[0].Title)
}

func TestClientAddAndListCmds(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "client", "add", "Acme", "--company", "Acme Corp")
	require.NoError(t, err)

	clients, err := app.Clients.ListByTenant(context.Background(), app.TenantID)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Acme Corp", clients[0].Company)

	_, err = executeCmd(t, app, "client", "list")
	require.NoError(t, err)
}

func TestNotificationsCmd_EmptyDB(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "notifications")
	require.NoError(t, err)
}
