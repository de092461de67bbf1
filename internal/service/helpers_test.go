package service

import (
	"database/sql"
	"testing"

	"github.com/brunovidal/funnel/internal/domain"
	"github.com/brunovidal/funnel/internal/repository"
	"github.com/brunovidal/funnel/internal/testutil"
	"golang.org/x/text/language"
)

func testFormatter() *domain.AmountFormatter {
	return domain.NewAmountFormatter(language.English, "$")
}

func newBudgetService(t *testing.T) (BudgetService, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	budgets := repository.NewSQLiteBudgetRepo(database)
	svc := NewBudgetService(budgets, testutil.NewTestUoW(database), testFormatter(), nil)
	return svc, database
}
