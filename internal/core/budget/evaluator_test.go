package budget_test

import (
	"testing"
	"time"

	"github.com/SscSPs/bolsas_app/internal/core/budget"
	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(category, amount string, day time.Time) domain.Transaction {
	return domain.Transaction{
		Type:       domain.Expense,
		CategoryID: domain.StringPtr(category),
		Amount:     dec(amount),
		Date:       day,
	}
}

func groceries(limit string) domain.Budget {
	return domain.Budget{
		BudgetID:       "b-1",
		CategoryID:     "groceries",
		MonthYear:      "2024-03",
		LimitAmount:    dec(limit),
		AlertThreshold: domain.DefaultAlertThreshold,
	}
}

func TestEvaluate_Boundary(t *testing.T) {
	txns := []domain.Transaction{
		expense("groceries", "300", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)),
		expense("groceries", "200", time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)),
	}

	status := budget.Evaluate(groceries("500"), txns)

	assert.True(t, dec("500").Equal(status.Spent))
	assert.True(t, status.Remaining.IsZero())
	require.NotNil(t, status.Percentage)
	assert.True(t, dec("100").Equal(*status.Percentage))
	assert.False(t, status.IsExceeded)
	assert.True(t, status.ShouldAlert)
}

func TestEvaluate_Filters(t *testing.T) {
	march := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	income := expense("groceries", "1000", march)
	income.Type = domain.Income
	uncategorised := expense("groceries", "1000", march)
	uncategorised.CategoryID = nil

	txns := []domain.Transaction{
		expense("groceries", "100", march),
		expense("fuel", "1000", march),
		expense("groceries", "1000", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)),
		expense("groceries", "1000", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)),
		income,
		uncategorised,
	}

	status := budget.Evaluate(groceries("500"), txns)

	assert.True(t, dec("100").Equal(status.Spent))
	assert.True(t, dec("400").Equal(status.Remaining))
	assert.True(t, dec("20").Equal(*status.Percentage))
	assert.False(t, status.ShouldAlert)
	assert.False(t, status.IsExceeded)
}

func TestEvaluate_Thresholds(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		spent     string
		pct       string
		alert     bool
		exceeded  bool
		remaining string
	}{
		{"399.99", "80", false, false, "100.01"},
		{"400", "80", true, false, "100"},
		{"500.01", "100", true, true, "0"},
		{"750", "150", true, true, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.spent, func(t *testing.T) {
			status := budget.Evaluate(groceries("500"), []domain.Transaction{expense("groceries", tt.spent, day)})
			assert.True(t, dec(tt.pct).Equal(*status.Percentage), "pct %s", status.Percentage)
			assert.Equal(t, tt.alert, status.ShouldAlert)
			assert.Equal(t, tt.exceeded, status.IsExceeded)
			assert.True(t, dec(tt.remaining).Equal(status.Remaining))
		})
	}
}

func TestEvaluate_ZeroLimit(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	empty := budget.Evaluate(groceries("0"), nil)
	assert.Nil(t, empty.Percentage)
	assert.False(t, empty.IsExceeded)
	assert.False(t, empty.ShouldAlert)

	spent := budget.Evaluate(groceries("0"), []domain.Transaction{expense("groceries", "1", day)})
	assert.Nil(t, spent.Percentage)
	assert.True(t, spent.IsExceeded)
	assert.True(t, spent.ShouldAlert)
	assert.True(t, spent.Remaining.IsZero())
}

func TestEvaluateAll(t *testing.T) {
	fuel := groceries("50")
	fuel.CategoryID = "fuel"
	statuses := budget.EvaluateAll([]domain.Budget{groceries("500"), fuel}, []domain.Transaction{
		expense("fuel", "60", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
	})
	require.Len(t, statuses, 2)
	assert.False(t, statuses[0].IsExceeded)
	assert.True(t, statuses[1].IsExceeded)
}
