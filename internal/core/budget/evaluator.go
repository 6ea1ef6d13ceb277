// Package budget derives the spending status of monthly category budgets.
package budget

import (
	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Evaluate sums the expenses of b's category and month found in txns.
// Rows of other types, categories or months are ignored, so callers may pass
// a wider slice than needed.
//
// A budget without a positive limit has no percentage; it counts as exceeded
// (and alerts) as soon as anything is spent.
func Evaluate(b domain.Budget, txns []domain.Transaction) domain.BudgetStatus {
	spent := decimal.Zero
	for _, txn := range txns {
		if txn.Type != domain.Expense || txn.CategoryID == nil || *txn.CategoryID != b.CategoryID {
			continue
		}
		if txn.Date.Format("2006-01") != b.MonthYear {
			continue
		}
		spent = spent.Add(txn.Amount)
	}

	status := domain.BudgetStatus{
		Budget:    b,
		Spent:     spent,
		Remaining: decimal.Max(decimal.Zero, b.LimitAmount.Sub(spent)),
	}

	if !b.LimitAmount.IsPositive() {
		status.IsExceeded = spent.IsPositive()
		status.ShouldAlert = status.IsExceeded
		return status
	}

	pct := spent.Mul(hundred).Div(b.LimitAmount).Round(2)
	status.Percentage = &pct
	// Compare on exact products; the rounded percentage is for display only.
	scaled := spent.Mul(hundred)
	status.IsExceeded = scaled.GreaterThan(b.LimitAmount.Mul(hundred))
	status.ShouldAlert = scaled.GreaterThanOrEqual(b.LimitAmount.Mul(decimal.NewFromInt(int64(b.AlertThreshold))))
	return status
}

// EvaluateAll evaluates every budget against the same set of rows.
func EvaluateAll(budgets []domain.Budget, txns []domain.Transaction) []domain.BudgetStatus {
	statuses := make([]domain.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		statuses = append(statuses, Evaluate(b, txns))
	}
	return statuses
}
