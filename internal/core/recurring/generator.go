// Package recurring expands monthly templates into transaction drafts.
package recurring

import (
	"time"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
)

// DueDate returns the day the template falls on in month. Days past the end
// of the month are clamped to its last day (31 in February becomes 28 or 29).
func DueDate(t domain.RecurringTransaction, month domain.MonthYear) time.Time {
	day := t.DayOfMonth
	if day < 1 {
		day = 1
	}
	if last := month.LastDay(); day > last {
		day = last
	}
	return time.Date(month.Year, month.Month, day, 0, 0, 0, 0, time.UTC)
}

// Expand produces one user draft per active template, in template order.
// Inactive templates are skipped. Flags left nil on the template stay nil so
// the account defaults apply when the draft is posted.
func Expand(templates []domain.RecurringTransaction, month domain.MonthYear) []domain.TransactionDraft {
	drafts := make([]domain.TransactionDraft, 0, len(templates))
	for _, t := range templates {
		if !t.Active {
			continue
		}
		d := domain.TransactionDraft{
			Date:         DueDate(t, month),
			Amount:       t.Amount,
			Description:  t.Description,
			Type:         t.Type,
			AccountID:    t.AccountID,
			CategoryID:   t.CategoryID,
			Status:       domain.Pending,
			IsMaaserable: t.IsMaaserable,
			IsDeductible: t.IsDeductible,
		}
		if t.Type == domain.Transfer {
			d.ToAccountID = t.ToAccountID
		}
		drafts = append(drafts, d)
	}
	return drafts
}

// Due filters templates that are active and not yet expanded for month.
func Due(templates []domain.RecurringTransaction, month domain.MonthYear) []domain.RecurringTransaction {
	due := make([]domain.RecurringTransaction, 0, len(templates))
	for _, t := range templates {
		if t.Active && !t.GeneratedFor(month) {
			due = append(due, t)
		}
	}
	return due
}
