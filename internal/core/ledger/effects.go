// Package ledger decides which rows a user transaction produces and how
// they move account balances. Everything here is pure: no storage, no clock.
package ledger

import (
	"time"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/SscSPs/bolsas_app/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// MaaserDescriptionPrefix starts the description of a tithe row.
	MaaserDescriptionPrefix = "Maaser (10%): "
	// RefundDescriptionPrefix starts the description of a deductible refund row.
	RefundDescriptionPrefix = "Reembolso Maaser: "
)

// MaaserRate is the share of maaserable income set aside.
var MaaserRate = decimal.NewFromFloat(0.10)

// Effects is the outcome of posting one draft: the rows to insert, main row
// first, and the balance change per account.
type Effects struct {
	Rows   []domain.Transaction
	Deltas map[string]decimal.Decimal
}

// Main returns the user-entered row.
func (e Effects) Main() domain.Transaction {
	return e.Rows[0]
}

// Dependents returns the system-generated rows.
func (e Effects) Dependents() []domain.Transaction {
	return e.Rows[1:]
}

// ResolveFlags fills IsMaaserable and IsDeductible from the account defaults
// when the draft leaves them unset. Income is maaserable unless the account
// says otherwise; expenses are deductible only when the account opts in.
// Only the flag matching the draft type survives.
func ResolveFlags(draft domain.TransactionDraft, accountCtx *domain.AccountContext) (maaserable, deductible *bool) {
	switch draft.Type {
	case domain.Income:
		v := true
		if draft.IsMaaserable != nil {
			v = *draft.IsMaaserable
		} else if accountCtx != nil && accountCtx.DefaultIncomeMaaserable != nil {
			v = *accountCtx.DefaultIncomeMaaserable
		}
		return &v, nil
	case domain.Expense:
		v := false
		if draft.IsDeductible != nil {
			v = *draft.IsDeductible
		} else if accountCtx != nil && accountCtx.DefaultExpenseDeductible != nil {
			v = *accountCtx.DefaultExpenseDeductible
		}
		return nil, &v
	}
	return nil, nil
}

// NeedsMaaser reports whether posting draft could emit a tithe or refund row,
// i.e. whether the Maaser account has to exist.
func NeedsMaaser(draft domain.TransactionDraft, accountCtx *domain.AccountContext) bool {
	if draft.IsSystemGenerated {
		return false
	}
	maaserable, deductible := ResolveFlags(draft, accountCtx)
	switch draft.Type {
	case domain.Income:
		return *maaserable
	case domain.Expense:
		return *deductible
	}
	return false
}

// ComputeEffects expands a draft into ledger rows and balance deltas.
// maaser is nil when the user has no Maaser account, in which case no tithe
// or refund rows are produced. now stamps the audit fields of every row.
func ComputeEffects(draft domain.TransactionDraft, userID string, maaser *domain.AccountRef, accountCtx *domain.AccountContext, now time.Time) Effects {
	main := mainRow(draft, userID, accountCtx, now)
	effects := Effects{
		Rows:   []domain.Transaction{main},
		Deltas: accounting.DirectDeltas(main),
	}

	if main.IsSystemGenerated || maaser == nil || main.AccountID == maaser.AccountID {
		return effects
	}

	switch {
	case main.Type == domain.Income && *main.IsMaaserable:
		tithe := accounting.RoundCents(main.Amount.Mul(MaaserRate))
		if tithe.IsPositive() {
			row := systemTransfer(main, main.AccountID, maaser.AccountID, tithe, MaaserDescriptionPrefix, now)
			effects.add(row)
		}
	case main.Type == domain.Expense && *main.IsDeductible:
		row := systemTransfer(main, maaser.AccountID, main.AccountID, main.Amount, RefundDescriptionPrefix, now)
		effects.add(row)
	}
	return effects
}

// ReverseDeltas returns the merged balance changes that undo rows.
func ReverseDeltas(rows []domain.Transaction) map[string]decimal.Decimal {
	deltas := make(map[string]decimal.Decimal)
	for _, row := range rows {
		accounting.MergeDeltas(deltas, accounting.ReverseDeltas(row))
	}
	return deltas
}

// MergeDeltas adds src into dst.
func MergeDeltas(dst, src map[string]decimal.Decimal) {
	accounting.MergeDeltas(dst, src)
}

func (e *Effects) add(row domain.Transaction) {
	e.Rows = append(e.Rows, row)
	accounting.MergeDeltas(e.Deltas, accounting.DirectDeltas(row))
}

func mainRow(draft domain.TransactionDraft, userID string, accountCtx *domain.AccountContext, now time.Time) domain.Transaction {
	id := draft.TransactionID
	if id == "" {
		id = uuid.NewString()
	}
	status := draft.Status
	if status == "" {
		status = domain.Cleared
	}
	row := domain.Transaction{
		TransactionID:        id,
		UserID:               userID,
		Date:                 draft.Date,
		Amount:               draft.Amount,
		Description:          draft.Description,
		Type:                 draft.Type,
		AccountID:            draft.AccountID,
		CategoryID:           draft.CategoryID,
		SubcategoryID:        draft.SubcategoryID,
		Status:               status,
		Cardholder:           draft.Cardholder,
		IsSystemGenerated:    draft.IsSystemGenerated,
		RelatedTransactionID: draft.RelatedTransactionID,
		AuditFields:          domain.NewAuditFields(userID, now),
	}
	if draft.Type == domain.Transfer {
		row.ToAccountID = draft.ToAccountID
	}
	if draft.IsSystemGenerated {
		row.IsMaaserable = draft.IsMaaserable
		row.IsDeductible = draft.IsDeductible
	} else {
		row.IsMaaserable, row.IsDeductible = ResolveFlags(draft, accountCtx)
	}
	return row
}

func systemTransfer(parent domain.Transaction, from, to string, amount decimal.Decimal, prefix string, now time.Time) domain.Transaction {
	parentID := parent.TransactionID
	dest := to
	return domain.Transaction{
		TransactionID:        uuid.NewString(),
		UserID:               parent.UserID,
		Date:                 parent.Date,
		Amount:               amount,
		Description:          prefix + parent.Description,
		Type:                 domain.Transfer,
		AccountID:            from,
		ToAccountID:          &dest,
		Status:               parent.Status,
		IsSystemGenerated:    true,
		RelatedTransactionID: &parentID,
		AuditFields:          domain.NewAuditFields(parent.UserID, now),
	}
}
