package accounting

import (
	"sort"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CentPlaces is the precision money is rounded to.
const CentPlaces = 2

// RoundCents rounds to two decimals, half away from zero.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(CentPlaces)
}

// CalculateSignedAmount returns the balance effect a row has on accountID.
// Income adds to its account, expense subtracts, and a transfer moves the
// amount from the source to the destination.
// This is used in both services and repositories to ensure consistent accounting logic.
func CalculateSignedAmount(txn domain.Transaction, accountID string) decimal.Decimal {
	signed := decimal.Zero
	switch txn.Type {
	case domain.Income:
		if txn.AccountID == accountID {
			signed = signed.Add(txn.Amount)
		}
	case domain.Expense:
		if txn.AccountID == accountID {
			signed = signed.Sub(txn.Amount)
		}
	case domain.Transfer:
		if txn.AccountID == accountID {
			signed = signed.Sub(txn.Amount)
		}
		if txn.ToAccountID != nil && *txn.ToAccountID == accountID {
			signed = signed.Add(txn.Amount)
		}
	}
	return signed
}

// DirectDeltas returns the per-account balance changes caused by posting txn.
func DirectDeltas(txn domain.Transaction) map[string]decimal.Decimal {
	deltas := make(map[string]decimal.Decimal, 2)
	switch txn.Type {
	case domain.Income:
		AddDelta(deltas, txn.AccountID, txn.Amount)
	case domain.Expense:
		AddDelta(deltas, txn.AccountID, txn.Amount.Neg())
	case domain.Transfer:
		AddDelta(deltas, txn.AccountID, txn.Amount.Neg())
		if txn.ToAccountID != nil {
			AddDelta(deltas, *txn.ToAccountID, txn.Amount)
		}
	}
	return deltas
}

// ReverseDeltas returns the changes that undo DirectDeltas(txn).
func ReverseDeltas(txn domain.Transaction) map[string]decimal.Decimal {
	deltas := DirectDeltas(txn)
	for accountID, delta := range deltas {
		deltas[accountID] = delta.Neg()
	}
	return deltas
}

// AddDelta adds delta to the entry for accountID.
func AddDelta(deltas map[string]decimal.Decimal, accountID string, delta decimal.Decimal) {
	deltas[accountID] = deltas[accountID].Add(delta)
}

// MergeDeltas adds every entry of src into dst.
func MergeDeltas(dst, src map[string]decimal.Decimal) {
	for accountID, delta := range src {
		AddDelta(dst, accountID, delta)
	}
}

// SumDeltas returns the total of all changes. Every set of rows produced by
// the ledger nets out to income minus expense.
func SumDeltas(deltas map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, delta := range deltas {
		total = total.Add(delta)
	}
	return total
}

// NonZeroAccountIDs returns the accounts with a non-zero change, sorted so
// callers can lock them in a stable order.
func NonZeroAccountIDs(deltas map[string]decimal.Decimal) []string {
	ids := make([]string, 0, len(deltas))
	for accountID, delta := range deltas {
		if !delta.IsZero() {
			ids = append(ids, accountID)
		}
	}
	sort.Strings(ids)
	return ids
}
