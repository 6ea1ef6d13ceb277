package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/bolsas_app/internal/apperrors"
	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() domain.TransactionDraft {
	return domain.TransactionDraft{
		Date:      time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.NewFromInt(100),
		Type:      domain.Expense,
		AccountID: "acc-1",
	}
}

func TestTransactionDraft_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *domain.TransactionDraft)
		wantErr bool
	}{
		{name: "valid expense", mutate: func(d *domain.TransactionDraft) {}},
		{name: "missing account", mutate: func(d *domain.TransactionDraft) { d.AccountID = " " }, wantErr: true},
		{name: "zero amount", mutate: func(d *domain.TransactionDraft) { d.Amount = decimal.Zero }, wantErr: true},
		{name: "negative amount", mutate: func(d *domain.TransactionDraft) { d.Amount = decimal.NewFromInt(-5) }, wantErr: true},
		{name: "sub-cent amount", mutate: func(d *domain.TransactionDraft) { d.Amount = decimal.RequireFromString("0.005") }, wantErr: true},
		{name: "trailing zeros", mutate: func(d *domain.TransactionDraft) { d.Amount = decimal.RequireFromString("12.500") }},
		{name: "unknown type", mutate: func(d *domain.TransactionDraft) { d.Type = "REFUND" }, wantErr: true},
		{name: "missing date", mutate: func(d *domain.TransactionDraft) { d.Date = time.Time{} }, wantErr: true},
		{name: "bad status", mutate: func(d *domain.TransactionDraft) { d.Status = "VOID" }, wantErr: true},
		{
			name: "transfer without destination",
			mutate: func(d *domain.TransactionDraft) {
				d.Type = domain.Transfer
			},
			wantErr: true,
		},
		{
			name: "transfer to itself",
			mutate: func(d *domain.TransactionDraft) {
				d.Type = domain.Transfer
				d.ToAccountID = domain.StringPtr("acc-1")
			},
			wantErr: true,
		},
		{
			name: "valid transfer",
			mutate: func(d *domain.TransactionDraft) {
				d.Type = domain.Transfer
				d.ToAccountID = domain.StringPtr("acc-2")
			},
		},
		{
			name:    "destination on an expense",
			mutate:  func(d *domain.TransactionDraft) { d.ToAccountID = domain.StringPtr("acc-2") },
			wantErr: true,
		},
		{
			name:    "orphan system row",
			mutate:  func(d *domain.TransactionDraft) { d.IsSystemGenerated = true },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			err := d.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTransactionDraft_AccountIDs(t *testing.T) {
	d := validDraft()
	assert.Equal(t, []string{"acc-1"}, d.AccountIDs())

	d.Type = domain.Transfer
	d.ToAccountID = domain.StringPtr("acc-2")
	assert.Equal(t, []string{"acc-1", "acc-2"}, d.AccountIDs())
}

func TestMonthYear(t *testing.T) {
	m, err := domain.ParseMonthYear("2024-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-02", m.String())
	assert.Equal(t, 29, m.LastDay())
	assert.True(t, m.Contains(time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC)))
	assert.False(t, m.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), m.End())

	feb23, _ := domain.ParseMonthYear("2023-02")
	assert.Equal(t, 28, feb23.LastDay())
	assert.True(t, feb23.Before(m))
	assert.False(t, m.Before(m))

	_, err = domain.ParseMonthYear("2024-13")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRecurringTransaction_GeneratedFor(t *testing.T) {
	march, _ := domain.ParseMonthYear("2024-03")
	r := domain.RecurringTransaction{}
	assert.False(t, r.GeneratedFor(march))

	r.LastGeneratedMonth = domain.StringPtr("2024-02")
	assert.False(t, r.GeneratedFor(march))

	r.LastGeneratedMonth = domain.StringPtr("2024-03")
	assert.True(t, r.GeneratedFor(march))
}
