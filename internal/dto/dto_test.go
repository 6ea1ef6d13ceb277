package dto

import (
	"testing"
	"time"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthYearValidation(t *testing.T) {
	v := validator.New()
	require.NoError(t, registerOn(v))

	type params struct {
		Month  string  `validate:"required,monthyear"`
		Filter *string `validate:"omitempty,monthyear"`
	}

	assert.NoError(t, v.Struct(params{Month: "2024-02"}))
	assert.Error(t, v.Struct(params{Month: "2024-2"}))
	assert.Error(t, v.Struct(params{Month: "02-2024"}))
	assert.Error(t, v.Struct(params{Month: "2024-02", Filter: domain.StringPtr("nope")}))
	assert.NoError(t, v.Struct(params{Month: "2024-02", Filter: domain.StringPtr("2023-12")}))
}

func TestUpdateTransactionRequest_Apply(t *testing.T) {
	stored := domain.Transaction{
		TransactionID: "t-1",
		Date:          time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromInt(50),
		Type:          domain.Transfer,
		AccountID:     "a",
		ToAccountID:   domain.StringPtr("b"),
		Status:        domain.Cleared,
	}

	assert.True(t, UpdateTransactionRequest{}.IsEmpty())
	assert.Equal(t, stored, UpdateTransactionRequest{}.Apply(stored))

	income := domain.Income
	amount := decimal.NewFromInt(75)
	req := UpdateTransactionRequest{
		Type:         &income,
		Amount:       &amount,
		IsMaaserable: domain.BoolPtr(false),
		IsDeductible: domain.BoolPtr(true),
	}
	assert.False(t, req.IsEmpty())

	got := req.Apply(stored)

	assert.Equal(t, "t-1", got.TransactionID)
	assert.Equal(t, domain.Income, got.Type)
	assert.True(t, amount.Equal(got.Amount))
	assert.Nil(t, got.ToAccountID)
	require.NotNil(t, got.IsMaaserable)
	assert.False(t, *got.IsMaaserable)
	assert.Nil(t, got.IsDeductible)
	assert.Equal(t, stored.Date, got.Date)
}

func TestToDrafts(t *testing.T) {
	reqs := []TransactionDraftRequest{{
		Date:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.NewFromInt(10),
		Type:      domain.Expense,
		AccountID: "a",
		Status:    domain.Pending,
	}}

	drafts := ToDrafts(reqs)

	require.Len(t, drafts, 1)
	assert.Equal(t, "a", drafts[0].AccountID)
	assert.Equal(t, domain.Pending, drafts[0].Status)
	assert.False(t, drafts[0].IsSystemGenerated)
	assert.NoError(t, drafts[0].Validate())
}
