package mapping

import (
	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/SscSPs/bolsas_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:                d.AccountID,
		UserID:                   d.UserID,
		Name:                     d.Name,
		AccountType:              string(d.AccountType),
		CurrencyCode:             d.CurrencyCode,
		InitialBalance:           d.InitialBalance,
		Balance:                  d.CurrentBalance,
		DefaultIncomeMaaserable:  d.DefaultIncomeMaaserable,
		DefaultExpenseDeductible: d.DefaultExpenseDeductible,
		TargetAmount:             d.TargetAmount,
		Deadline:                 d.Deadline,
		IsActive:                 d.IsActive,
		AuditFields:              ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:                m.AccountID,
		UserID:                   m.UserID,
		Name:                     m.Name,
		AccountType:              domain.AccountType(m.AccountType),
		CurrencyCode:             m.CurrencyCode,
		InitialBalance:           m.InitialBalance,
		CurrentBalance:           m.Balance,
		DefaultIncomeMaaserable:  m.DefaultIncomeMaaserable,
		DefaultExpenseDeductible: m.DefaultExpenseDeductible,
		TargetAmount:             m.TargetAmount,
		Deadline:                 m.Deadline,
		IsActive:                 m.IsActive,
		AuditFields:              ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
