package mapping

import (
	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/SscSPs/bolsas_app/internal/models"
)

// ToModelBudget converts a domain Budget to a model Budget
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:       d.BudgetID,
		UserID:         d.UserID,
		CategoryID:     d.CategoryID,
		MonthYear:      d.MonthYear,
		LimitAmount:    d.LimitAmount,
		AlertThreshold: d.AlertThreshold,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:       m.BudgetID,
		UserID:         m.UserID,
		CategoryID:     m.CategoryID,
		MonthYear:      m.MonthYear,
		LimitAmount:    m.LimitAmount,
		AlertThreshold: m.AlertThreshold,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelRecurring converts a domain RecurringTransaction to its model
func ToModelRecurring(d domain.RecurringTransaction) models.RecurringTransaction {
	return models.RecurringTransaction{
		RecurringID:        d.RecurringID,
		UserID:             d.UserID,
		Description:        d.Description,
		Amount:             d.Amount,
		TransactionType:    string(d.Type),
		CategoryID:         d.CategoryID,
		AccountID:          d.AccountID,
		ToAccountID:        d.ToAccountID,
		DayOfMonth:         d.DayOfMonth,
		IsActive:           d.Active,
		IsMaaserable:       d.IsMaaserable,
		IsDeductible:       d.IsDeductible,
		LastGeneratedMonth: d.LastGeneratedMonth,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRecurring converts a model RecurringTransaction to its domain form
func ToDomainRecurring(m models.RecurringTransaction) domain.RecurringTransaction {
	return domain.RecurringTransaction{
		RecurringID:        m.RecurringID,
		UserID:             m.UserID,
		Description:        m.Description,
		Amount:             m.Amount,
		Type:               domain.TransactionType(m.TransactionType),
		CategoryID:         m.CategoryID,
		AccountID:          m.AccountID,
		ToAccountID:        m.ToAccountID,
		DayOfMonth:         m.DayOfMonth,
		Active:             m.IsActive,
		IsMaaserable:       m.IsMaaserable,
		IsDeductible:       m.IsDeductible,
		LastGeneratedMonth: m.LastGeneratedMonth,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
