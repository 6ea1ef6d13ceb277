package mapping

import (
	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/SscSPs/bolsas_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:        d.TransactionID,
		UserID:               d.UserID,
		TransactionDate:      d.Date,
		Amount:               d.Amount,
		Description:          d.Description,
		TransactionType:      string(d.Type),
		AccountID:            d.AccountID,
		ToAccountID:          d.ToAccountID,
		CategoryID:           d.CategoryID,
		SubcategoryID:        d.SubcategoryID,
		Status:               string(d.Status),
		Cardholder:           d.Cardholder,
		IsMaaserable:         d.IsMaaserable,
		IsDeductible:         d.IsDeductible,
		IsSystemGenerated:    d.IsSystemGenerated,
		RelatedTransactionID: d.RelatedTransactionID,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:        m.TransactionID,
		UserID:               m.UserID,
		Date:                 m.TransactionDate,
		Amount:               m.Amount,
		Description:          m.Description,
		Type:                 domain.TransactionType(m.TransactionType),
		AccountID:            m.AccountID,
		ToAccountID:          m.ToAccountID,
		CategoryID:           m.CategoryID,
		SubcategoryID:        m.SubcategoryID,
		Status:               domain.TransactionStatus(m.Status),
		Cardholder:           m.Cardholder,
		IsMaaserable:         m.IsMaaserable,
		IsDeductible:         m.IsDeductible,
		IsSystemGenerated:    m.IsSystemGenerated,
		RelatedTransactionID: m.RelatedTransactionID,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
