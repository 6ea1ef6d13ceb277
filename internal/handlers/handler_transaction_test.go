package handlers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/bolsas_app/internal/apperrors"
	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/SscSPs/bolsas_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestPostTransactions_ReturnsDependents() {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	parentID := "txn-1"
	rows := []domain.Transaction{
		{TransactionID: parentID, Amount: decimal.NewFromInt(1000), Type: domain.Income, AccountID: "acc-1", Date: date},
		{TransactionID: "txn-2", Amount: decimal.NewFromInt(100), Type: domain.Transfer, AccountID: "acc-1", ToAccountID: domain.StringPtr("maaser"), IsSystemGenerated: true, RelatedTransactionID: &parentID, Date: date},
	}
	suite.transactionSvc.On("PostTransactions", mock.Anything, testUserID, mock.MatchedBy(func(drafts []domain.TransactionDraft) bool {
		return len(drafts) == 1 && drafts[0].AccountID == "acc-1" && drafts[0].Amount.Equal(decimal.NewFromInt(1000))
	})).Return(rows, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"transactions": []map[string]any{{
			"date":      date,
			"amount":    "1000",
			"type":      "INCOME",
			"accountID": "acc-1",
		}},
	})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.PostTransactionsResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Transactions, 2)
	suite.True(resp.Transactions[1].IsSystemGenerated)
	suite.Equal(parentID, *resp.Transactions[1].RelatedTransactionID)
}

func (suite *HandlerTestSuite) TestPostTransactions_EmptyBatchRejected() {
	w := suite.do(http.MethodPost, "/api/v1/transactions", map[string]any{"transactions": []any{}})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestPostTransactions_ErrorMapping() {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{name: "validation", err: apperrors.NewValidationError("amount must be positive"), status: http.StatusBadRequest, body: "amount must be positive"},
		{name: "unknown account", err: apperrors.NewNotFoundError("account acc-1"), status: http.StatusNotFound, body: "acc-1"},
		{name: "duplicate id", err: fmt.Errorf("%w: transaction txn-1", apperrors.ErrDuplicate), status: http.StatusConflict, body: "already exists"},
		{name: "partial apply", err: fmt.Errorf("commit: %w", apperrors.ErrPartialApply), status: http.StatusInternalServerError, body: "partially applied"},
		{name: "unexpected", err: fmt.Errorf("connection reset"), status: http.StatusInternalServerError, body: "Failed to post transactions"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.transactionSvc.On("PostTransactions", mock.Anything, testUserID, mock.Anything).Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/transactions", map[string]any{
				"transactions": []map[string]any{{"date": time.Now(), "amount": "5", "type": "EXPENSE", "accountID": "acc-1"}},
			})
			suite.Equal(tt.status, w.Code)
			suite.Contains(w.Body.String(), tt.body)
			suite.NotContains(w.Body.String(), "connection reset")
		})
	}
}

func (suite *HandlerTestSuite) TestGetTransaction_WithDependents() {
	parent := &domain.Transaction{TransactionID: "txn-1", Type: domain.Income, Amount: decimal.NewFromInt(1000)}
	deps := []domain.Transaction{{TransactionID: "txn-2", IsSystemGenerated: true}}
	suite.transactionSvc.On("GetTransaction", mock.Anything, testUserID, "txn-1").Return(parent, deps, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/txn-1", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.GetTransactionResponse
	suite.decode(w, &resp)
	suite.Equal("txn-1", resp.TransactionID)
	suite.Len(resp.Dependents, 1)
}

func (suite *HandlerTestSuite) TestListTransactions_Params() {
	token := "abc"
	suite.transactionSvc.On("ListTransactions", mock.Anything, testUserID, mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
		return p.Limit == 10 && p.Month != nil && *p.Month == "2024-03" && p.IncludeSystem && p.NextToken != nil && *p.NextToken == token
	})).Return(&dto.ListTransactionsResponse{Transactions: []dto.TransactionResponse{}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?limit=10&month=2024-03&includeSystem=true&nextToken="+token, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestListTransactions_BadMonth() {
	w := suite.do(http.MethodGet, "/api/v1/transactions?month=March", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateTransaction_SystemRowRejected() {
	suite.transactionSvc.On("UpdateTransaction", mock.Anything, testUserID, "txn-2", mock.MatchedBy(func(req dto.UpdateTransactionRequest) bool {
		return req.Amount != nil && req.Amount.Equal(decimal.NewFromInt(3))
	})).Return(nil, fmt.Errorf("transaction txn-2: %w", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPut, "/api/v1/transactions/txn-2", map[string]any{"amount": "3"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteTransaction_Single() {
	suite.transactionSvc.On("DeleteTransactions", mock.Anything, testUserID, []string{"txn-1"}).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/transactions/txn-1", nil)
	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteTransactions_Batch() {
	ids := []string{"txn-1", "txn-3"}
	suite.transactionSvc.On("DeleteTransactions", mock.Anything, testUserID, ids).Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions/delete", map[string]any{"transactionIDs": ids})
	suite.Equal(http.StatusNoContent, w.Code)
}
