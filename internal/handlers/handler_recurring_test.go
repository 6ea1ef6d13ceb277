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

func (suite *HandlerTestSuite) TestCreateRecurring() {
	rec := &domain.RecurringTransaction{RecurringID: "r-1", Description: "Rent", Amount: decimal.NewFromInt(3000), Type: domain.Expense, AccountID: "acc-1", DayOfMonth: 31, Active: true}
	suite.recurringSvc.On("CreateRecurring", mock.Anything, testUserID, mock.MatchedBy(func(req dto.CreateRecurringRequest) bool {
		return req.DayOfMonth == 31 && req.Type == domain.Expense
	})).Return(rec, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/recurring", map[string]any{
		"description": "Rent",
		"amount":      "3000",
		"type":        "EXPENSE",
		"accountID":   "acc-1",
		"dayOfMonth":  31,
	})
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.RecurringResponse
	suite.decode(w, &resp)
	suite.Equal("r-1", resp.RecurringID)
}

func (suite *HandlerTestSuite) TestCreateRecurring_DayOutOfRange() {
	w := suite.do(http.MethodPost, "/api/v1/recurring", map[string]any{
		"description": "Rent",
		"amount":      "3000",
		"type":        "EXPENSE",
		"accountID":   "acc-1",
		"dayOfMonth":  32,
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGenerateRecurring() {
	month := domain.MonthYear{Year: 2024, Month: time.February}
	rows := []domain.Transaction{{TransactionID: "t-1", Date: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), Status: domain.Pending}}
	suite.recurringSvc.On("GenerateForMonth", mock.Anything, testUserID, month).Return(rows, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/recurring/generate?month=2024-02", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.GenerateRecurringResponse
	suite.decode(w, &resp)
	suite.Equal("2024-02", resp.Month)
	suite.Require().Len(resp.Transactions, 1)
	suite.Equal(domain.Pending, resp.Transactions[0].Status)
}

func (suite *HandlerTestSuite) TestGenerateRecurring_PartialApply() {
	suite.recurringSvc.On("GenerateForMonth", mock.Anything, testUserID, mock.Anything).
		Return(nil, fmt.Errorf("mark generated: %w", apperrors.ErrPartialApply)).Once()

	w := suite.do(http.MethodPost, "/api/v1/recurring/generate?month=2024-02", nil)
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Contains(w.Body.String(), "partially applied")
}

func (suite *HandlerTestSuite) TestDeleteRecurring_NotFound() {
	suite.recurringSvc.On("DeleteRecurring", mock.Anything, testUserID, "nope").
		Return(apperrors.NewNotFoundError("recurring transaction nope")).Once()

	w := suite.do(http.MethodDelete, "/api/v1/recurring/nope", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}
