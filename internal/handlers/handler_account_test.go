package handlers_test

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/bolsas_app/internal/apperrors"
	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/SscSPs/bolsas_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	account := &domain.Account{
		AccountID:      "acc-1",
		UserID:         testUserID,
		Name:           "Checking",
		AccountType:    domain.Personal,
		CurrencyCode:   "ILS",
		InitialBalance: decimal.NewFromInt(250),
		CurrentBalance: decimal.NewFromInt(250),
		IsActive:       true,
	}
	suite.accountSvc.On("CreateAccount", mock.Anything, testUserID, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.Name == "Checking" && req.InitialBalance.Equal(decimal.NewFromInt(250))
	})).Return(account, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]any{
		"name":           "Checking",
		"accountType":    "PERSONAL",
		"initialBalance": "250",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.decode(w, &resp)
	suite.Equal("acc-1", resp.AccountID)
	suite.True(resp.CurrentBalance.Equal(decimal.NewFromInt(250)))
}

func (suite *HandlerTestSuite) TestCreateAccount_BindingError() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]any{
		"name":        "Checking",
		"accountType": "CHECKING",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Invalid request format")
}

func (suite *HandlerTestSuite) TestGetAccount_NotFound() {
	suite.accountSvc.On("GetAccountByID", mock.Anything, testUserID, "missing").
		Return(nil, apperrors.NewNotFoundError("account missing")).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/missing", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListAccounts_PassesPaging() {
	suite.accountSvc.On("ListAccounts", mock.Anything, testUserID, 5, 10).
		Return([]domain.Account{{AccountID: "a"}, {AccountID: "b"}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts?limit=5&offset=10", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.decode(w, &resp)
	suite.Len(resp.Accounts, 2)
}

func (suite *HandlerTestSuite) TestListAccounts_LimitOutOfRange() {
	w := suite.do(http.MethodGet, "/api/v1/accounts?limit=1000", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateAccount_ValidationError() {
	suite.accountSvc.On("UpdateAccount", mock.Anything, testUserID, "acc-1", mock.AnythingOfType("dto.UpdateAccountRequest")).
		Return(nil, apperrors.NewValidationError("name must not be empty")).Once()

	w := suite.do(http.MethodPut, "/api/v1/accounts/acc-1", map[string]any{"name": " "})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "name must not be empty")
}

func (suite *HandlerTestSuite) TestReconcileAccount() {
	tests := []struct {
		name   string
		query  string
		repair bool
		rec    *domain.Reconciliation
		inSync bool
	}{
		{
			name:   "in sync",
			query:  "",
			repair: false,
			rec:    &domain.Reconciliation{AccountID: "acc-1", CachedBalance: decimal.NewFromInt(91), LedgerBalance: decimal.NewFromInt(91)},
			inSync: true,
		},
		{
			name:   "drift repaired",
			query:  "?repair=true",
			repair: true,
			rec: &domain.Reconciliation{
				AccountID:     "acc-1",
				CachedBalance: decimal.NewFromInt(100),
				LedgerBalance: decimal.NewFromInt(90),
				Difference:    decimal.NewFromInt(10),
				Repaired:      true,
			},
			inSync: false,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.accountSvc.On("ReconcileAccount", mock.Anything, testUserID, "acc-1", tt.repair).Return(tt.rec, nil).Once()

			w := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/accounts/acc-1/reconcile%s", tt.query), nil)
			suite.Equal(http.StatusOK, w.Code)
			var resp dto.ReconciliationResponse
			suite.decode(w, &resp)
			suite.Equal(tt.inSync, resp.InSync)
			suite.Equal(tt.rec.Repaired, resp.Repaired)
		})
	}
}
