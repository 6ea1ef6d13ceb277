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

func (suite *HandlerTestSuite) TestCreateBudget_Duplicate() {
	suite.budgetSvc.On("CreateBudget", mock.Anything, testUserID, mock.AnythingOfType("dto.CreateBudgetRequest")).
		Return(nil, fmt.Errorf("save budget: %w", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/budgets", map[string]any{
		"categoryID":  "food",
		"monthYear":   "2024-03",
		"limitAmount": "500",
	})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestCreateBudget_BadMonthFormat() {
	w := suite.do(http.MethodPost, "/api/v1/budgets", map[string]any{
		"categoryID":  "food",
		"monthYear":   "03/2024",
		"limitAmount": "500",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestBudgetStatus() {
	hundred := decimal.NewFromInt(100)
	statuses := []domain.BudgetStatus{{
		Budget:      domain.Budget{BudgetID: "b-1", CategoryID: "food", MonthYear: "2024-03", LimitAmount: decimal.NewFromInt(500), AlertThreshold: 80},
		Spent:       decimal.NewFromInt(500),
		Remaining:   decimal.Zero,
		Percentage:  &hundred,
		IsExceeded:  false,
		ShouldAlert: true,
	}}
	suite.budgetSvc.On("GetBudgetStatuses", mock.Anything, testUserID, "2024-03").Return(statuses, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/budgets/status?month=2024-03", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.BudgetStatusResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp, 1)
	suite.False(resp[0].IsExceeded)
	suite.True(resp[0].ShouldAlert)
	suite.True(resp[0].Percentage.Equal(hundred))
}

func (suite *HandlerTestSuite) TestListBudgets_MonthRequired() {
	w := suite.do(http.MethodGet, "/api/v1/budgets", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteBudget() {
	suite.budgetSvc.On("DeleteBudget", mock.Anything, testUserID, "b-1").Return(nil).Once()
	w := suite.do(http.MethodDelete, "/api/v1/budgets/b-1", nil)
	suite.Equal(http.StatusNoContent, w.Code)
}
