package dto

import (
	"time"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a monthly budget.
type CreateBudgetRequest struct {
	CategoryID     string          `json:"categoryID" binding:"required"`
	MonthYear      string          `json:"monthYear" binding:"required,monthyear"`
	LimitAmount    decimal.Decimal `json:"limitAmount"`
	AlertThreshold *int            `json:"alertThreshold" binding:"omitempty,min=1,max=1000"` // percent, defaults to 80
}

// BudgetParams selects the month budgets are listed or evaluated for.
type BudgetParams struct {
	Month string `form:"month" binding:"required,monthyear"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID       string          `json:"budgetID"`
	CategoryID     string          `json:"categoryID"`
	MonthYear      string          `json:"monthYear"`
	LimitAmount    decimal.Decimal `json:"limitAmount"`
	AlertThreshold int             `json:"alertThreshold"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ToBudgetResponse converts a domain.Budget to its DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:       b.BudgetID,
		CategoryID:     b.CategoryID,
		MonthYear:      b.MonthYear,
		LimitAmount:    b.LimitAmount,
		AlertThreshold: b.AlertThreshold,
		CreatedAt:      b.CreatedAt,
		CreatedBy:      b.CreatedBy,
	}
}

// ToBudgetResponses converts a slice of budgets.
func ToBudgetResponses(budgets []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		res[i] = ToBudgetResponse(&budgets[i])
	}
	return res
}

// BudgetStatusResponse reports how much of a budget is used.
type BudgetStatusResponse struct {
	BudgetResponse
	Spent       decimal.Decimal  `json:"spent"`
	Remaining   decimal.Decimal  `json:"remaining"`
	Percentage  *decimal.Decimal `json:"percentage"`
	IsExceeded  bool             `json:"isExceeded"`
	ShouldAlert bool             `json:"shouldAlert"`
}

// ToBudgetStatusResponses converts evaluated statuses.
func ToBudgetStatusResponses(statuses []domain.BudgetStatus) []BudgetStatusResponse {
	res := make([]BudgetStatusResponse, len(statuses))
	for i, s := range statuses {
		res[i] = BudgetStatusResponse{
			BudgetResponse: ToBudgetResponse(&s.Budget),
			Spent:          s.Spent,
			Remaining:      s.Remaining,
			Percentage:     s.Percentage,
			IsExceeded:     s.IsExceeded,
			ShouldAlert:    s.ShouldAlert,
		}
	}
	return res
}
