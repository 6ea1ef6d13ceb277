package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/bolsas_app/internal/apperrors"
	"github.com/SscSPs/bolsas_app/internal/core/domain"
	portssvc "github.com/SscSPs/bolsas_app/internal/core/ports/services"
	"github.com/SscSPs/bolsas_app/internal/core/services"
	"github.com/SscSPs/bolsas_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	txnRepo     *MockTransactionRepository
	accountRepo *MockAccountRepository
	maaser      *MockMaaserResolver
	service     portssvc.TransactionSvcFacade

	ctx      context.Context
	userID   string
	checking domain.Account
	savings  domain.Account
	tithe    domain.Account
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.txnRepo = new(MockTransactionRepository)
	suite.accountRepo = new(MockAccountRepository)
	suite.maaser = new(MockMaaserResolver)
	suite.service = services.NewTransactionService(suite.txnRepo, suite.accountRepo, suite.maaser)

	suite.ctx = context.Background()
	suite.userID = "user-1"
	suite.checking = domain.Account{AccountID: "acc-checking", UserID: suite.userID, Name: "Checking", IsActive: true}
	suite.savings = domain.Account{AccountID: "acc-savings", UserID: suite.userID, Name: "Savings", IsActive: true}
	suite.tithe = domain.Account{AccountID: "acc-maaser", UserID: suite.userID, Name: "Maaser", IsActive: true}
}

func (suite *TransactionServiceTestSuite) TearDownTest() {
	suite.txnRepo.AssertExpectations(suite.T())
	suite.accountRepo.AssertExpectations(suite.T())
	suite.maaser.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) draft(typ domain.TransactionType, amount string) domain.TransactionDraft {
	return domain.TransactionDraft{
		Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString(amount),
		Description: "Salary",
		Type:        typ,
		AccountID:   suite.checking.AccountID,
	}
}

func (suite *TransactionServiceTestSuite) TestPostTransactions_IncomeWithTithe() {
	suite.accountRepo.On("FindAccountsByIDs", suite.ctx, []string{suite.checking.AccountID}).
		Return(map[string]domain.Account{suite.checking.AccountID: suite.checking}, nil).Once()
	suite.maaser.On("FindOrCreateMaaserAccount", suite.ctx, suite.userID).Return(&suite.tithe, nil).Once()

	var posted []domain.Transaction
	var deltas map[string]decimal.Decimal
	suite.txnRepo.On("PostLedger", suite.ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			posted = args.Get(1).([]domain.Transaction)
			deltas = args.Get(2).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	rows, err := suite.service.PostTransactions(suite.ctx, suite.userID, []domain.TransactionDraft{suite.draft(domain.Income, "1000")})

	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	suite.Equal(posted, rows)
	suite.True(rows[1].IsSystemGenerated)
	suite.Equal(rows[0].TransactionID, *rows[1].RelatedTransactionID)
	suite.True(decimal.NewFromInt(100).Equal(rows[1].Amount))
	suite.Equal("Maaser (10%): Salary", rows[1].Description)
	suite.True(decimal.NewFromInt(900).Equal(deltas[suite.checking.AccountID]))
	suite.True(decimal.NewFromInt(100).Equal(deltas[suite.tithe.AccountID]))
}

func (suite *TransactionServiceTestSuite) TestPostTransactions_BatchResolvesMaaserOnce() {
	transfer := suite.draft(domain.Transfer, "50")
	transfer.ToAccountID = &suite.savings.AccountID
	drafts := []domain.TransactionDraft{
		suite.draft(domain.Income, "1000"),
		suite.draft(domain.Income, "10.20"),
		transfer,
	}

	suite.accountRepo.On("FindAccountsByIDs", suite.ctx, []string{suite.checking.AccountID, suite.savings.AccountID}).
		Return(map[string]domain.Account{
			suite.checking.AccountID: suite.checking,
			suite.savings.AccountID:  suite.savings,
		}, nil).Once()
	suite.maaser.On("FindOrCreateMaaserAccount", suite.ctx, suite.userID).Return(&suite.tithe, nil).Once()

	var deltas map[string]decimal.Decimal
	suite.txnRepo.On("PostLedger", suite.ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { deltas = args.Get(2).(map[string]decimal.Decimal) }).
		Return(nil).Once()

	rows, err := suite.service.PostTransactions(suite.ctx, suite.userID, drafts)

	suite.Require().NoError(err)
	suite.Len(rows, 5)
	// 1000 - 100 + 10.20 - 1.02 - 50
	suite.True(decimal.RequireFromString("859.18").Equal(deltas[suite.checking.AccountID]), deltas[suite.checking.AccountID].String())
	suite.True(decimal.RequireFromString("101.02").Equal(deltas[suite.tithe.AccountID]))
	suite.True(decimal.NewFromInt(50).Equal(deltas[suite.savings.AccountID]))
}

func (suite *TransactionServiceTestSuite) TestPostTransactions_NoMaaserNeeded() {
	d := suite.draft(domain.Expense, "20")

	suite.accountRepo.On("FindAccountsByIDs", suite.ctx, []string{suite.checking.AccountID}).
		Return(map[string]domain.Account{suite.checking.AccountID: suite.checking}, nil).Once()
	suite.maaser.On("FindMaaserAccount", suite.ctx, suite.userID).Return(nil, nil).Once()
	suite.txnRepo.On("PostLedger", suite.ctx, mock.Anything, mock.Anything).Return(nil).Once()

	rows, err := suite.service.PostTransactions(suite.ctx, suite.userID, []domain.TransactionDraft{d})

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.False(*rows[0].IsDeductible)
	suite.maaser.AssertNotCalled(suite.T(), "FindOrCreateMaaserAccount", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestPostTransactions_ValidationBeforeLookups() {
	bad := suite.draft(domain.Income, "0")

	_, err := suite.service.PostTransactions(suite.ctx, suite.userID, []domain.TransactionDraft{suite.draft(domain.Income, "5"), bad})

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.Contains(err.Error(), "transaction 1")
	suite.accountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestPostTransactions_ForeignAccount() {
	foreign := suite.checking
	foreign.UserID = "someone-else"
	suite.accountRepo.On("FindAccountsByIDs", suite.ctx, []string{suite.checking.AccountID}).
		Return(map[string]domain.Account{suite.checking.AccountID: foreign}, nil).Once()

	_, err := suite.service.PostTransactions(suite.ctx, suite.userID, []domain.TransactionDraft{suite.draft(domain.Income, "5")})

	suite.True(errors.Is(err, apperrors.ErrNotFound))
	suite.txnRepo.AssertNotCalled(suite.T(), "PostLedger", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestPostTransactions_InactiveAccount() {
	inactive := suite.checking
	inactive.IsActive = false
	suite.accountRepo.On("FindAccountsByIDs", suite.ctx, []string{suite.checking.AccountID}).
		Return(map[string]domain.Account{suite.checking.AccountID: inactive}, nil).Once()

	_, err := suite.service.PostTransactions(suite.ctx, suite.userID, []domain.TransactionDraft{suite.draft(domain.Income, "5")})

	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *TransactionServiceTestSuite) TestPostTransactions_RepositoryFailure() {
	suite.accountRepo.On("FindAccountsByIDs", suite.ctx, mock.Anything).
		Return(map[string]domain.Account{suite.checking.AccountID: suite.checking}, nil).Once()
	suite.maaser.On("FindOrCreateMaaserAccount", suite.ctx, suite.userID).Return(&suite.tithe, nil).Once()
	suite.txnRepo.On("PostLedger", suite.ctx, mock.Anything, mock.Anything).
		Return(apperrors.ErrPartialApply).Once()

	_, err := suite.service.PostTransactions(suite.ctx, suite.userID, []domain.TransactionDraft{suite.draft(domain.Income, "5")})

	suite.True(errors.Is(err, apperrors.ErrPartialApply))
	suite.Contains(err.Error(), "failed to post transactions")
}

func (suite *TransactionServiceTestSuite) TestDeleteTransactions_RejectsSystemRow() {
	parent := "parent-id"
	sys := &domain.Transaction{TransactionID: "sys-id", UserID: suite.userID, IsSystemGenerated: true, RelatedTransactionID: &parent}
	suite.txnRepo.On("FindTransactionByID", suite.ctx, "sys-id").Return(sys, nil).Once()
	suite.txnRepo.On("FindDependents", suite.ctx, "sys-id").Return([]domain.Transaction{}, nil).Once()

	err := suite.service.DeleteTransactions(suite.ctx, suite.userID, []string{"sys-id"})

	suite.True(errors.Is(err, services.ErrSystemRow))
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *TransactionServiceTestSuite) TestDeleteTransactions_ReversesDependents() {
	maaserID := suite.tithe.AccountID
	main := &domain.Transaction{TransactionID: "t1", UserID: suite.userID, Type: domain.Income, Amount: decimal.NewFromInt(1000), AccountID: suite.checking.AccountID}
	dep := domain.Transaction{TransactionID: "t2", UserID: suite.userID, Type: domain.Transfer, Amount: decimal.NewFromInt(100),
		AccountID: suite.checking.AccountID, ToAccountID: &maaserID, IsSystemGenerated: true, RelatedTransactionID: &main.TransactionID}

	suite.txnRepo.On("FindTransactionByID", suite.ctx, "t1").Return(main, nil).Once()
	suite.txnRepo.On("FindDependents", suite.ctx, "t1").Return([]domain.Transaction{dep}, nil).Once()

	var deltas map[string]decimal.Decimal
	suite.txnRepo.On("DeleteLedger", suite.ctx, []string{"t1", "t2"}, mock.Anything).
		Run(func(args mock.Arguments) { deltas = args.Get(2).(map[string]decimal.Decimal) }).
		Return(nil).Once()

	// Duplicate ids are processed once.
	err := suite.service.DeleteTransactions(suite.ctx, suite.userID, []string{"t1", "t1"})

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(-900).Equal(deltas[suite.checking.AccountID]))
	suite.True(decimal.NewFromInt(-100).Equal(deltas[maaserID]))
}

func (suite *TransactionServiceTestSuite) TestGetTransaction_OtherUser() {
	suite.txnRepo.On("FindTransactionByID", suite.ctx, "t1").
		Return(&domain.Transaction{TransactionID: "t1", UserID: "someone-else"}, nil).Once()

	_, _, err := suite.service.GetTransaction(suite.ctx, suite.userID, "t1")

	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_EmptyPatch() {
	main := &domain.Transaction{TransactionID: "t1", UserID: suite.userID, Type: domain.Expense, Amount: decimal.NewFromInt(5), AccountID: suite.checking.AccountID}
	suite.txnRepo.On("FindTransactionByID", suite.ctx, "t1").Return(main, nil).Once()
	suite.txnRepo.On("FindDependents", suite.ctx, "t1").Return([]domain.Transaction{}, nil).Once()

	got, err := suite.service.UpdateTransaction(suite.ctx, suite.userID, "t1", dto.UpdateTransactionRequest{})

	suite.Require().NoError(err)
	suite.Equal(main, got)
	suite.txnRepo.AssertNotCalled(suite.T(), "ReplaceLedger", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_BadMonth() {
	month := "2024-13"

	_, err := suite.service.ListTransactions(suite.ctx, suite.userID, dto.ListTransactionsParams{Month: &month})

	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
