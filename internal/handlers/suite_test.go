package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	portssvc "github.com/SscSPs/bolsas_app/internal/core/ports/services"
	"github.com/SscSPs/bolsas_app/internal/dto"
	"github.com/SscSPs/bolsas_app/internal/handlers"
	"github.com/SscSPs/bolsas_app/internal/platform/config"
	"github.com/SscSPs/bolsas_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "bolsas-test"
	testUserID = "user-1"
)

// HandlerTestSuite drives the real router with mocked services.
type HandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	accountSvc     *MockAccountService
	transactionSvc *MockTransactionService
	budgetSvc      *MockBudgetService
	recurringSvc   *MockRecurringService
	token          string
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(dto.RegisterValidations())
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.accountSvc = new(MockAccountService)
	suite.transactionSvc = new(MockTransactionService)
	suite.budgetSvc = new(MockBudgetService)
	suite.recurringSvc = new(MockRecurringService)

	cfg := &config.Config{
		JWTSecret:    testSecret,
		JWTIssuer:    testIssuer,
		RateLimit:    "1000-M",
		IsProduction: true,
	}
	container := &portssvc.ServiceContainer{
		Account:     suite.accountSvc,
		Transaction: suite.transactionSvc,
		Budget:      suite.budgetSvc,
		Recurring:   suite.recurringSvc,
	}

	suite.router = gin.New()
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, container))
	suite.token = suite.generateTestToken(testUserID)
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.accountSvc.AssertExpectations(suite.T())
	suite.transactionSvc.AssertExpectations(suite.T())
	suite.budgetSvc.AssertExpectations(suite.T())
	suite.recurringSvc.AssertExpectations(suite.T())
}

// generateTestToken creates a signed JWT for userID.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	signed, err := utils.GenerateAccessToken(userID, testSecret, testIssuer, time.Hour)
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (suite *HandlerTestSuite) TestHealth_NoAuth() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestAPI_RequiresToken() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))
	suite.Equal(http.StatusUnauthorized, w.Code)
}
