package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker/internal/dto"
	"github.com/SscSPs/budget_tracker/internal/handlers"
	"github.com/SscSPs/budget_tracker/internal/platform/config"
	"github.com/SscSPs/budget_tracker/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*portssvc.TransactionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.TransactionResult), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*portssvc.TransactionResult, error) {
	args := m.Called(ctx, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.TransactionResult), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	return m.Called(ctx, transactionID).Error(0)
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

func (m *MockReportingService) AccountBalanceAtDate(ctx context.Context, accountID string, asOf time.Time) (int64, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingService) ListAccountsAtDate(ctx context.Context, asOf time.Time) ([]domain.AccountBalanceAt, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalanceAt), args.Error(1)
}

func (m *MockReportingService) CapitalAtDate(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingService) MonthlySummary(ctx context.Context, year int, month time.Month, accountID, categoryID *string) (*domain.MonthlySummary, error) {
	args := m.Called(ctx, year, month, accountID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlySummary), args.Error(1)
}

// --- Mock BankService ---
type MockBankService struct {
	mock.Mock
}

var _ portssvc.BankSvcFacade = (*MockBankService)(nil)

func (m *MockBankService) GetBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	args := m.Called(ctx, bankID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bank), args.Error(1)
}

func (m *MockBankService) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bank), args.Error(1)
}

func (m *MockBankService) CreateBank(ctx context.Context, req dto.CreateBankRequest) (*domain.Bank, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bank), args.Error(1)
}

func (m *MockBankService) UpdateBank(ctx context.Context, bankID string, req dto.UpdateBankRequest) (*domain.Bank, error) {
	args := m.Called(ctx, bankID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bank), args.Error(1)
}

func (m *MockBankService) DeleteBank(ctx context.Context, bankID string) error {
	return m.Called(ctx, bankID).Error(0)
}

// --- Test Suite Setup ---
type HandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	cfg        *config.Config
	txnSvc     *MockTransactionService
	reportSvc  *MockReportingService
	bankSvc    *MockBankService
	authHeader string
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.txnSvc = new(MockTransactionService)
	suite.reportSvc = new(MockReportingService)
	suite.bankSvc = new(MockBankService)
	suite.cfg = &config.Config{
		IsProduction: true,
		Location:     time.UTC,
		JWTSecret:    "test-secret-that-is-long-enough-123",
		JWTIssuer:    "budget-tracker-test",
	}

	suite.router = gin.New()
	err := handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		Bank:        suite.bankSvc,
		Transaction: suite.txnSvc,
		Reporting:   suite.reportSvc,
	})
	suite.Require().NoError(err)

	signed, err := utils.IssueAccessToken(suite.cfg.JWTSecret, suite.cfg.JWTIssuer, "tester", time.Hour, time.Now())
	suite.Require().NoError(err)
	suite.authHeader = "Bearer " + signed
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (suite *HandlerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", suite.authHeader)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorCode(w *httptest.ResponseRecorder) string {
	var body handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

// --- Tests ---

func (suite *HandlerTestSuite) TestHealth() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestAuthRequired() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.txnSvc.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateTransaction_Success() {
	date := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	catID := "cat-1"
	result := &portssvc.TransactionResult{
		Transaction: domain.Transaction{
			TransactionID: "txn-1", AccountID: "acc-1", CategoryID: &catID, AmountCents: -4500, Date: date,
		},
		Balances: map[string]int64{"acc-1": 145500},
	}
	suite.txnSvc.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
		return req.AccountID == "acc-1" && req.AmountCents == -4500 && req.Date != nil && req.Date.Equal(date)
	})).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions",
		`{"accountID":"acc-1","categoryID":"cat-1","amountCents":-4500,"date":"2025-03-03T10:00:00Z"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionMutationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("txn-1", resp.Transaction.TransactionID)
	suite.Equal(int64(145500), resp.Balances["acc-1"])
	suite.txnSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateTransaction_RejectsFractionalAmount() {
	for _, amount := range []string{"12.5", `"100"`, "1e400"} {
		w := suite.do(http.MethodPost, "/api/v1/transactions",
			fmt.Sprintf(`{"accountID":"acc-1","categoryID":"cat-1","amountCents":%s}`, amount))
		suite.Equal(http.StatusBadRequest, w.Code, amount)
		suite.Equal("INVALID_AMOUNT", suite.errorCode(w), amount)
	}
	suite.txnSvc.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateTransaction_ErrorMapping() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"zero amount", apperrors.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
		{"mismatch", &apperrors.CategoryMismatchError{Detected: "INCOME", Declared: "EXPENSE"}, http.StatusBadRequest, "CATEGORY_MISMATCH"},
		{"account missing", apperrors.ErrAccountNotFound, http.StatusNotFound, "ACCOUNT_NOT_FOUND"},
		{"category missing", apperrors.ErrCategoryNotFound, http.StatusNotFound, "CATEGORY_NOT_FOUND"},
		{"constraint", fmt.Errorf("insert: %w", apperrors.ErrConstraintViolation), http.StatusConflict, "CONSTRAINT_VIOLATION"},
		{"storage", apperrors.NewAppError(http.StatusInternalServerError, "boom", nil), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.txnSvc.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/transactions",
				`{"accountID":"acc-1","categoryID":"cat-1","amountCents":500}`)

			suite.Equal(tt.wantStatus, w.Code)
			suite.Equal(tt.wantCode, suite.errorCode(w))
		})
	}
}

func (suite *HandlerTestSuite) TestUpdateTransaction_PartialBody() {
	suite.txnSvc.On("UpdateTransaction", mock.Anything, "txn-1", mock.MatchedBy(func(req dto.UpdateTransactionRequest) bool {
		return req.AmountCents != nil && *req.AmountCents == 700 && req.AccountID == nil && req.Date == nil
	})).Return(&portssvc.TransactionResult{
		Transaction: domain.Transaction{TransactionID: "txn-1", AccountID: "acc-1", AmountCents: 700},
		Balances:    map[string]int64{"acc-1": 1700},
	}, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/transactions/txn-1", `{"amountCents":700}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.txnSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestDeleteTransaction() {
	suite.txnSvc.On("DeleteTransaction", mock.Anything, "unknown").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/transactions/unknown", "")

	suite.Equal(http.StatusNoContent, w.Code)
	suite.txnSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListTransactions_ParsesDates() {
	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	suite.txnSvc.On("ListTransactions", mock.Anything, mock.MatchedBy(func(f portsrepo.TransactionFilter) bool {
		return f.From != nil && f.From.Equal(from) &&
			f.ToExclusive != nil && f.ToExclusive.Equal(to) &&
			f.AccountID != nil && *f.AccountID == "acc-1" && f.Limit == 50
	})).Return([]domain.Transaction{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?accountID=acc-1&from=2025-01-01&to=2025-02-01T00:00:00Z&limit=50", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
	suite.txnSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListTransactions_BadDate() {
	w := suite.do(http.MethodGet, "/api/v1/transactions?from=yesterday", "")
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", suite.errorCode(w))
}

func (suite *HandlerTestSuite) TestMonthlySummary() {
	suite.reportSvc.On("MonthlySummary", mock.Anything, 2025, time.March, (*string)(nil), (*string)(nil)).
		Return(&domain.MonthlySummary{
			Year: 2025, Month: time.March,
			TotalIncomeCents: 150000, TotalExpensesCents: -4500, NetSavingsCents: 145500,
			ByCategory: []domain.CategoryTotal{},
		}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/monthly-summary?year=2025&month=3", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MonthlySummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(145500), resp.NetSavingsCents)
	suite.Equal("1455", resp.NetSavings.String())
	suite.reportSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestMonthlySummary_InvalidMonth() {
	w := suite.do(http.MethodGet, "/api/v1/reports/monthly-summary?year=2025&month=13", "")
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.reportSvc.AssertNotCalled(suite.T(), "MonthlySummary", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCapital_DateOnlyIsMidnightInLedgerZone() {
	asOf := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	suite.reportSvc.On("CapitalAtDate", mock.Anything, mock.MatchedBy(func(t time.Time) bool {
		return t.Equal(asOf)
	})).Return(int64(130000), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/capital?date=2025-01-01", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CapitalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(130000), resp.CapitalCents)
	suite.reportSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestDeleteBank_InUse() {
	suite.bankSvc.On("DeleteBank", mock.Anything, "bank-1").
		Return(fmt.Errorf("%w: 2 account(s) still reference it", apperrors.ErrBankInUse)).Once()

	w := suite.do(http.MethodDelete, "/api/v1/banks/bank-1", "")

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("BANK_IN_USE", suite.errorCode(w))
}
