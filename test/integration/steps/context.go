// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gestion-irrigation/backend/internal/application/usecase/contract"
	"github.com/gestion-irrigation/backend/internal/application/usecase/expense"
	"github.com/gestion-irrigation/backend/internal/application/usecase/finance"
	"github.com/gestion-irrigation/backend/internal/application/usecase/report"
	"github.com/gestion-irrigation/backend/internal/application/usecase/settlement"
	"github.com/gestion-irrigation/backend/internal/infra/server/router"
	"github.com/gestion-irrigation/backend/internal/integration/adapters"
	"github.com/gestion-irrigation/backend/internal/integration/entrypoint/controller"
	"github.com/gestion-irrigation/backend/internal/integration/entrypoint/middleware"
	"github.com/gestion-irrigation/backend/internal/integration/export"
	"github.com/gestion-irrigation/backend/internal/integration/persistence"
	"github.com/gestion-irrigation/backend/internal/integration/persistence/model"
	"github.com/gestion-irrigation/backend/internal/integration/realtime"
	"github.com/gestion-irrigation/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// testContext holds the per-scenario state. The server and its backing
// stores are shared across scenarios; the data is cleared between them.
type testContext struct {
	client   *http.Client
	headers  map[string]string
	response *response

	accessToken   string
	currentUserID uuid.UUID

	db *mock.Db

	// Seeded record IDs for path and body placeholders.
	contractIDs   map[string]uuid.UUID
	settlementID  uuid.UUID
	expenseID     uuid.UUID
	lastCreatedID uuid.UUID
}

type response struct {
	status      int
	contentType string
	body        any
	raw         []byte
}

var serverOnce sync.Once
var testServer *httptest.Server
var testDB *mock.Db

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		_ = os.Setenv("ENV", "test")
	})

	ctx.AfterSuite(func() {
		if testServer != nil {
			testServer.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
		db: mock.NewDb(map[string]any{
			"markets":       &model.MarketModel{},
			"contracts":     &model.ContractModel{},
			"settlements":   &model.SettlementModel{},
			"expenses":      &model.ExpenseModel{},
			"user_profiles": &model.UserProfileModel{},
		}),
	}
	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Auth setup steps
	ctx.Given(`^I am logged in as an? "([^"]*)"$`, test.iAmLoggedInAsRole)
	ctx.Given(`^I am not authenticated$`, test.iAmNotAuthenticated)

	// Data setup steps
	ctx.Given(`^a market "([^"]*)" exists with estimated amount "([^"]*)"$`, test.aMarketExistsWithEstimatedAmount)
	ctx.Given(`^an active contract "([^"]*)" exists with amount "([^"]*)" on market "([^"]*)"$`, test.anActiveContractExistsOnMarket)
	ctx.Given(`^an active contract "([^"]*)" exists with amount "([^"]*)"$`, test.anActiveContractExists)
	ctx.Given(`^a settlement of "([^"]*)" exists for contract "([^"]*)"$`, test.aSettlementExistsForContract)
	ctx.Given(`^an expense of "([^"]*)" exists in category "([^"]*)"$`, test.anExpenseExistsInCategory)
	ctx.Given(`^the financial snapshot has been refreshed$`, test.theFinancialSnapshotHasBeenRefreshed)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response content type should be "([^"]*)"$`, test.theResponseContentTypeShouldBe)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
}

// before resets the per-scenario state and wipes the shared stores.
func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.contractIDs = make(map[string]uuid.UUID)
	t.settlementID = uuid.Nil
	t.expenseID = uuid.Nil
	t.lastCreatedID = uuid.Nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	_ = mock.ClearRedis(mock.NewRedis())
}

// startServer wires the full application stack against the in-memory
// stores and starts a single shared test server.
func (t *testContext) startServer() {
	serverOnce.Do(func() {
		contractRepo := persistence.NewContractRepository(testDB.DbConn)
		settlementRepo := persistence.NewSettlementRepository(testDB.DbConn)
		expenseRepo := persistence.NewExpenseRepository(testDB.DbConn)
		profileRepo := persistence.NewUserProfileRepository(testDB.DbConn)

		tokenService := adapters.NewTokenService(testJWTSecret)
		feed := realtime.NewRedisChangeFeed(mock.NewRedis())

		holder := finance.NewSnapshotHolder()
		refreshUseCase := finance.NewRefreshOverviewUseCase(contractRepo, settlementRepo, expenseRepo, holder)
		exportUseCase := report.NewExportFinancialDataUseCase(holder, export.NewExcelExporter())
		reportUseCase := report.NewGenerateReportUseCase(holder, export.NewPDFReportGenerator())

		createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, feed, refreshUseCase, expense.DefaultMutationTimeout)
		updateExpenseUseCase := expense.NewUpdateExpenseUseCase(expenseRepo, feed, refreshUseCase)
		deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo, feed, refreshUseCase)

		createSettlementUseCase := settlement.NewCreateSettlementUseCase(settlementRepo, contractRepo, feed, refreshUseCase)
		updateSettlementUseCase := settlement.NewUpdateSettlementUseCase(settlementRepo, feed, refreshUseCase)
		deleteSettlementUseCase := settlement.NewDeleteSettlementUseCase(settlementRepo, feed, refreshUseCase)

		updatePaymentStatusUseCase := contract.NewUpdatePaymentStatusUseCase(contractRepo, profileRepo, feed, refreshUseCase)

		healthController := controller.NewHealthController(
			func() bool { return testDB != nil && testDB.DbConn != nil },
			func() bool { return true },
		)
		financeController := controller.NewFinanceController(holder, refreshUseCase, exportUseCase, reportUseCase)
		expenseController := controller.NewExpenseController(createExpenseUseCase, updateExpenseUseCase, deleteExpenseUseCase)
		settlementController := controller.NewSettlementController(createSettlementUseCase, updateSettlementUseCase, deleteSettlementUseCase)
		contractController := controller.NewContractController(updatePaymentStatusUseCase)

		reportRateLimiter := middleware.NewRateLimiter()
		authMiddleware := middleware.NewAuthMiddleware(tokenService)

		r := router.NewRouter(
			healthController,
			financeController,
			expenseController,
			settlementController,
			contractController,
			reportRateLimiter,
			authMiddleware,
		)
		engine := r.Setup("test")
		testServer = httptest.NewServer(engine)
	})
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}
