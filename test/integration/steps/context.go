package steps

import (
	"context"
	"log"
	"net/http/httptest"
	"os"
	"sync"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/folaeazy/snap-bill/config"
	"github.com/folaeazy/snap-bill/internal/infra/dependency"
	"github.com/folaeazy/snap-bill/internal/integration/persistence/model"
	"github.com/folaeazy/snap-bill/test/integration/mock"
)

// TestContext carries the wired application and per-scenario request
// state between step definitions.
type TestContext struct {
	server         *httptest.Server
	engine         *gin.Engine
	db             *mock.Db
	responseStatus int
	responseBody   []byte
	requestHeaders map[string]string
	requestBody    string
	accessToken    string
	refreshToken   string
	lastID         string
}

type contextKey struct{}

var (
	suiteOnce sync.Once
	suiteCtx  *TestContext
)

func testContextFrom(ctx context.Context) *TestContext {
	tc, _ := ctx.Value(contextKey{}).(*TestContext)
	return tc
}

// bootSuite wires the full application against in-memory backends:
// sqlite for persistence, miniredis for caching and rate limiting, and
// the mock email sender (no RESEND_API_KEY set).
func bootSuite() *TestContext {
	suiteOnce.Do(func() {
		os.Setenv("ENV", "test")
		gin.SetMode(gin.TestMode)

		db := mock.NewDb(
			&model.UserModel{},
			&model.RefreshTokenModel{},
			&model.PasswordResetTokenModel{},
			&model.TransactionModel{},
			&model.EmailAccountModel{},
			&model.EmailQueueModel{},
		)
		redisClient := mock.NewRedis()

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.Email.ResendAPIKey = ""
		cfg.Email.WorkerEnabled = false

		injector, err := dependency.NewInjector(cfg, db.Conn, redisClient, func() bool { return true })
		if err != nil {
			log.Fatalf("failed to wire test application: %v", err)
		}

		engine := injector.Router.Setup("test")
		suiteCtx = &TestContext{
			engine: engine,
			server: httptest.NewServer(engine),
			db:     db,
		}
	})
	return suiteCtx
}

func InitializeTestSuite(sc *godog.TestSuiteContext) {
	sc.BeforeSuite(func() {
		bootSuite()
	})
	sc.AfterSuite(func() {
		if suiteCtx != nil && suiteCtx.server != nil {
			suiteCtx.server.Close()
		}
	})
}

func InitializeScenario(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		tc := bootSuite()
		if err := tc.db.Reset(); err != nil {
			return ctx, err
		}
		mock.FlushRedis()
		tc.responseStatus = 0
		tc.responseBody = nil
		tc.requestHeaders = map[string]string{}
		tc.requestBody = ""
		tc.accessToken = ""
		tc.refreshToken = ""
		tc.lastID = ""
		return context.WithValue(ctx, contextKey{}, tc), nil
	})

	registerHTTPSteps(sc)
	registerAuthSteps(sc)
	registerAssertionSteps(sc)
}
