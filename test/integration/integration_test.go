//go:build integration

package integration

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/folaeazy/snap-bill/test/integration/steps"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                 "snap-bill-api",
		TestSuiteInitializer: steps.InitializeTestSuite,
		ScenarioInitializer:  steps.InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Output:   os.Stdout,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
