package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chenmq77/duckiki/internal/catalog"
	"github.com/chenmq77/duckiki/internal/config"
	"github.com/chenmq77/duckiki/internal/database"
	"github.com/chenmq77/duckiki/internal/jobs"
	"github.com/chenmq77/duckiki/internal/models"
	"github.com/chenmq77/duckiki/internal/repository"
	"github.com/chenmq77/duckiki/internal/storage"
)

// testNow is the fixed clock of service tests
var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	svcs  *Services
	repos *repository.Repositories
	store *storage.LocalStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Connect("file::memory:", "test")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	worker := jobs.NewWorker(1)
	t.Cleanup(worker.Shutdown)

	cfg := &config.Config{
		BaseCurrency:         "NZD",
		MarketReferencePrice: 50,
		AutoSettleCharges:    true,
	}
	repos := repository.NewRepositories(db)
	svcs := NewServices(repos, worker, store, cfg, catalog.Default())
	svcs.Contract.now = func() time.Time { return testNow }
	svcs.Export.now = func() time.Time { return testNow }
	svcs.Report.now = func() time.Time { return testNow }

	return &testEnv{svcs: svcs, repos: repos, store: store}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func (e *testEnv) allExpenses(t *testing.T) []models.Expense {
	t.Helper()
	q := repository.NewListQuery()
	q.PerPage = 0
	q.Filters["kind"] = "all"
	list, _, err := e.repos.Expense.List(context.Background(), q)
	require.NoError(t, err)
	return list
}

func (e *testEnv) children(t *testing.T, anchorID uint) []models.Expense {
	t.Helper()
	list, err := e.repos.Expense.FindChildren(context.Background(), anchorID)
	require.NoError(t, err)
	return list
}
