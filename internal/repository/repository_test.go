package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenmq77/duckiki/internal/database"
	"github.com/chenmq77/duckiki/internal/models"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	db, err := database.Connect("file::memory:", "test")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewRepositories(db)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	boom := errors.New("boom")
	err := repos.Transaction(ctx, func(tx *Repositories) error {
		require.NoError(t, tx.Expense.Create(ctx, &models.Expense{Type: "equipment", Amount: 30, Currency: "NZD", Date: day(2024, 1, 2)}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, total, err := repos.Expense.List(ctx, NewListQuery())
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestExpenseListKinds(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	flat := &models.Expense{Type: "equipment", Category: "Goggles", Amount: 30, Currency: "NZD", Date: day(2024, 1, 2)}
	anchor := &models.Expense{Type: "membership", Category: "Annual", Amount: 520, Currency: "NZD", Date: day(2024, 1, 1), IsInstallment: true}
	require.NoError(t, repos.Expense.Create(ctx, flat))
	require.NoError(t, repos.Expense.Create(ctx, anchor))
	child := &models.Expense{Type: "membership", Amount: 10, Currency: "NZD", Date: day(2024, 1, 1), ParentExpenseID: &anchor.ID}
	require.NoError(t, repos.Expense.Create(ctx, child))

	tests := []struct {
		kind string
		want int64
	}{
		{"", 2},
		{ExpenseKindFlat, 1},
		{ExpenseKindAnchor, 1},
		{ExpenseKindChild, 1},
		{"all", 3},
	}
	for _, tt := range tests {
		t.Run("kind="+tt.kind, func(t *testing.T) {
			q := NewListQuery()
			q.Filters["kind"] = tt.kind
			_, total, err := repos.Expense.List(ctx, q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, total)
		})
	}

	flats, err := repos.Expense.FindFlat(ctx)
	require.NoError(t, err)
	require.Len(t, flats, 1)
	assert.Equal(t, flat.ID, flats[0].ID)

	q := NewListQuery()
	q.Search = "gog"
	list, _, err := repos.Expense.List(ctx, q)
	require.NoError(t, err)
	require.Len(t, list, 1)

	q = NewListQuery()
	q.Filters["kind"] = "all"
	q.Filters["to"] = "2024-01-01"
	_, total, err := repos.Expense.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestContractWithCharges(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	anchor := &models.Expense{Type: "membership", Amount: 30, Currency: "NZD", Date: day(2024, 1, 1), IsInstallment: true}
	require.NoError(t, repos.Expense.Create(ctx, anchor))

	contract := &models.Contract{
		ExpenseID: anchor.ID, TotalAmount: 30, PeriodAmount: 10, PeriodType: "weekly", PeriodCount: 3,
		StartDate: day(2024, 1, 1), EndDate: day(2024, 1, 16), Status: models.ContractStatusActive,
	}
	require.NoError(t, repos.Contract.Create(ctx, contract))

	charges := []models.Charge{
		{ContractID: contract.ID, PeriodIndex: 0, ChargeDate: day(2024, 1, 1), Amount: 10, Status: models.ChargeStatusPaid},
		{ContractID: contract.ID, PeriodIndex: 1, ChargeDate: day(2024, 1, 8), Amount: 10, Status: models.ChargeStatusPending},
		{ContractID: contract.ID, PeriodIndex: 2, ChargeDate: day(2024, 1, 15), Amount: 10, Status: models.ChargeStatusPending},
	}
	require.NoError(t, repos.Charge.CreateBatch(ctx, charges))
	assert.NotZero(t, charges[2].ID)

	loaded, err := repos.Contract.FindByIDWithDetails(ctx, contract.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Expense)
	require.Len(t, loaded.Charges, 3)
	assert.Equal(t, 1, loaded.PaidCount())

	byExpense, err := repos.Contract.FindByExpenseID(ctx, anchor.ID)
	require.NoError(t, err)
	assert.Equal(t, contract.ID, byExpense.ID)

	due, err := repos.Charge.FindDuePending(ctx, day(2024, 1, 8))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, 1, due[0].PeriodIndex)

	withInfo, err := repos.Expense.FindByIDWithDetails(ctx, anchor.ID)
	require.NoError(t, err)
	info := withInfo.ToResponse().ContractInfo
	require.NotNil(t, info)
	assert.Equal(t, 3, info.TotalPeriods)

	require.NoError(t, repos.Charge.DeleteByContract(ctx, contract.ID))
	left, err := repos.Charge.FindByContract(ctx, contract.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestSettingLastWriteWins(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	_, err := repos.Setting.Get(ctx, models.SettingMarketReferencePrice)
	assert.Error(t, err)

	require.NoError(t, repos.Setting.Set(ctx, models.SettingMarketReferencePrice, "50"))
	require.NoError(t, repos.Setting.Set(ctx, models.SettingMarketReferencePrice, "65"))

	s, err := repos.Setting.Get(ctx, models.SettingMarketReferencePrice)
	require.NoError(t, err)
	assert.Equal(t, "65", s.Value)
}

func TestActivityWeightsAndAudit(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	for _, w := range []float64{1, 1.5, 3} {
		require.NoError(t, repos.Activity.Create(ctx, &models.Activity{Type: "group_class", Date: day(2024, 1, 1), CalculatedWeight: w}))
	}
	weights, err := repos.Activity.Weights(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1.5, 3}, weights)

	require.NoError(t, repos.Audit.Create(ctx, &models.AuditLog{Action: models.AuditActionCreate, Entity: "Activity", EntityID: 1}))
	require.NoError(t, repos.Audit.Create(ctx, &models.AuditLog{Action: models.AuditActionDelete, Entity: "Expense", EntityID: 2}))

	q := NewListQuery()
	q.Filters["entity"] = "Expense"
	logs, total, err := repos.Audit.List(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, models.AuditActionDelete, logs[0].Action)
}
