package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	e, err := env.svcs.Expense.Create(ctx, ExpenseInput{Type: "Others", Category: " Towel ", Amount: 12.5, Date: "2024-01-03"})
	require.NoError(t, err)
	assert.Equal(t, "other", e.Type)
	assert.Equal(t, "Towel", e.Category)
	assert.Equal(t, "NZD", e.Currency)
	assert.True(t, e.IsFlat())

	tests := []struct {
		name  string
		in    ExpenseInput
		field string
	}{
		{"unknown type", ExpenseInput{Type: "food", Amount: 1, Date: "2024-01-01"}, "type"},
		{"zero amount", ExpenseInput{Type: "equipment", Amount: 0, Date: "2024-01-01"}, "amount"},
		{"unknown currency", ExpenseInput{Type: "equipment", Amount: 1, Currency: "eur", Date: "2024-01-01"}, "currency"},
		{"bad date", ExpenseInput{Type: "equipment", Amount: 1, Date: "yesterday"}, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svcs.Expense.Create(ctx, tt.in)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestExpenseService_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	e, err := env.svcs.Expense.Create(ctx, ExpenseInput{Type: "equipment", Amount: 30, Date: "2024-01-03"})
	require.NoError(t, err)

	updated, err := env.svcs.Expense.Update(ctx, e.ID, ExpensePatch{Amount: ptr(35.0), Currency: ptr("cny")})
	require.NoError(t, err)
	assert.Equal(t, 35.0, updated.Amount)
	assert.Equal(t, "CNY", updated.Currency)

	_, err = env.svcs.Expense.Update(ctx, e.ID, ExpensePatch{Amount: ptr(-1.0)})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, env.svcs.Expense.Delete(ctx, e.ID))
	_, err = env.svcs.Expense.Get(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpenseService_ContractRecordsAreProtected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	contract, err := env.svcs.Contract.Create(ctx, fourWeeks())
	require.NoError(t, err)
	child := env.children(t, contract.ExpenseID)[0]

	_, err = env.svcs.Expense.Update(ctx, contract.ExpenseID, ExpensePatch{Amount: ptr(1.0)})
	assert.ErrorIs(t, err, ErrConsistency)
	assert.ErrorIs(t, env.svcs.Expense.Delete(ctx, contract.ExpenseID), ErrConsistency)
	assert.ErrorIs(t, env.svcs.Expense.Delete(ctx, child.ID), ErrConsistency)

	anchor, err := env.svcs.Expense.Get(ctx, contract.ExpenseID)
	require.NoError(t, err)
	resp := anchor.ToResponse()
	require.NotNil(t, resp.ContractInfo)
	assert.Equal(t, 4, resp.ContractInfo.TotalPeriods)
	assert.Equal(t, 2, resp.ContractInfo.PaidPeriods)

	got, err := env.svcs.Expense.Get(ctx, child.ID)
	require.NoError(t, err)
	childResp := got.ToResponse()
	require.NotNil(t, childResp.ParentCategory)
	assert.Equal(t, "Weekly pass", *childResp.ParentCategory)
}
