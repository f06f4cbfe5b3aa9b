package statemachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenmq77/duckiki/internal/models"
)

func TestContractLifecycle(t *testing.T) {
	ctx := context.Background()
	c := &models.Contract{}
	m := NewContractFSM(c)
	assert.Equal(t, models.ContractStatusDraft, c.Status)

	require.NoError(t, m.Generate(ctx))
	assert.Equal(t, models.ContractStatusActive, c.Status)

	require.NoError(t, m.Edit(ctx))
	assert.Equal(t, models.ContractStatusEdited, c.Status)
	assert.True(t, m.Can("settle"))

	require.NoError(t, m.Settle(ctx))
	assert.Equal(t, models.ContractStatusActive, c.Status)

	require.NoError(t, m.Close(ctx))
	assert.Equal(t, models.ContractStatusClosed, c.Status)
}

func TestContractRejectedTransitions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		status string
		fire   func(m *ContractFSM) error
	}{
		{"generate twice", models.ContractStatusActive, func(m *ContractFSM) error { return m.Generate(ctx) }},
		{"edit a draft", models.ContractStatusDraft, func(m *ContractFSM) error { return m.Edit(ctx) }},
		{"settle without edit", models.ContractStatusActive, func(m *ContractFSM) error { return m.Settle(ctx) }},
		{"close mid edit", models.ContractStatusEdited, func(m *ContractFSM) error { return m.Close(ctx) }},
		{"edit closed", models.ContractStatusClosed, func(m *ContractFSM) error { return m.Edit(ctx) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &models.Contract{Status: tt.status}
			err := tt.fire(NewContractFSM(c))
			assert.ErrorIs(t, err, ErrTransition)
			assert.Equal(t, tt.status, c.Status)
		})
	}
}

func TestChargeLifecycle(t *testing.T) {
	ctx := context.Background()
	ch := &models.Charge{}
	m := NewChargeFSM(ch)
	assert.Equal(t, models.ChargeStatusPending, ch.Status)

	assert.ErrorIs(t, m.Revert(ctx), ErrTransition)

	require.NoError(t, m.Pay(ctx))
	assert.True(t, ch.IsPaid())
	assert.ErrorIs(t, m.Pay(ctx), ErrTransition)

	require.NoError(t, m.Revert(ctx))
	assert.Equal(t, models.ChargeStatusPending, m.Current())
}
