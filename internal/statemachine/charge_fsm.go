package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/chenmq77/duckiki/internal/models"
)

// ChargeFSM wraps a charge with its state machine
type ChargeFSM struct {
	charge *models.Charge
	fsm    *fsm.FSM
}

// NewChargeFSM creates a new charge state machine
func NewChargeFSM(charge *models.Charge) *ChargeFSM {
	if charge.Status == "" {
		charge.Status = models.ChargeStatusPending
	}

	cfsm := &ChargeFSM{
		charge: charge,
	}

	cfsm.fsm = fsm.NewFSM(
		charge.Status,
		fsm.Events{
			// pending → paid
			{Name: "pay", Src: []string{models.ChargeStatusPending}, Dst: models.ChargeStatusPaid},

			// paid → pending
			{Name: "revert", Src: []string{models.ChargeStatusPaid}, Dst: models.ChargeStatusPending},
		},
		fsm.Callbacks{},
	)

	return cfsm
}

// Pay settles the charge
func (c *ChargeFSM) Pay(ctx context.Context) error {
	if !c.charge.MayPay() {
		return fmt.Errorf("%w: charge cannot be paid in state %s", ErrTransition, c.charge.Status)
	}

	if err := c.fsm.Event(ctx, "pay"); err != nil {
		return fmt.Errorf("%w: pay charge: %v", ErrTransition, err)
	}

	c.charge.Status = c.fsm.Current()
	return nil
}

// Revert moves a paid charge back to pending
func (c *ChargeFSM) Revert(ctx context.Context) error {
	if !c.charge.MayRevert() {
		return fmt.Errorf("%w: charge cannot be reverted in state %s", ErrTransition, c.charge.Status)
	}

	if err := c.fsm.Event(ctx, "revert"); err != nil {
		return fmt.Errorf("%w: revert charge: %v", ErrTransition, err)
	}

	c.charge.Status = c.fsm.Current()
	return nil
}

// Current returns the current state
func (c *ChargeFSM) Current() string {
	return c.fsm.Current()
}
