package statemachine

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/chenmq77/duckiki/internal/models"
)

// ErrTransition is wrapped by every rejected state change.
var ErrTransition = errors.New("invalid state transition")

// ContractFSM wraps a contract with its state machine
type ContractFSM struct {
	contract *models.Contract
	fsm      *fsm.FSM
}

// NewContractFSM creates a new contract state machine
func NewContractFSM(contract *models.Contract) *ContractFSM {
	if contract.Status == "" {
		contract.Status = models.ContractStatusDraft
	}

	cfsm := &ContractFSM{
		contract: contract,
	}

	cfsm.fsm = fsm.NewFSM(
		contract.Status,
		fsm.Events{
			// draft → active (charges generated)
			{Name: "generate", Src: []string{models.ContractStatusDraft}, Dst: models.ContractStatusActive},

			// active → edited (regeneration in progress)
			{Name: "edit", Src: []string{models.ContractStatusActive}, Dst: models.ContractStatusEdited},

			// edited → active (regeneration committed)
			{Name: "settle", Src: []string{models.ContractStatusEdited}, Dst: models.ContractStatusActive},

			// draft/active → closed (deleted with its charges)
			{Name: "close", Src: []string{models.ContractStatusDraft, models.ContractStatusActive}, Dst: models.ContractStatusClosed},
		},
		fsm.Callbacks{},
	)

	return cfsm
}

// Generate marks the contract's charges as generated
func (c *ContractFSM) Generate(ctx context.Context) error {
	if !c.contract.MayActivate() {
		return fmt.Errorf("%w: contract cannot be activated in state %s", ErrTransition, c.contract.Status)
	}
	return c.fire(ctx, "generate")
}

// Edit starts a regeneration
func (c *ContractFSM) Edit(ctx context.Context) error {
	if !c.contract.MayEdit() {
		return fmt.Errorf("%w: contract cannot be edited in state %s", ErrTransition, c.contract.Status)
	}
	return c.fire(ctx, "edit")
}

// Settle commits a regeneration
func (c *ContractFSM) Settle(ctx context.Context) error {
	if !c.contract.MaySettle() {
		return fmt.Errorf("%w: contract cannot be settled in state %s", ErrTransition, c.contract.Status)
	}
	return c.fire(ctx, "settle")
}

// Close transitions the contract to closed
func (c *ContractFSM) Close(ctx context.Context) error {
	if !c.contract.MayClose() {
		return fmt.Errorf("%w: contract cannot be closed in state %s", ErrTransition, c.contract.Status)
	}
	return c.fire(ctx, "close")
}

func (c *ContractFSM) fire(ctx context.Context, event string) error {
	if err := c.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("%w: %s contract: %v", ErrTransition, event, err)
	}
	c.contract.Status = c.fsm.Current()
	return nil
}

// Current returns the current state
func (c *ContractFSM) Current() string {
	return c.fsm.Current()
}

// Can checks if a transition is possible
func (c *ContractFSM) Can(event string) bool {
	return c.fsm.Can(event)
}
