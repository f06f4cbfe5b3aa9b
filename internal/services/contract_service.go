package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chenmq77/duckiki/internal/catalog"
	"github.com/chenmq77/duckiki/internal/models"
	"github.com/chenmq77/duckiki/internal/repository"
	"github.com/chenmq77/duckiki/internal/schedule"
	"github.com/chenmq77/duckiki/internal/statemachine"
	"github.com/chenmq77/duckiki/pkg/logger"
)

// ContractInput is the payload for a new installment contract. Either
// period_count or end_date fixes the number of periods, and either
// total_amount or period_amount fixes the money.
type ContractInput struct {
	Type         string   `json:"type" binding:"required"`
	Category     string   `json:"category"`
	Currency     string   `json:"currency"`
	Note         *string  `json:"note"`
	TotalAmount  *float64 `json:"total_amount"`
	PeriodAmount *float64 `json:"period_amount"`
	PeriodType   string   `json:"period_type" binding:"required"`
	PeriodCount  *int     `json:"period_count"`
	DayOfWeek    *int     `json:"day_of_week"`
	DayOfMonth   *int     `json:"day_of_month"`
	StartDate    string   `json:"start_date" binding:"required"`
	EndDate      *string  `json:"end_date"`
}

// ContractPatch holds the contract fields to change
type ContractPatch struct {
	Type         *string  `json:"type"`
	Category     *string  `json:"category"`
	Currency     *string  `json:"currency"`
	Note         *string  `json:"note"`
	TotalAmount  *float64 `json:"total_amount"`
	PeriodAmount *float64 `json:"period_amount"`
	PeriodType   *string  `json:"period_type"`
	PeriodCount  *int     `json:"period_count"`
	DayOfWeek    *int     `json:"day_of_week"`
	DayOfMonth   *int     `json:"day_of_month"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
}

// ConvertInput turns a flat expense into a contract. The expense amount is
// the contract total and its date the start date. PeriodType defaults to
// weekly.
type ConvertInput struct {
	PeriodType   string   `json:"period_type"`
	PeriodAmount *float64 `json:"period_amount"`
	PeriodCount  *int     `json:"period_count"`
	DayOfWeek    *int     `json:"day_of_week"`
	DayOfMonth   *int     `json:"day_of_month"`
	EndDate      *string  `json:"end_date"`
}

// QuoteRequest is a partially filled contract form
type QuoteRequest struct {
	StartDate    string   `json:"start_date" binding:"required"`
	PeriodType   string   `json:"period_type" binding:"required"`
	TotalAmount  *float64 `json:"total_amount"`
	PeriodAmount *float64 `json:"period_amount"`
	PeriodCount  *int     `json:"period_count"`
	EndDate      *string  `json:"end_date"`
}

// ChargePatch edits one period of a contract
type ChargePatch struct {
	Amount *float64 `json:"amount"`
	Status *string  `json:"status"`
}

type ContractService struct {
	repos           *repository.Repositories
	catalog         *catalog.Catalog
	defaultCurrency string
	autoSettle      bool
	auditSvc        *AuditService
	publisher       *publisher
	now             func() time.Time
}

func NewContractService(repos *repository.Repositories, cat *catalog.Catalog, defaultCurrency string, autoSettle bool, auditSvc *AuditService, pub *publisher) *ContractService {
	return &ContractService{
		repos:           repos,
		catalog:         cat,
		defaultCurrency: defaultCurrency,
		autoSettle:      autoSettle,
		auditSvc:        auditSvc,
		publisher:       pub,
		now:             time.Now,
	}
}

// Quote reconciles a contract form without storing anything
func (s *ContractService) Quote(ctx context.Context, req QuoteRequest) (*schedule.Quote, error) {
	start, err := parseRequiredDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	q, err := schedule.Reconcile(schedule.QuoteInput{
		StartDate:    start,
		PeriodType:   schedule.PeriodType(strings.ToLower(req.PeriodType)),
		TotalAmount:  req.TotalAmount,
		PeriodAmount: req.PeriodAmount,
		PeriodCount:  req.PeriodCount,
		EndDate:      end,
	})
	if err != nil {
		return nil, classify(err)
	}
	return &q, nil
}

// Create stores the anchor expense, the contract and its generated charges
// in one transaction
func (s *ContractService) Create(ctx context.Context, in ContractInput) (*models.Contract, error) {
	kind, err := parseExpenseKind(in.Type)
	if err != nil {
		return nil, err
	}
	currency, err := resolveCurrency(s.catalog, in.Currency, s.defaultCurrency)
	if err != nil {
		return nil, err
	}
	q, err := s.Quote(ctx, QuoteRequest{
		StartDate:    in.StartDate,
		PeriodType:   in.PeriodType,
		TotalAmount:  in.TotalAmount,
		PeriodAmount: in.PeriodAmount,
		PeriodCount:  in.PeriodCount,
		EndDate:      in.EndDate,
	})
	if err != nil {
		return nil, err
	}
	params := schedule.Params{
		StartDate:    q.StartDate,
		PeriodType:   q.PeriodType,
		PeriodCount:  q.PeriodCount,
		PeriodAmount: q.PeriodAmount,
		DayOfWeek:    in.DayOfWeek,
		DayOfMonth:   in.DayOfMonth,
	}.Normalize()

	var contractID uint
	err = s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		anchor := &models.Expense{
			Type:          string(kind),
			Category:      strings.TrimSpace(in.Category),
			Amount:        q.TotalAmount,
			Currency:      currency,
			Date:          q.StartDate,
			Note:          in.Note,
			IsInstallment: true,
		}
		if err := tx.Expense.Create(ctx, anchor); err != nil {
			return fmt.Errorf("failed to create anchor expense: %w", err)
		}

		contract, err := s.activate(ctx, tx, anchor, params, q.TotalAmount)
		if err != nil {
			return err
		}
		contractID = contract.ID

		s.auditSvc.Record(ctx, tx.Audit, models.AuditActionCreate, "Contract", contract.ID,
			fmt.Sprintf("%d %s charges of %.2f %s", contract.PeriodCount, contract.PeriodType, contract.PeriodAmount, currency))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.changed()
	return s.Get(ctx, contractID)
}

// Convert turns a flat expense into the anchor of a new contract
func (s *ContractService) Convert(ctx context.Context, expenseID uint, in ConvertInput) (*models.Contract, error) {
	end, err := parseOptionalDate("end_date", in.EndDate)
	if err != nil {
		return nil, err
	}

	var contractID uint
	err = s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		expense, err := tx.Expense.FindByID(ctx, expenseID)
		if err != nil {
			return notFound(err, "expense", expenseID)
		}
		if !expense.IsFlat() {
			return inconsistent("expense %d is already part of a contract", expense.ID)
		}

		periodType := schedule.PeriodType(strings.ToLower(in.PeriodType))
		if periodType == "" {
			periodType = schedule.Weekly
		}
		total := expense.Amount
		q, err := schedule.Reconcile(schedule.QuoteInput{
			StartDate:    expense.Date,
			PeriodType:   periodType,
			TotalAmount:  &total,
			PeriodAmount: in.PeriodAmount,
			PeriodCount:  in.PeriodCount,
			EndDate:      end,
		})
		if err != nil {
			return classify(err)
		}
		params := schedule.Params{
			StartDate:    q.StartDate,
			PeriodType:   q.PeriodType,
			PeriodCount:  q.PeriodCount,
			PeriodAmount: q.PeriodAmount,
			DayOfWeek:    in.DayOfWeek,
			DayOfMonth:   in.DayOfMonth,
		}.Normalize()

		expense.IsInstallment = true
		if err := tx.Expense.Update(ctx, expense); err != nil {
			return fmt.Errorf("failed to mark expense as installment: %w", err)
		}

		contract, err := s.activate(ctx, tx, expense, params, q.TotalAmount)
		if err != nil {
			return err
		}
		contractID = contract.ID

		s.auditSvc.Record(ctx, tx.Audit, models.AuditActionConvert, "Expense", expense.ID,
			fmt.Sprintf("converted to contract %d", contract.ID))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.changed()
	return s.Get(ctx, contractID)
}

// activate creates a draft contract for anchor, generates its charges and
// settles the ones already due
func (s *ContractService) activate(ctx context.Context, tx *repository.Repositories, anchor *models.Expense, params schedule.Params, total float64) (*models.Contract, error) {
	lines, err := schedule.Generate(params)
	if err != nil {
		return nil, classify(err)
	}

	contract := &models.Contract{
		ExpenseID:   anchor.ID,
		TotalAmount: total,
	}
	contract.ApplyParams(params)

	cfsm := statemachine.NewContractFSM(contract)
	if err := tx.Contract.Create(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}

	charges := make([]models.Charge, len(lines))
	for i, line := range lines {
		charges[i].ContractID = contract.ID
		charges[i].ApplyLine(line)
	}
	if err := tx.Charge.CreateBatch(ctx, charges); err != nil {
		return nil, fmt.Errorf("failed to create charges: %w", err)
	}

	if err := cfsm.Generate(ctx); err != nil {
		return nil, classify(err)
	}
	if err := tx.Contract.Update(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to activate contract: %w", err)
	}

	if s.autoSettle {
		today := schedule.DateOnly(s.now())
		for i := range charges {
			if charges[i].ChargeDate.After(today) {
				break
			}
			if err := s.pay(ctx, tx, anchor, &charges[i]); err != nil {
				return nil, err
			}
		}
	}

	contract.Charges = charges
	return contract, nil
}

// Update applies the patch and regenerates the charge set. Paid charges keep
// their date and amount; the whole change is rejected when it would drop or
// reorder a paid charge.
func (s *ContractService) Update(ctx context.Context, id uint, patch ContractPatch) (*models.Contract, error) {
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		contract, err := tx.Contract.FindByIDWithDetails(ctx, id)
		if err != nil {
			return notFound(err, "contract", id)
		}
		anchor := contract.Expense
		if anchor == nil {
			return inconsistent("contract %d has no anchor expense", contract.ID)
		}

		if err := s.patchAnchor(anchor, patch); err != nil {
			return err
		}
		params, total, err := patchParams(contract, patch)
		if err != nil {
			return err
		}

		cfsm := statemachine.NewContractFSM(contract)
		if err := cfsm.Edit(ctx); err != nil {
			return classify(err)
		}

		plan, err := schedule.Regenerate(contract.Lines(), params)
		if err != nil {
			return classify(err)
		}
		if err := applyPlan(ctx, tx, contract, plan); err != nil {
			return err
		}

		contract.ApplyParams(params)
		contract.TotalAmount = total
		anchor.Amount = total
		anchor.Date = contract.StartDate
		if err := tx.Expense.Update(ctx, anchor); err != nil {
			return fmt.Errorf("failed to update anchor expense: %w", err)
		}
		if err := syncChildren(ctx, tx, anchor); err != nil {
			return err
		}

		if err := cfsm.Settle(ctx); err != nil {
			return classify(err)
		}
		if err := tx.Contract.Update(ctx, contract); err != nil {
			return fmt.Errorf("failed to update contract: %w", err)
		}

		logger.Info("contract regenerated",
			slog.Any("contract_id", contract.ID),
			slog.Int("kept", len(plan.Kept)),
			slog.Int("created", len(plan.Created)),
			slog.Int("removed", len(plan.Removed)))
		s.auditSvc.Record(ctx, tx.Audit, models.AuditActionUpdate, "Contract", contract.ID,
			fmt.Sprintf("regenerated: %d kept, %d created, %d removed", len(plan.Kept), len(plan.Created), len(plan.Removed)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.changed()
	return s.Get(ctx, id)
}

func (s *ContractService) patchAnchor(anchor *models.Expense, patch ContractPatch) error {
	if patch.Type != nil {
		kind, err := parseExpenseKind(*patch.Type)
		if err != nil {
			return err
		}
		anchor.Type = string(kind)
	}
	if patch.Category != nil {
		anchor.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Currency != nil {
		currency, err := resolveCurrency(s.catalog, *patch.Currency, s.defaultCurrency)
		if err != nil {
			return err
		}
		anchor.Currency = currency
	}
	if patch.Note != nil {
		anchor.Note = patch.Note
	}
	return nil
}

// patchParams derives the new generation parameters and total from the
// contract and the patch
func patchParams(c *models.Contract, patch ContractPatch) (schedule.Params, float64, error) {
	p := c.Params()

	if patch.StartDate != nil {
		start, err := parseRequiredDate("start_date", *patch.StartDate)
		if err != nil {
			return p, 0, err
		}
		p.StartDate = start
	}
	if patch.PeriodType != nil {
		t := schedule.PeriodType(strings.ToLower(*patch.PeriodType))
		if !t.Valid() {
			return p, 0, invalid("period_type", "must be weekly or monthly")
		}
		if t != p.PeriodType {
			p.DayOfWeek, p.DayOfMonth = nil, nil
		}
		p.PeriodType = t
	}
	if patch.DayOfWeek != nil {
		p.DayOfWeek = patch.DayOfWeek
	}
	if patch.DayOfMonth != nil {
		p.DayOfMonth = patch.DayOfMonth
	}

	switch {
	case patch.PeriodCount != nil:
		p.PeriodCount = *patch.PeriodCount
	case patch.EndDate != nil:
		end, err := parseRequiredDate("end_date", *patch.EndDate)
		if err != nil {
			return p, 0, err
		}
		p.PeriodCount = schedule.PeriodsBetween(p.StartDate, end, p.PeriodType)
	}
	if p.PeriodCount <= 0 {
		return p, 0, invalid("period_count", "must be greater than 0")
	}

	total := c.TotalAmount
	switch {
	case patch.TotalAmount != nil || patch.PeriodAmount != nil:
		count := p.PeriodCount
		q, err := schedule.Reconcile(schedule.QuoteInput{
			StartDate:    p.StartDate,
			PeriodType:   p.PeriodType,
			TotalAmount:  patch.TotalAmount,
			PeriodAmount: patch.PeriodAmount,
			PeriodCount:  &count,
		})
		if err != nil {
			return p, 0, classify(err)
		}
		p.PeriodAmount = q.PeriodAmount
		total = q.TotalAmount
	case p.PeriodCount != c.PeriodCount:
		total = schedule.TotalFor(p.PeriodAmount, p.PeriodCount)
	}

	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return p, 0, classify(err)
	}
	return p, total, nil
}

// applyPlan writes a regeneration plan: pending charges are rewritten in
// place, new indexes are inserted and removed ones deleted
func applyPlan(ctx context.Context, tx *repository.Repositories, c *models.Contract, plan schedule.Plan) error {
	existing := make(map[int]*models.Charge, len(c.Charges))
	for i := range c.Charges {
		existing[c.Charges[i].PeriodIndex] = &c.Charges[i]
	}

	var created []models.Charge
	for _, line := range plan.Lines {
		charge, ok := existing[line.Index]
		if !ok {
			fresh := models.Charge{ContractID: c.ID}
			fresh.ApplyLine(line)
			created = append(created, fresh)
			continue
		}
		if charge.IsPaid() {
			continue
		}
		if charge.ChargeDate.Equal(line.Date) && charge.Amount == line.Amount {
			continue
		}
		charge.ApplyLine(line)
		if err := tx.Charge.Update(ctx, charge); err != nil {
			return fmt.Errorf("failed to update charge %d: %w", charge.ID, err)
		}
	}

	removed := make([]uint, 0, len(plan.Removed))
	for _, line := range plan.Removed {
		if charge, ok := existing[line.Index]; ok {
			removed = append(removed, charge.ID)
		}
	}
	if err := tx.Charge.DeleteByIDs(ctx, removed); err != nil {
		return fmt.Errorf("failed to delete charges: %w", err)
	}
	if err := tx.Charge.CreateBatch(ctx, created); err != nil {
		return fmt.Errorf("failed to create charges: %w", err)
	}
	return nil
}

// syncChildren copies the descriptive fields of an anchor onto the expenses
// recorded for its paid charges
func syncChildren(ctx context.Context, tx *repository.Repositories, anchor *models.Expense) error {
	children, err := tx.Expense.FindChildren(ctx, anchor.ID)
	if err != nil {
		return fmt.Errorf("failed to load installment expenses: %w", err)
	}
	for i := range children {
		child := &children[i]
		if child.Type == anchor.Type && child.Category == anchor.Category && child.Currency == anchor.Currency {
			continue
		}
		child.Type = anchor.Type
		child.Category = anchor.Category
		child.Currency = anchor.Currency
		if err := tx.Expense.Update(ctx, child); err != nil {
			return fmt.Errorf("failed to update installment expense %d: %w", child.ID, err)
		}
	}
	return nil
}

// UpdateCharge edits the amount or status of one period without
// regenerating the rest
func (s *ContractService) UpdateCharge(ctx context.Context, contractID, chargeID uint, patch ChargePatch) (*models.Charge, error) {
	if patch.Amount != nil && *patch.Amount <= 0 {
		return nil, invalid("amount", "must be greater than 0")
	}
	var target string
	if patch.Status != nil {
		target = strings.ToLower(strings.TrimSpace(*patch.Status))
		if target != models.ChargeStatusPaid && target != models.ChargeStatusPending {
			return nil, invalid("status", "must be paid or pending")
		}
	}

	var charge *models.Charge
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		var err error
		charge, err = findCharge(ctx, tx, contractID, chargeID)
		if err != nil {
			return err
		}
		contract, err := tx.Contract.FindByID(ctx, contractID)
		if err != nil {
			return notFound(err, "contract", contractID)
		}
		anchor, err := tx.Expense.FindByID(ctx, contract.ExpenseID)
		if err != nil {
			return notFound(err, "expense", contract.ExpenseID)
		}

		amountChanged := patch.Amount != nil && *patch.Amount != charge.Amount
		if patch.Amount != nil {
			charge.Amount = *patch.Amount
		}

		switch {
		case target == models.ChargeStatusPaid && !charge.IsPaid():
			return s.pay(ctx, tx, anchor, charge)
		case target == models.ChargeStatusPending && charge.IsPaid():
			return s.revert(ctx, tx, charge)
		}

		if amountChanged && charge.IsPaid() && charge.ExpenseID != nil {
			child, err := tx.Expense.FindByID(ctx, *charge.ExpenseID)
			if err != nil {
				return notFound(err, "expense", *charge.ExpenseID)
			}
			child.Amount = charge.Amount
			if err := tx.Expense.Update(ctx, child); err != nil {
				return fmt.Errorf("failed to update installment expense: %w", err)
			}
		}
		if err := tx.Charge.Update(ctx, charge); err != nil {
			return fmt.Errorf("failed to update charge: %w", err)
		}
		s.auditSvc.Record(ctx, tx.Audit, models.AuditActionUpdate, "Charge", charge.ID,
			fmt.Sprintf("amount %.2f", charge.Amount))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.changed()
	return charge, nil
}

// DeleteCharge always fails: charges belong to their contract and change
// only through it
func (s *ContractService) DeleteCharge(ctx context.Context, contractID, chargeID uint) error {
	if _, err := findCharge(ctx, s.repos, contractID, chargeID); err != nil {
		return err
	}
	return inconsistent("charge %d cannot be deleted on its own; edit the contract period count instead", chargeID)
}

func findCharge(ctx context.Context, repos *repository.Repositories, contractID, chargeID uint) (*models.Charge, error) {
	charge, err := repos.Charge.FindByID(ctx, chargeID)
	if err != nil {
		return nil, notFound(err, "charge", chargeID)
	}
	if charge.ContractID != contractID {
		return nil, &NotFoundError{Entity: "charge", ID: chargeID}
	}
	return charge, nil
}

// pay settles a charge and records the matching installment expense
func (s *ContractService) pay(ctx context.Context, tx *repository.Repositories, anchor *models.Expense, charge *models.Charge) error {
	if err := statemachine.NewChargeFSM(charge).Pay(ctx); err != nil {
		return classify(err)
	}

	n := charge.InstallmentNumber()
	parentID := anchor.ID
	child := &models.Expense{
		Type:              anchor.Type,
		Category:          anchor.Category,
		Amount:            charge.Amount,
		Currency:          anchor.Currency,
		Date:              charge.ChargeDate,
		ParentExpenseID:   &parentID,
		InstallmentNumber: &n,
	}
	if err := tx.Expense.Create(ctx, child); err != nil {
		return fmt.Errorf("failed to record installment expense: %w", err)
	}

	paidAt := s.now()
	charge.ExpenseID = &child.ID
	charge.PaidAt = &paidAt
	if err := tx.Charge.Update(ctx, charge); err != nil {
		return fmt.Errorf("failed to settle charge: %w", err)
	}
	s.auditSvc.Record(ctx, tx.Audit, models.AuditActionSettle, "Charge", charge.ID,
		fmt.Sprintf("installment %d paid %.2f", n, charge.Amount))
	return nil
}

// revert moves a paid charge back to pending and drops its installment expense
func (s *ContractService) revert(ctx context.Context, tx *repository.Repositories, charge *models.Charge) error {
	if err := statemachine.NewChargeFSM(charge).Revert(ctx); err != nil {
		return classify(err)
	}
	if charge.ExpenseID != nil {
		if err := tx.Expense.Delete(ctx, *charge.ExpenseID); err != nil {
			return fmt.Errorf("failed to delete installment expense: %w", err)
		}
	}
	charge.ExpenseID = nil
	charge.PaidAt = nil
	if err := tx.Charge.Update(ctx, charge); err != nil {
		return fmt.Errorf("failed to revert charge: %w", err)
	}
	s.auditSvc.Record(ctx, tx.Audit, models.AuditActionUpdate, "Charge", charge.ID, "reverted to pending")
	return nil
}

// Delete removes a contract with its charges, their installment expenses and
// the anchor
func (s *ContractService) Delete(ctx context.Context, id uint) error {
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		contract, err := tx.Contract.FindByID(ctx, id)
		if err != nil {
			return notFound(err, "contract", id)
		}
		if err := statemachine.NewContractFSM(contract).Close(ctx); err != nil {
			return classify(err)
		}

		if err := tx.Expense.DeleteByParent(ctx, contract.ExpenseID); err != nil {
			return fmt.Errorf("failed to delete installment expenses: %w", err)
		}
		if err := tx.Charge.DeleteByContract(ctx, contract.ID); err != nil {
			return fmt.Errorf("failed to delete charges: %w", err)
		}
		if err := tx.Contract.Delete(ctx, contract.ID); err != nil {
			return fmt.Errorf("failed to delete contract: %w", err)
		}
		if err := tx.Expense.Delete(ctx, contract.ExpenseID); err != nil {
			return fmt.Errorf("failed to delete anchor expense: %w", err)
		}

		s.auditSvc.Record(ctx, tx.Audit, models.AuditActionDelete, "Contract", contract.ID, "")
		return nil
	})
	if err != nil {
		return err
	}
	s.publisher.changed()
	return nil
}

// SettleDue pays every pending charge of an active contract dated on or
// before asOf. It returns the number of charges settled.
func (s *ContractService) SettleDue(ctx context.Context, asOf time.Time) (int, error) {
	settled := 0
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		due, err := tx.Charge.FindDuePending(ctx, schedule.DateOnly(asOf))
		if err != nil {
			return fmt.Errorf("failed to load due charges: %w", err)
		}

		anchors := make(map[uint]*models.Expense)
		for i := range due {
			charge := &due[i]
			anchor, ok := anchors[charge.ContractID]
			if !ok {
				contract, err := tx.Contract.FindByIDWithDetails(ctx, charge.ContractID)
				if err != nil {
					return notFound(err, "contract", charge.ContractID)
				}
				if contract.Expense == nil {
					return inconsistent("contract %d has no anchor expense", contract.ID)
				}
				anchor = contract.Expense
				anchors[charge.ContractID] = anchor
			}
			if err := s.pay(ctx, tx, anchor, charge); err != nil {
				return err
			}
			settled++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if settled > 0 {
		logger.Info("settled due charges", slog.Int("count", settled), slog.String("as_of", models.FormatDate(asOf)))
		s.publisher.changed()
	}
	return settled, nil
}

// Get retrieves a contract with its anchor and charges
func (s *ContractService) Get(ctx context.Context, id uint) (*models.Contract, error) {
	contract, err := s.repos.Contract.FindByIDWithDetails(ctx, id)
	if err != nil {
		return nil, notFound(err, "contract", id)
	}
	return contract, nil
}

// List retrieves contracts with filters
func (s *ContractService) List(ctx context.Context, query *repository.ListQuery) ([]models.Contract, int64, error) {
	return s.repos.Contract.List(ctx, query)
}
