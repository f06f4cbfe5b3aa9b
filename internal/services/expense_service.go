package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/chenmq77/duckiki/internal/catalog"
	"github.com/chenmq77/duckiki/internal/models"
	"github.com/chenmq77/duckiki/internal/repository"
)

// ExpenseInput is the payload for a flat, one-off expense
type ExpenseInput struct {
	Type     string  `json:"type" binding:"required"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount" binding:"required"`
	Currency string  `json:"currency"`
	Date     string  `json:"date" binding:"required"`
	Note     *string `json:"note"`
}

// ExpensePatch holds the fields to change on a flat expense
type ExpensePatch struct {
	Type     *string  `json:"type"`
	Category *string  `json:"category"`
	Amount   *float64 `json:"amount"`
	Currency *string  `json:"currency"`
	Date     *string  `json:"date"`
	Note     *string  `json:"note"`
}

type ExpenseService struct {
	repos           *repository.Repositories
	catalog         *catalog.Catalog
	defaultCurrency string
	auditSvc        *AuditService
	publisher       *publisher
}

func NewExpenseService(repos *repository.Repositories, cat *catalog.Catalog, defaultCurrency string, auditSvc *AuditService, pub *publisher) *ExpenseService {
	return &ExpenseService{
		repos:           repos,
		catalog:         cat,
		defaultCurrency: defaultCurrency,
		auditSvc:        auditSvc,
		publisher:       pub,
	}
}

// Create stores a flat expense
func (s *ExpenseService) Create(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	kind, err := parseExpenseKind(in.Type)
	if err != nil {
		return nil, err
	}
	if in.Amount <= 0 {
		return nil, invalid("amount", "must be greater than 0")
	}
	currency, err := s.currency(in.Currency)
	if err != nil {
		return nil, err
	}
	date, err := parseRequiredDate("date", in.Date)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Type:     string(kind),
		Category: strings.TrimSpace(in.Category),
		Amount:   in.Amount,
		Currency: currency,
		Date:     date,
		Note:     in.Note,
	}
	if err := s.repos.Expense.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.auditSvc.Log(ctx, models.AuditActionCreate, "Expense", expense.ID,
		fmt.Sprintf("%s %.2f %s", expense.Type, expense.Amount, expense.Currency))
	s.publisher.changed()

	return expense, nil
}

// Get retrieves an expense with its contract summary or parent
func (s *ExpenseService) Get(ctx context.Context, id uint) (*models.Expense, error) {
	expense, err := s.repos.Expense.FindByIDWithDetails(ctx, id)
	if err != nil {
		return nil, notFound(err, "expense", id)
	}
	return expense, nil
}

// List retrieves expenses with filters
func (s *ExpenseService) List(ctx context.Context, query *repository.ListQuery) ([]models.Expense, int64, error) {
	return s.repos.Expense.List(ctx, query)
}

// Update changes a flat expense. Anchors are edited through their contract
// and children through their charge.
func (s *ExpenseService) Update(ctx context.Context, id uint, patch ExpensePatch) (*models.Expense, error) {
	expense, err := s.repos.Expense.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "expense", id)
	}
	if err := requireFlat(expense); err != nil {
		return nil, err
	}

	if patch.Type != nil {
		kind, err := parseExpenseKind(*patch.Type)
		if err != nil {
			return nil, err
		}
		expense.Type = string(kind)
	}
	if patch.Category != nil {
		expense.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Amount != nil {
		if *patch.Amount <= 0 {
			return nil, invalid("amount", "must be greater than 0")
		}
		expense.Amount = *patch.Amount
	}
	if patch.Currency != nil {
		currency, err := s.currency(*patch.Currency)
		if err != nil {
			return nil, err
		}
		expense.Currency = currency
	}
	if patch.Date != nil {
		date, err := parseRequiredDate("date", *patch.Date)
		if err != nil {
			return nil, err
		}
		expense.Date = date
	}
	if patch.Note != nil {
		expense.Note = patch.Note
	}

	if err := s.repos.Expense.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	s.auditSvc.Log(ctx, models.AuditActionUpdate, "Expense", expense.ID,
		fmt.Sprintf("%s %.2f %s", expense.Type, expense.Amount, expense.Currency))
	s.publisher.changed()

	return expense, nil
}

// Delete removes a flat expense
func (s *ExpenseService) Delete(ctx context.Context, id uint) error {
	expense, err := s.repos.Expense.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "expense", id)
	}
	if err := requireFlat(expense); err != nil {
		return err
	}
	if err := s.repos.Expense.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	s.auditSvc.Log(ctx, models.AuditActionDelete, "Expense", id, "")
	s.publisher.changed()
	return nil
}

// currency normalizes a currency code and checks it has a conversion rate
func (s *ExpenseService) currency(code string) (string, error) {
	return resolveCurrency(s.catalog, code, s.defaultCurrency)
}

func resolveCurrency(cat *catalog.Catalog, code, fallback string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		c = fallback
	}
	if _, ok := cat.Rate(c); !ok {
		return "", invalid("currency", "unsupported currency %q", c)
	}
	return c, nil
}

func parseExpenseKind(s string) (catalog.ExpenseKind, error) {
	kind, ok := catalog.ParseExpenseKind(s)
	if !ok {
		return "", invalid("type", "must be one of membership, equipment, other")
	}
	return kind, nil
}

func requireFlat(e *models.Expense) error {
	switch {
	case e.IsAnchor():
		return inconsistent("expense %d is a contract anchor; edit or delete the contract instead", e.ID)
	case e.IsChild():
		return inconsistent("expense %d records a paid charge; change the charge status instead", e.ID)
	}
	return nil
}
