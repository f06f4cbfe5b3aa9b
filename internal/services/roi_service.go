package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/chenmq77/duckiki/internal/catalog"
	"github.com/chenmq77/duckiki/internal/models"
	"github.com/chenmq77/duckiki/internal/repository"
	"github.com/chenmq77/duckiki/internal/roi"
	"gorm.io/gorm"
)

// MarketPrice is the response of the market reference price endpoints
type MarketPrice struct {
	Price float64 `json:"price"`
}

type ROIService struct {
	repos        *repository.Repositories
	catalog      *catalog.Catalog
	defaultPrice float64
	auditSvc     *AuditService
	publisher    *publisher
}

func NewROIService(repos *repository.Repositories, cat *catalog.Catalog, defaultPrice float64, auditSvc *AuditService, pub *publisher) *ROIService {
	if defaultPrice <= 0 {
		defaultPrice = cat.MarketReferencePrice
	}
	return &ROIService{
		repos:        repos,
		catalog:      cat,
		defaultPrice: defaultPrice,
		auditSvc:     auditSvc,
		publisher:    pub,
	}
}

// Summary folds every flat expense, contract charge and activity weight into
// the paid and planned ROI blocks, rounded for display
func (s *ROIService) Summary(ctx context.Context) (*roi.Snapshot, error) {
	price, err := s.MarketPrice(ctx)
	if err != nil {
		return nil, err
	}

	flat, err := s.repos.Expense.FindFlat(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	contracts, err := s.repos.Contract.FindAllWithDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load contracts: %w", err)
	}
	weights, err := s.repos.Activity.Weights(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity weights: %w", err)
	}

	in := roi.Input{
		Expenses:             make([]roi.Amount, 0, len(flat)),
		Weights:              weights,
		MarketReferencePrice: price,
		BaseCurrency:         s.catalog.BaseCurrency,
	}
	for _, e := range flat {
		in.Expenses = append(in.Expenses, roi.Amount{Value: e.Amount, Currency: e.Currency})
	}
	for _, c := range contracts {
		currency := ""
		if c.Expense != nil {
			currency = c.Expense.Currency
		}
		for _, ch := range c.Charges {
			in.Charges = append(in.Charges, roi.Charge{
				Amount: roi.Amount{Value: ch.Amount, Currency: currency},
				Paid:   ch.IsPaid(),
			})
		}
	}

	snap, err := roi.Summarize(in, s.catalog)
	if err != nil {
		return nil, classify(err)
	}
	rounded := snap.Rounded()
	return &rounded, nil
}

// MarketPrice returns the stored market reference price, or the configured
// default when none was set
func (s *ROIService) MarketPrice(ctx context.Context) (float64, error) {
	setting, err := s.repos.Setting.Get(ctx, models.SettingMarketReferencePrice)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.defaultPrice, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load market reference price: %w", err)
	}
	price, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil || price <= 0 {
		return s.defaultPrice, nil
	}
	return price, nil
}

// SetMarketPrice stores a new market reference price, last write wins
func (s *ROIService) SetMarketPrice(ctx context.Context, price float64) (*MarketPrice, error) {
	if price <= 0 {
		return nil, invalid("price", "must be greater than 0")
	}
	value := strconv.FormatFloat(price, 'f', -1, 64)
	if err := s.repos.Setting.Set(ctx, models.SettingMarketReferencePrice, value); err != nil {
		return nil, fmt.Errorf("failed to save market reference price: %w", err)
	}
	s.auditSvc.Log(ctx, models.AuditActionUpdate, "Setting", 0, models.SettingMarketReferencePrice+"="+value)
	s.publisher.changed()
	return &MarketPrice{Price: price}, nil
}
