// Package catalog holds the static activity, expense and currency configuration.
//
// A Catalog is loaded once at process start and passed explicitly to the
// components that need it. It is never mutated after Load returns.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ActivityKind identifies a supported activity type.
type ActivityKind string

const (
	ActivitySwimming         ActivityKind = "swimming"
	ActivityGroupClass       ActivityKind = "group_class"
	ActivityPersonalTraining ActivityKind = "personal_training"
)

// ActivityKinds lists every kind the service understands.
var ActivityKinds = []ActivityKind{ActivitySwimming, ActivityGroupClass, ActivityPersonalTraining}

// ParseActivityKind normalizes s and checks it against the known kinds.
func ParseActivityKind(s string) (ActivityKind, bool) {
	k := ActivityKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ActivityKinds {
		if k == known {
			return k, true
		}
	}
	return k, false
}

// ExpenseKind identifies an expense type.
type ExpenseKind string

const (
	ExpenseMembership ExpenseKind = "membership"
	ExpenseEquipment  ExpenseKind = "equipment"
	ExpenseOther      ExpenseKind = "other"
)

// ExpenseKinds lists every expense kind.
var ExpenseKinds = []ExpenseKind{ExpenseMembership, ExpenseEquipment, ExpenseOther}

// ParseExpenseKind normalizes s. "others" is accepted as an alias of "other".
func ParseExpenseKind(s string) (ExpenseKind, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "others" {
		v = string(ExpenseOther)
	}
	k := ExpenseKind(v)
	for _, known := range ExpenseKinds {
		if k == known {
			return k, true
		}
	}
	return k, false
}

// WeightParams are the Gaussian parameters of a dynamically weighted activity.
type WeightParams struct {
	Baseline float64 `yaml:"baseline" json:"baseline"`
	Sigma    float64 `yaml:"sigma" json:"sigma"`
}

// ActivityType is one catalog entry.
type ActivityType struct {
	Kind           ActivityKind       `yaml:"-" json:"kind"`
	Label          string             `yaml:"label" json:"label"`
	BaseWeight     float64            `yaml:"base_weight" json:"base_weight"`
	DynamicWeight  bool               `yaml:"dynamic_weight" json:"dynamic_weight"`
	Weight         WeightParams       `yaml:"weight" json:"weight"`
	Intensity      map[string]float64 `yaml:"intensity" json:"intensity,omitempty"`
	ReferencePrice float64            `yaml:"reference_price" json:"reference_price"`
	Fields         []string           `yaml:"fields" json:"fields"`
}

// IntensityLabels returns the sorted intensity labels of the type.
func (t ActivityType) IntensityLabels() []string {
	labels := make([]string, 0, len(t.Intensity))
	for l := range t.Intensity {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// ExpenseType describes an expense kind for the UI.
type ExpenseType struct {
	Kind       ExpenseKind `yaml:"-" json:"kind"`
	Label      string      `yaml:"label" json:"label"`
	Categories []string    `yaml:"categories" json:"categories"`
}

// Catalog is the immutable configuration of the valuation and ROI engines.
type Catalog struct {
	MarketReferencePrice float64                       `yaml:"market_reference_price" json:"market_reference_price"`
	BaseCurrency         string                        `yaml:"base_currency" json:"base_currency"`
	ActivityTypes        map[ActivityKind]ActivityType `yaml:"activity_types" json:"activity_types"`
	ExpenseTypes         map[ExpenseKind]ExpenseType   `yaml:"expense_types" json:"expense_types"`
	Rates                map[string]float64            `yaml:"rates" json:"rates"`
}

// Activity returns the catalog entry for kind.
func (c *Catalog) Activity(kind ActivityKind) (ActivityType, bool) {
	t, ok := c.ActivityTypes[kind]
	return t, ok
}

// Rate returns the conversion rate of currency into the base currency.
func (c *Catalog) Rate(currency string) (float64, bool) {
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if cur == "" || cur == c.BaseCurrency {
		return 1, true
	}
	r, ok := c.Rates[cur]
	return r, ok
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from path, or returns the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	c.BaseCurrency = strings.ToUpper(strings.TrimSpace(c.BaseCurrency))
	for kind, t := range c.ActivityTypes {
		t.Kind = kind
		c.ActivityTypes[kind] = t
	}
	for kind, t := range c.ExpenseTypes {
		t.Kind = kind
		c.ExpenseTypes[kind] = t
	}
	rates := make(map[string]float64, len(c.Rates))
	for cur, r := range c.Rates {
		rates[strings.ToUpper(cur)] = r
	}
	c.Rates = rates
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	var errs []error
	if c.MarketReferencePrice <= 0 {
		errs = append(errs, errors.New("market_reference_price must be positive"))
	}
	if c.BaseCurrency == "" {
		errs = append(errs, errors.New("base_currency is required"))
	}
	for kind, t := range c.ActivityTypes {
		if _, ok := ParseActivityKind(string(kind)); !ok {
			errs = append(errs, fmt.Errorf("activity type %q is not supported", kind))
		}
		if t.DynamicWeight && (t.Weight.Baseline <= 0 || t.Weight.Sigma <= 0) {
			errs = append(errs, fmt.Errorf("activity type %q: dynamic weight needs positive baseline and sigma", kind))
		}
		if !t.DynamicWeight && t.BaseWeight < 0 {
			errs = append(errs, fmt.Errorf("activity type %q: base_weight must not be negative", kind))
		}
		for label, m := range t.Intensity {
			if m <= 0 {
				errs = append(errs, fmt.Errorf("activity type %q: intensity %q multiplier must be positive", kind, label))
			}
		}
	}
	for kind := range c.ExpenseTypes {
		if _, ok := ParseExpenseKind(string(kind)); !ok {
			errs = append(errs, fmt.Errorf("expense type %q is not supported", kind))
		}
	}
	for cur, r := range c.Rates {
		if r <= 0 {
			errs = append(errs, fmt.Errorf("rate for %s must be positive", cur))
		}
	}
	return errors.Join(errs...)
}
