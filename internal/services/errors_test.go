package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/chenmq77/duckiki/internal/catalog"
	"github.com/chenmq77/duckiki/internal/roi"
	"github.com/chenmq77/duckiki/internal/schedule"
	"github.com/chenmq77/duckiki/internal/statemachine"
	"github.com/chenmq77/duckiki/internal/weighting"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"schedule param", &schedule.ParamError{Field: "period_count", Message: "must be greater than 0"}, ErrValidation},
		{"schedule consistency", &schedule.ConsistencyError{Index: 1, Message: "paid charge would be dropped"}, ErrConsistency},
		{"payload field", &weighting.FieldError{Field: "distance", Message: "must be greater than 0"}, ErrValidation},
		{"intensity", &weighting.IntensityError{Kind: catalog.ActivityGroupClass, Label: "x"}, ErrValidation},
		{"missing payload", fmt.Errorf("payload: %w", weighting.ErrMissingField), ErrValidation},
		{"currency", &roi.UnknownCurrencyError{Currency: "XYZ"}, ErrValidation},
		{"transition", fmt.Errorf("%w: nope", statemachine.ErrTransition), ErrConsistency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(tt.err), tt.want)
		})
	}

	assert.NoError(t, classify(nil))
	other := errors.New("disk on fire")
	assert.Equal(t, other, classify(other))
}

func TestNotFound(t *testing.T) {
	err := notFound(gorm.ErrRecordNotFound, "contract", 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "contract 7 not found", err.Error())

	other := errors.New("timeout")
	assert.Equal(t, other, notFound(other, "contract", 7))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "amount: must be greater than 0", invalid("amount", "must be greater than %d", 0).Error())
	assert.Equal(t, "bad input", (&ValidationError{Message: "bad input"}).Error())
	assert.Equal(t, "charge 3 is locked", inconsistent("charge %d is locked", 3).Error())
}
