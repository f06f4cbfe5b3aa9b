package services

import (
	"strings"
	"time"

	"github.com/chenmq77/duckiki/internal/models"
)

func parseRequiredDate(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, invalid(field, "is required")
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return time.Time{}, invalid(field, "must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	d, err := parseRequiredDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// trimmed drops surrounding spaces; a blank string becomes nil
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func lowered(s *string) *string {
	v := trimmed(s)
	if v == nil {
		return nil
	}
	l := strings.ToLower(*v)
	return &l
}
