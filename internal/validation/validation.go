// Package validation enforces the record schema at the boundary:
// malformed input is rejected before it ever reaches the store.
package validation

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/subtrack/internal/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RecordInput is what the presentation layer submits when creating or
// updating a subscription. StartDate and Notes are optional.
type RecordInput struct {
	Name      string  `validate:"required"`
	Price     float64 `validate:"required,gt=0"`
	Category  string  `validate:"omitempty,oneof=entertainment productivity utilities other"`
	Date      string  `validate:"required,datetime=2006-01-02"`
	StartDate string  `validate:"omitempty,datetime=2006-01-02"`
	Notes     string
}

// Error carries per-field validation messages.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid record: " + strings.Join(parts, "; ")
}

// CheckRecord validates a record input, returning a *Error describing
// every failing field, or nil when the input is acceptable.
func CheckRecord(in RecordInput) error {
	fields := map[string]string{}

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating record: %w", err)
		}
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = messageFor(fe)
		}
	}

	// validator's gt=0 lets +Inf through and NaN comparisons are
	// always false, so pin down finiteness explicitly.
	if math.IsNaN(in.Price) || math.IsInf(in.Price, 0) {
		fields["price"] = "must be a finite number"
	}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "must not be empty"
	}

	if len(fields) > 0 {
		return &Error{Fields: fields}
	}
	return nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "datetime":
		return "must be a calendar date (YYYY-MM-DD)"
	default:
		return "is invalid"
	}
}

// Normalize turns validated input into a record, defaulting unknown
// categories to "other" and trimming text fields.
func Normalize(in RecordInput) models.Subscription {
	return models.Subscription{
		Name:      strings.TrimSpace(in.Name),
		Price:     in.Price,
		Category:  models.ParseCategory(in.Category),
		Date:      in.Date,
		StartDate: in.StartDate,
		Notes:     strings.TrimSpace(in.Notes),
	}
}
