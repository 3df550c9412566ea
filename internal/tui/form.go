package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/subtrack/internal/constants"
	"github.com/julianstephens/subtrack/internal/models"
	"github.com/julianstephens/subtrack/internal/validation"
)

func newRecordForm(fm *RecordFormModel) *huh.Form {
	categoryOptions := make([]huh.Option[string], len(models.Categories))
	for i, cat := range models.Categories {
		categoryOptions[i] = huh.NewOption(string(cat), string(cat))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Monthly price").
				Value(&fm.Price).
				Validate(func(s string) error {
					p, err := strconv.ParseFloat(s, 64)
					if err != nil {
						return fmt.Errorf("price must be a number")
					}
					if p <= 0 {
						return fmt.Errorf("price must be greater than zero")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions...).
				Value(&fm.Category),
			huh.NewInput().
				Title("Next renewal (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(func(s string) error {
					if _, err := time.Parse(constants.DateLayout, s); err != nil {
						return fmt.Errorf("date must be YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewInput().
				Title("Start date (YYYY-MM-DD, optional)").
				Value(&fm.StartDate).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := time.Parse(constants.DateLayout, s); err != nil {
						return fmt.Errorf("date must be YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewInput().
				Title("Notes (optional)").
				Value(&fm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

func (fm *RecordFormModel) input() validation.RecordInput {
	price, _ := strconv.ParseFloat(fm.Price, 64)
	return validation.RecordInput{
		Name:      fm.Name,
		Price:     price,
		Category:  fm.Category,
		Date:      fm.Date,
		StartDate: fm.StartDate,
		Notes:     fm.Notes,
	}
}

func formFromSubscription(sub models.Subscription) *RecordFormModel {
	return &RecordFormModel{
		Name:      sub.Name,
		Price:     strconv.FormatFloat(sub.Price, 'f', -1, 64),
		Category:  string(sub.Category),
		Date:      sub.Date,
		StartDate: sub.StartDate,
		Notes:     sub.Notes,
	}
}
