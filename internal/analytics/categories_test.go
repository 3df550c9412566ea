package analytics

import (
	"testing"

	"github.com/julianstephens/subtrack/internal/models"
)

func catSub(name string, price float64, cat models.Category) models.Subscription {
	s := sub(name, price, "2025-07-01")
	s.Category = cat
	return s
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	breakdown := CategoryBreakdown(nil)
	if len(breakdown.Categories) != 0 {
		t.Errorf("empty list should produce no categories, got %d", len(breakdown.Categories))
	}
	if breakdown.AveragePerCategory != 0 {
		t.Errorf("AveragePerCategory = %v, want 0", breakdown.AveragePerCategory)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	subs := []models.Subscription{
		catSub("Netflix", 15.5, models.CategoryEntertainment),
		catSub("Spotify", 9.5, models.CategoryEntertainment),
		catSub("Notion", 8, models.CategoryProductivity),
		catSub("Electric", 80, models.CategoryUtilities),
	}

	breakdown := CategoryBreakdown(subs)
	if len(breakdown.Categories) != 3 {
		t.Fatalf("got %d categories, want 3", len(breakdown.Categories))
	}

	// First-occurrence order.
	if breakdown.Categories[0].Category != models.CategoryEntertainment {
		t.Errorf("first category = %v, want entertainment", breakdown.Categories[0].Category)
	}

	ent := breakdown.Categories[0]
	if ent.Count != 2 {
		t.Errorf("entertainment count = %d, want 2", ent.Count)
	}
	if ent.Total != 25.0 {
		t.Errorf("entertainment total = %v, want 25.0", ent.Total)
	}
	if ent.Average != 25.0/2 {
		t.Errorf("entertainment average = %v, want %v", ent.Average, 25.0/2)
	}
	if len(ent.Members) != 2 || ent.Members[0] != "Netflix" {
		t.Errorf("entertainment members = %v, want [Netflix Spotify]", ent.Members)
	}

	if breakdown.TopSpending != models.CategoryUtilities {
		t.Errorf("TopSpending = %v, want utilities", breakdown.TopSpending)
	}
	if breakdown.MostSubscriptions != models.CategoryEntertainment {
		t.Errorf("MostSubscriptions = %v, want entertainment", breakdown.MostSubscriptions)
	}
	if breakdown.FastestGrowing != models.CategoryUtilities {
		t.Errorf("FastestGrowing = %v, want utilities (highest average)", breakdown.FastestGrowing)
	}

	wantAvg := (25.0 + 8 + 80) / 3
	if breakdown.AveragePerCategory != wantAvg {
		t.Errorf("AveragePerCategory = %v, want %v", breakdown.AveragePerCategory, wantAvg)
	}
}

// An unrecognized category folds into "other" rather than creating a
// bucket of its own.
func TestCategoryBreakdownUnknownCategory(t *testing.T) {
	subs := []models.Subscription{
		{ID: "x", Name: "Mystery", Price: 5, Category: "games", Date: "2025-07-01"},
	}

	breakdown := CategoryBreakdown(subs)
	if len(breakdown.Categories) != 1 {
		t.Fatalf("got %d categories, want 1", len(breakdown.Categories))
	}
	if breakdown.Categories[0].Category != models.CategoryOther {
		t.Errorf("category = %v, want other", breakdown.Categories[0].Category)
	}
}

func TestCategoryBreakdownFirstWinsTies(t *testing.T) {
	subs := []models.Subscription{
		catSub("A", 10, models.CategoryProductivity),
		catSub("B", 10, models.CategoryEntertainment),
	}

	breakdown := CategoryBreakdown(subs)
	if breakdown.TopSpending != models.CategoryProductivity {
		t.Errorf("TopSpending = %v, want productivity (first seen)", breakdown.TopSpending)
	}
}
