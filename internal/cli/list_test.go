package cli

import (
	"testing"

	"github.com/julianstephens/subtrack/internal/models"
)

func listSub(name string, price float64, cat models.Category, date, notes string) models.Subscription {
	return models.Subscription{ID: name, Name: name, Price: price, Category: cat, Date: date, Notes: notes}
}

func sampleList() []models.Subscription {
	return []models.Subscription{
		listSub("Netflix", 15.99, models.CategoryEntertainment, "2025-07-01", "family plan"),
		listSub("Notion", 8, models.CategoryProductivity, "2025-06-20", ""),
		listSub("Electric", 80, models.CategoryUtilities, "2025-06-25", "monthly bill"),
	}
}

func names(subs []models.Subscription) []string {
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = s.Name
	}
	return out
}

func TestFilterAndSortSearch(t *testing.T) {
	got := filterAndSort(sampleList(), "netflix", "all", "none")
	if len(got) != 1 || got[0].Name != "Netflix" {
		t.Errorf("search netflix = %v", names(got))
	}

	// Notes match too.
	got = filterAndSort(sampleList(), "plan", "all", "none")
	if len(got) != 1 || got[0].Name != "Netflix" {
		t.Errorf("search plan = %v", names(got))
	}

	got = filterAndSort(sampleList(), "nomatch", "all", "none")
	if len(got) != 0 {
		t.Errorf("search nomatch = %v", names(got))
	}
}

func TestFilterAndSortCategory(t *testing.T) {
	got := filterAndSort(sampleList(), "", "productivity", "none")
	if len(got) != 1 || got[0].Name != "Notion" {
		t.Errorf("category productivity = %v", names(got))
	}

	got = filterAndSort(sampleList(), "", "all", "none")
	if len(got) != 3 {
		t.Errorf("category all kept %d records, want 3", len(got))
	}
}

func TestFilterAndSortOrders(t *testing.T) {
	tests := []struct {
		sortBy string
		want   []string
	}{
		{"none", []string{"Netflix", "Notion", "Electric"}},
		{"name", []string{"Electric", "Netflix", "Notion"}},
		{"price", []string{"Electric", "Netflix", "Notion"}},
		{"date", []string{"Notion", "Electric", "Netflix"}},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			got := names(filterAndSort(sampleList(), "", "all", tt.sortBy))
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("sort %s = %v, want %v", tt.sortBy, got, tt.want)
					break
				}
			}
		})
	}
}
