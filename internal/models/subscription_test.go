package models

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"entertainment", CategoryEntertainment},
		{"productivity", CategoryProductivity},
		{"utilities", CategoryUtilities},
		{"other", CategoryOther},
		{"", CategoryOther},
		{"snacks", CategoryOther},
		{"Entertainment", CategoryOther},
	}

	for _, tt := range tests {
		if got := ParseCategory(tt.in); got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSubscriptionValid(t *testing.T) {
	tests := []struct {
		name string
		sub  Subscription
		want bool
	}{
		{"ok", Subscription{Name: "Netflix", Price: 15.99}, true},
		{"empty name", Subscription{Name: "", Price: 15.99}, false},
		{"zero price", Subscription{Name: "Netflix", Price: 0}, false},
		{"negative price", Subscription{Name: "Netflix", Price: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sub.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
