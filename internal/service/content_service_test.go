package service

import "testing"

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"Fiber Rollout Update", "fiber-rollout-update"},
		{"  Gig speeds, now in Bearden!  ", "gig-speeds-now-in-bearden"},
		{"---", ""},
		{"Already-Slugged", "already-slugged"},
		{"UPPER case 123", "upper-case-123"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
