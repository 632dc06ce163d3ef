package sign

import "testing"

func TestRating(t *testing.T) {
	tests := []struct {
		luckIndex string
		want      int
	}{
		{"★★★★★", 5},
		{"★★★★★★", 6},
		{"★", 1},
		{"", 0},
		{"no stars here", 0},
		{"★☆★", 2}, // hollow stars do not count
	}

	for _, tt := range tests {
		r := Record{LuckIndex: tt.luckIndex}
		if got := r.Rating(); got != tt.want {
			t.Errorf("Rating(%q) = %d, want %d", tt.luckIndex, got, tt.want)
		}
	}
}

func TestTheme(t *testing.T) {
	tests := []struct {
		rating int
		want   string
	}{
		{1, "bad"},
		{2, "minor"},
		{3, "fair"},
		{4, "good"},
		{5, "great"},
		{6, "great"}, // 6-star entries share the 5-star theme
		{7, "great"},
		{0, "unknown"},
		{-1, "unknown"},
	}

	for _, tt := range tests {
		if got := Theme(tt.rating); got != tt.want {
			t.Errorf("Theme(%d) = %q, want %q", tt.rating, got, tt.want)
		}
	}
}

func TestCategory(t *testing.T) {
	r := Record{CategorizedFortunes: map[string]string{"career": "steady"}}
	if got := r.Category("career"); got != "steady" {
		t.Errorf("Category(career) = %q", got)
	}
	if got := r.Category("wealth"); got != "" {
		t.Errorf("Category(wealth) = %q, want empty", got)
	}

	// nil map is fine
	var empty Record
	if got := empty.Category("career"); got != "" {
		t.Errorf("Category on zero Record = %q, want empty", got)
	}
}
