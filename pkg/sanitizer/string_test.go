package sanitizer

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Valley of Flowers  ",
			want:  "Valley of Flowers",
		},
		{
			name:  "multiple spaces between words",
			input: "Valley    of    Flowers",
			want:  "Valley of Flowers",
		},
		{
			name:  "tabs and newlines",
			input: "Har\tKi\nDun",
			want:  "Har Ki Dun",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve case and punctuation",
			input: " Nanda Devi's Basecamp! ",
			want:  "Nanda Devi's Basecamp!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeName(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercased",
			input: "Trekking",
			want:  "trekking",
		},
		{
			name:  "trimmed and lowercased",
			input: "  Hill Station  ",
			want:  "hill station",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCategory(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "http upgraded to https",
			input: "http://cdn.example.com/hero.jpg",
			want:  "https://cdn.example.com/hero.jpg",
		},
		{
			name:  "domain lowercased",
			input: "CDN.Example.COM/Hero.jpg",
			want:  "https://cdn.example.com/Hero.jpg",
		},
		{
			name:  "trailing slash removed",
			input: "https://cdn.example.com/images/",
			want:  "https://cdn.example.com/images",
		},
		{
			name:  "relative media path untouched",
			input: "/media/3f2a.jpg",
			want:  "/media/3f2a.jpg",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeURL(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
