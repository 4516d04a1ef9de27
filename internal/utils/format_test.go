package utils

import (
	"testing"
)

func TestFormatTopicsInline(t *testing.T) {
	tests := []struct {
		name        string
		suggestions []string
		want        string
	}{
		{
			name:        "empty list",
			suggestions: []string{},
			want:        "",
		},
		{
			name:        "single topic",
			suggestions: []string{"Casa Equipetrol"},
			want:        "Casa Equipetrol",
		},
		{
			name:        "two topics joined with y",
			suggestions: []string{"Casa Equipetrol", "Depto Centro"},
			want:        "Casa Equipetrol y Depto Centro",
		},
		{
			name:        "three topics",
			suggestions: []string{"Casa Equipetrol", "Depto Centro", "Terreno Urubó"},
			want:        "Casa Equipetrol, Depto Centro y Terreno Urubó",
		},
		{
			name:        "blank entries are skipped",
			suggestions: []string{"  ", "Casa Equipetrol", ""},
			want:        "Casa Equipetrol",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTopicsInline(tt.suggestions); got != tt.want {
				t.Errorf("FormatTopicsInline(%v) = %q, want %q", tt.suggestions, got, tt.want)
			}
		})
	}
}
