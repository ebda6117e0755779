package sanitizer

import (
	"reflect"
	"testing"
)

func TestNormalizeTips(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "trims entries",
			input: []string{"  Carry rain gear  ", "Start early"},
			want:  []string{"Carry rain gear", "Start early"},
		},
		{
			name:  "drops empties and duplicates",
			input: []string{"Start early", "", "  ", "Start early"},
			want:  []string{"Start early"},
		},
		{
			name:  "preserves order of first occurrence",
			input: []string{"B", "A", "B"},
			want:  []string{"B", "A"},
		},
		{
			name:  "nil input",
			input: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTips(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTips(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
