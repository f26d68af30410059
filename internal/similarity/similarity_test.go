package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{
			name: "identical strings",
			a:    "Zomato",
			b:    "Zomato",
			want: 1.0,
		},
		{
			name: "case and whitespace normalized",
			a:    "  AMAZON ",
			b:    "amazon",
			want: 1.0,
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			want: 1.0,
		},
		{
			name: "one empty",
			a:    "uber",
			b:    "",
			want: 0.0,
		},
		{
			name: "single substitution",
			a:    "swiggy",
			b:    "swiggi",
			want: 5.0 / 6.0,
		},
		{
			name: "suffix difference",
			a:    "amazon",
			b:    "amazon.in",
			want: 6.0 / 9.0,
		},
		{
			name: "completely different",
			a:    "ab",
			b:    "xy",
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.a, tt.b), 1e-9)
		})
	}
}

func TestScore_Symmetry(t *testing.T) {
	pairs := [][2]string{
		{"Amazon", "AMAZON.IN"},
		{"Zomato Food", "zomato"},
		{"", "phonepe"},
		{"uber trip", "ola ride"},
	}

	for _, p := range pairs {
		assert.Equal(t, Score(p[0], p[1]), Score(p[1], p[0]),
			"similarity must be symmetric for %q vs %q", p[0], p[1])
	}
}

func TestScore_Identity(t *testing.T) {
	for _, s := range []string{"", "a", "Zomato", "State Bank of India", "₹500"} {
		assert.Equal(t, 1.0, Score(s, s))
	}
}
