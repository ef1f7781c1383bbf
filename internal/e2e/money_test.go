package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBaht(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  float64
		fails bool
	}{
		{name: "plain", in: "฿199", want: 199},
		{name: "thousands separator", in: "฿1,290", want: 1290},
		{name: "fractional", in: "฿199.50", want: 199.5},
		{name: "surrounding text", in: "ยอดรวม ฿2,450 บาท", want: 2450},
		{name: "no digits", in: "ฟรี!", fails: true},
		{name: "empty", in: "", fails: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseBaht(tt.in)
			if tt.fails {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatBaht(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{name: "small", in: 50, want: "฿50"},
		{name: "three digits", in: 199, want: "฿199"},
		{name: "grouped", in: 1290, want: "฿1,290"},
		{name: "two groups", in: 1234567, want: "฿1,234,567"},
		{name: "fractional", in: 199.5, want: "฿199.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatBaht(tt.in))
		})
	}
}

func TestFormatBahtRoundTripsParse(t *testing.T) {
	for _, amount := range []float64{50, 199.5, 1290, 999999} {
		got, err := parseBaht(formatBaht(amount))
		require.NoError(t, err)
		assert.Equal(t, amount, got)
	}
}

func TestDisplayedGrandTotal(t *testing.T) {
	assert.Equal(t, float64(1049), displayedGrandTotal(999), "delivery fee below threshold")
	assert.Equal(t, float64(1000), displayedGrandTotal(1000), "free shipping at threshold")
	assert.Equal(t, float64(2450), displayedGrandTotal(2450), "free shipping above threshold")
}
