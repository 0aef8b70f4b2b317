package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitkit/split_ledger_app/internal/core/ledger"
)

func TestEvenShares(t *testing.T) {
	tests := []struct {
		name  string
		total string
		n     int
		want  []string
	}{
		{name: "divides exactly", total: "120.00", n: 3, want: []string{"40.00", "40.00", "40.00"}},
		{name: "remainder to first participant", total: "100.00", n: 3, want: []string{"33.34", "33.33", "33.33"}},
		{name: "two way odd cent", total: "0.01", n: 2, want: []string{"0.01", "0.00"}},
		{name: "single participant", total: "55.55", n: 1, want: []string{"55.55"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares := ledger.EvenShares(d(tt.total), tt.n)

			require.Len(t, shares, len(tt.want))
			sum := decimal.Zero
			for i, s := range shares {
				assert.True(t, s.Equal(d(tt.want[i])), "share %d: got %s want %s", i, s, tt.want[i])
				sum = sum.Add(s)
			}
			assert.True(t, sum.Equal(d(tt.total)), "shares sum %s, total %s", sum, tt.total)
		})
	}
}

func TestEvenShares_NoParticipants(t *testing.T) {
	assert.Nil(t, ledger.EvenShares(d("10.00"), 0))
	assert.Nil(t, ledger.EvenShares(d("10.00"), -1))
}

func TestCustomShares(t *testing.T) {
	tests := []struct {
		name        string
		total       string
		percentages []string
		want        []string
	}{
		{
			// $100 split 33.33/33.33/33.34 rounds to exact cents with the
			// total preserved.
			name:        "fractional cent percentages",
			total:       "100.00",
			percentages: []string{"33.33", "33.33", "33.34"},
			want:        []string{"33.33", "33.33", "33.34"},
		},
		{
			name:        "uneven split",
			total:       "80.00",
			percentages: []string{"50", "25", "25"},
			want:        []string{"40.00", "20.00", "20.00"},
		},
		{
			name:        "residue absorbed by last participant",
			total:       "10.00",
			percentages: []string{"33.33", "33.33", "33.34"},
			want:        []string{"3.33", "3.33", "3.34"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			percentages := make([]decimal.Decimal, len(tt.percentages))
			for i, p := range tt.percentages {
				percentages[i] = d(p)
			}

			shares := ledger.CustomShares(d(tt.total), percentages)

			require.Len(t, shares, len(tt.want))
			sum := decimal.Zero
			for i, s := range shares {
				assert.True(t, s.Equal(d(tt.want[i])), "share %d: got %s want %s", i, s, tt.want[i])
				sum = sum.Add(s)
			}
			assert.True(t, sum.Equal(d(tt.total)), "shares sum %s, total %s", sum, tt.total)
		})
	}
}

func TestCustomShares_Empty(t *testing.T) {
	assert.Nil(t, ledger.CustomShares(d("10.00"), nil))
}
