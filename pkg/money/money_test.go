package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{19.99 * 3, 59.97},
		{2.675, 2.68},   // half rounds away from zero
		{-2.675, -2.68}, // also for negatives
		{1.005, 1.01},
		{10.0, 10.0},
		{0.004999, 0.0},
		{24.0 - 10.0, 14.0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Round2(tc.in), "Round2(%v)", tc.in)
	}
}
