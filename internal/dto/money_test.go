package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{550, "5.50"},
		{2550, "25.50"},
		{100000, "1000.00"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatCents(c.cents))
	}
}

func TestParseCents(t *testing.T) {
	ok := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"0.05", 5},
		{"5.5", 550},
		{"25.50", 2550},
		{"1000", 100000},
	}
	for _, c := range ok {
		got, err := ParseCents(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}

	bad := []string{"", "abc", "-1", "-0.01", "1.999", "0.001"}
	for _, in := range bad {
		_, err := ParseCents(in)
		assert.Error(t, err, in)
	}
}

func TestMoneyRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 2550, 123456789} {
		parsed, err := ParseCents(FormatCents(cents))
		require.NoError(t, err)
		assert.Equal(t, cents, parsed)
	}
}
