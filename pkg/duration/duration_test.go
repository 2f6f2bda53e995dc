package duration

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_FromUnits(t *testing.T) {
	p := NewSystem()

	assert.Equal(t, 1500*time.Millisecond, p.FromSeconds(1.5))
	assert.Equal(t, 250*time.Millisecond, p.FromMilliseconds(250))
	assert.Equal(t, 1500*time.Microsecond, p.FromMilliseconds(1.5))
	assert.Equal(t, 90*time.Second, p.FromMinutes(1.5))
	assert.Equal(t, 30*time.Minute, p.FromHours(0.5))
	assert.Equal(t, 36*time.Hour, p.FromDays(1.5))
	assert.Equal(t, -2*time.Hour, p.FromHours(-2))
	assert.Equal(t, time.Second, p.FromTicks(10_000_000))
	assert.Equal(t, 100*time.Nanosecond, p.FromTicks(1))
}

func TestSystem_FromUnitsSaturate(t *testing.T) {
	p := NewSystem()

	assert.Equal(t, time.Duration(math.MaxInt64), p.FromDays(1e9))
	assert.Equal(t, time.Duration(math.MinInt64), p.FromDays(-1e9))
	assert.Equal(t, time.Duration(math.MaxInt64), p.FromSeconds(math.Inf(1)))
	assert.Equal(t, time.Duration(0), p.FromSeconds(math.NaN()))
	assert.Equal(t, time.Duration(math.MaxInt64), p.FromTicks(math.MaxInt64))
	assert.Equal(t, time.Duration(math.MinInt64), p.FromTicks(math.MinInt64))
}

func TestParse_SpanFormat(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{input: "6", want: 6 * 24 * time.Hour},
		{input: "-3", want: -3 * 24 * time.Hour},
		{input: "6:12", want: 6*time.Hour + 12*time.Minute},
		{input: "06:12:14", want: 6*time.Hour + 12*time.Minute + 14*time.Second},
		{input: "6.12:14:45", want: 6*24*time.Hour + 12*time.Hour + 14*time.Minute + 45*time.Second},
		{input: "1.02:03:04.5", want: 26*time.Hour + 3*time.Minute + 4*time.Second + 500*time.Millisecond},
		{input: "00:00:00.0000001", want: 100 * time.Nanosecond},
		{input: "  -1:00:00  ", want: -time.Hour},
		{input: "0:0:0", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_GoDurationFallback(t *testing.T) {
	got, err := NewSystem().Parse("1h30m")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, got)

	got, err = Parse("250ms")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, got)
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"-",
		"abc",
		"24:00",
		"10:60",
		"10:10:60",
		"1:2:3:4",
		"1:2:3.12345678",
		"1:2.5",
		"x.01:00:00",
		"1..2",
		"12h30x",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidFormat)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, in, pe.Input)
		})
	}
}

func TestParse_Overflow(t *testing.T) {
	_, err := Parse("99999999")
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = Parse("106751.23:59:59")
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestSystem_TryParse(t *testing.T) {
	p := NewSystem()

	d, ok := p.TryParse("00:00:05")
	assert.True(t, ok)
	assert.Equal(t, 5*time.Second, d)

	d, ok = p.TryParse("not a span")
	assert.False(t, ok)
	assert.Zero(t, d)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 0, want: "00:00:00"},
		{in: 90 * time.Minute, want: "01:30:00"},
		{in: 26*time.Hour + 3*time.Minute + 4*time.Second + 500*time.Millisecond, want: "1.02:03:04.5000000"},
		{in: -time.Second, want: "-00:00:01"},
		{in: 150 * time.Nanosecond, want: "00:00:00.0000001"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	in := 3*24*time.Hour + 4*time.Hour + 5*time.Minute + 6*time.Second + 7*Tick

	got, err := Parse(Format(in))
	require.NoError(t, err)
	assert.Equal(t, in, got)
}
