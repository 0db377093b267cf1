package racetime_test

import (
	"dopingscatter/pkg/racetime"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_minutesAndSeconds(t *testing.T) {
	rt, err := racetime.Normalize("36:50")

	require.NoError(t, err)
	require.Equal(t, 36*time.Minute+50*time.Second, rt.Duration())
	require.Equal(t, 36, rt.Minutes())
	require.Equal(t, 50, rt.Seconds())
}

func TestNormalize_leadingZeros(t *testing.T) {
	a, err := racetime.Normalize("05:30")
	require.NoError(t, err)
	b, err := racetime.Normalize("5:30")
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestNormalize_secondsRollOver(t *testing.T) {
	rolled, err := racetime.Normalize("1:75")
	require.NoError(t, err)

	require.Equal(t, racetime.MustNormalize("2:15"), rolled)
	require.Equal(t, "02:15", rolled.String())
}

func TestNormalize_orderPreserving(t *testing.T) {
	ordered := []string{"0:00", "0:59", "1:00", "36:15", "36:50", "39:00", "39:01", "120:00"}
	for i := 1; i < len(ordered); i++ {
		prev := racetime.MustNormalize(ordered[i-1])
		cur := racetime.MustNormalize(ordered[i])
		assert.True(t, prev.Before(cur), "%s should be before %s", ordered[i-1], ordered[i])
		assert.True(t, prev.Stamp().Before(cur.Stamp()))
	}
}

func TestNormalize_malformed(t *testing.T) {
	for _, input := range []string{"", "3650", "36:50:10", ":50", "36:", "-1:30", "1:-30", "a:10", "1:1b", " 1:10", "1.5:10", "+1:10", "99999999999999999999:00"} {
		t.Run(input, func(t *testing.T) {
			_, err := racetime.Normalize(input)

			require.Error(t, err)
			require.True(t, errors.Is(err, racetime.ErrParse))
			var pe *racetime.ParseError
			require.True(t, errors.As(err, &pe))
			require.Equal(t, input, pe.Input)
		})
	}
}

func TestRaceTime_stamp(t *testing.T) {
	rt := racetime.MustNormalize("39:12")

	require.Equal(t, "1970-01-01T00:39:12Z", rt.Stamp().Format(time.RFC3339))
}

func TestRaceTime_stringPadsMinutes(t *testing.T) {
	require.Equal(t, "00:07", racetime.MustNormalize("0:7").String())
	require.Equal(t, "125:00", racetime.MustNormalize("125:0").String())
}
