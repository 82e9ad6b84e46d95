package release

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateState_ParsesMonthYear(t *testing.T) {
	var state DateState

	date, next := state.Infer("March 2024", time.Now())

	assert.Equal(t, "2024-03-01T00:00:00Z", FormatTimestamp(date))
	last, ok := next.Last()
	require.True(t, ok)
	assert.Equal(t, date, last)
}

func TestDateState_ParsesDayMonthYear(t *testing.T) {
	var state DateState

	date, _ := state.Infer("5 March 2024", time.Now())

	assert.Equal(t, "2024-03-05T00:00:00Z", FormatTimestamp(date))
}

func TestDateState_TitleVariants(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"march 2024", "2024-03-01T00:00:00Z"},
		{"05 March 2024", "2024-03-05T00:00:00Z"},
		{"  December 2023  ", "2023-12-01T00:00:00Z"},
		{"March 2024", "2024-03-01T00:00:00Z"},
		{"31 January 2025", "2025-01-31T00:00:00Z"},
		{"March\u00a02024", "2024-03-01T00:00:00Z"},
		{"5\u00a0March\u00a02024", "2024-03-05T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			var state DateState
			date, next := state.Infer(tt.title, time.Now())
			assert.Equal(t, tt.expected, FormatTimestamp(date))
			_, ok := next.Last()
			assert.True(t, ok)
		})
	}
}

func TestDateState_StepsBackOneMonth(t *testing.T) {
	var state DateState
	var date time.Time

	titles := []string{"March 2024", "Release 42", "", "Bug fixes"}
	expected := []string{
		"2024-03-01T00:00:00Z",
		"2024-02-01T00:00:00Z",
		"2024-01-01T00:00:00Z",
		"2023-12-01T00:00:00Z",
	}

	for i, title := range titles {
		date, state = state.Infer(title, time.Now())
		assert.Equal(t, expected[i], FormatTimestamp(date), "title %q", title)
	}
}

func TestDateState_KeepsDayOfMonth(t *testing.T) {
	var state DateState

	_, state = state.Infer("5 March 2024", time.Now())
	date, _ := state.Infer("Unparseable", time.Now())

	assert.Equal(t, "2024-02-05T00:00:00Z", FormatTimestamp(date))
}

func TestDateState_ClampsMissingDay(t *testing.T) {
	var state DateState

	_, state = state.Infer("31 March 2024", time.Now())
	date, state := state.Infer("Unparseable", time.Now())
	assert.Equal(t, "2024-02-29T00:00:00Z", FormatTimestamp(date))

	date, _ = state.Infer("Unparseable", time.Now())
	assert.Equal(t, "2024-01-29T00:00:00Z", FormatTimestamp(date))
}

func TestDateState_ExplicitDateOverridesFallback(t *testing.T) {
	var state DateState

	_, state = state.Infer("March 2024", time.Now())
	_, state = state.Infer("Unparseable", time.Now())
	date, state := state.Infer("10 June 2021", time.Now())
	assert.Equal(t, "2021-06-10T00:00:00Z", FormatTimestamp(date))

	date, _ = state.Infer("Unparseable", time.Now())
	assert.Equal(t, "2021-05-10T00:00:00Z", FormatTimestamp(date))
}

func TestDateState_NoPriorDateUsesNow(t *testing.T) {
	var state DateState
	now := time.Date(2026, 10, 15, 8, 30, 12, 0, time.FixedZone("EST", -5*3600))

	date, next := state.Infer("Not a date", now)

	assert.Equal(t, "2026-10-15T13:30:12Z", FormatTimestamp(date))
	_, ok := next.Last()
	assert.False(t, ok, "fallback to now must not seed the state")
}

func TestDateState_NoPriorDateIsCloseToWallClock(t *testing.T) {
	var state DateState

	date, _ := state.Infer("", time.Now())

	assert.WithinDuration(t, time.Now().UTC(), date, 5*time.Second)
}

func TestDateState_Deterministic(t *testing.T) {
	titles := []string{"Unparseable", "June 2023", "", "1 April 2023", "x", "y"}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	run := func() []string {
		var state DateState
		var date time.Time
		out := make([]string, 0, len(titles))
		for _, title := range titles {
			date, state = state.Infer(title, now)
			out = append(out, FormatTimestamp(date))
		}
		return out
	}

	first := run()
	assert.Equal(t, first, run())
	assert.Equal(t, []string{
		"2026-01-01T00:00:00Z",
		"2023-06-01T00:00:00Z",
		"2023-05-01T00:00:00Z",
		"2023-04-01T00:00:00Z",
		"2023-03-01T00:00:00Z",
		"2023-02-01T00:00:00Z",
	}, first)
}
