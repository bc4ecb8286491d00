package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
)

func TestExpandTitlesSingle(t *testing.T) {
	titles, err := ExpandTitles(domain.TitleSpec{
		Mode:      domain.TitleSingle,
		BaseTitle: "  Release Plan  ",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Release Plan"}, titles)
}

func TestExpandTitlesNumbered(t *testing.T) {
	titles, err := ExpandTitles(domain.TitleSpec{
		Mode:      domain.TitleNumbered,
		BaseTitle: "Sprint Retro",
		Count:     3,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Sprint Retro (1)",
		"Sprint Retro (2)",
		"Sprint Retro (3)",
	}, titles)
}

func TestExpandTitlesWeekly(t *testing.T) {
	titles, err := ExpandTitles(domain.TitleSpec{
		Mode:       domain.TitleWeekly,
		BaseTitle:  "Team Sync",
		Count:      3,
		StartMonth: "September",
		StartDay:   1,
		StartYear:  2026,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Team Sync - Week of September 1, 2026",
		"Team Sync - Week of September 8, 2026",
		"Team Sync - Week of September 15, 2026",
	}, titles)
}

func TestExpandTitlesWeeklyCarriesAcrossMonthAndYear(t *testing.T) {
	// Four steps from Dec 22 cross both a month and a year boundary.
	titles, err := ExpandTitles(domain.TitleSpec{
		Mode:       domain.TitleWeekly,
		BaseTitle:  "Standup",
		Count:      4,
		StartMonth: "December",
		StartDay:   22,
		StartYear:  2025,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Standup - Week of December 22, 2025",
		"Standup - Week of December 29, 2025",
		"Standup - Week of January 5, 2026",
		"Standup - Week of January 12, 2026",
	}, titles)
}

func TestExpandTitlesWeeklyJanuaryCarry(t *testing.T) {
	titles, err := ExpandTitles(domain.TitleSpec{
		Mode:       domain.TitleWeekly,
		BaseTitle:  "Notes",
		Count:      2,
		StartMonth: "January",
		StartDay:   28,
		StartYear:  2026,
	})
	require.NoError(t, err)
	assert.Equal(t, "Notes - Week of February 4, 2026", titles[1])
}

func TestExpandTitlesMonthly(t *testing.T) {
	titles, err := ExpandTitles(domain.TitleSpec{
		Mode:       domain.TitleMonthly,
		BaseTitle:  "Status Report",
		Count:      4,
		StartMonth: "November",
		StartYear:  2025,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Status Report - November 2025",
		"Status Report - December 2025",
		"Status Report - January 2026",
		"Status Report - February 2026",
	}, titles)
}

func TestExpandTitlesQuarterly(t *testing.T) {
	titles, err := ExpandTitles(domain.TitleSpec{
		Mode:         domain.TitleQuarterly,
		BaseTitle:    "Business Review",
		Count:        3,
		StartQuarter: "Q4",
		StartYear:    2025,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Business Review - Q4 2025",
		"Business Review - Q1 2026",
		"Business Review - Q2 2026",
	}, titles)
}

func TestExpandTitlesQuarterlyLowercaseAccepted(t *testing.T) {
	titles, err := ExpandTitles(domain.TitleSpec{
		Mode:         domain.TitleQuarterly,
		BaseTitle:    "Review",
		Count:        1,
		StartQuarter: "q2",
		StartYear:    2026,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Review - Q2 2026"}, titles)
}

func TestExpandTitlesValidation(t *testing.T) {
	tests := []struct {
		name string
		spec domain.TitleSpec
	}{
		{
			name: "empty base title",
			spec: domain.TitleSpec{Mode: domain.TitleSingle, BaseTitle: "   "},
		},
		{
			name: "unknown mode",
			spec: domain.TitleSpec{Mode: "hourly", BaseTitle: "X", Count: 1},
		},
		{
			name: "zero count",
			spec: domain.TitleSpec{Mode: domain.TitleNumbered, BaseTitle: "X", Count: 0},
		},
		{
			name: "unknown month",
			spec: domain.TitleSpec{
				Mode: domain.TitleMonthly, BaseTitle: "X", Count: 2,
				StartMonth: "Smarch", StartYear: 2026,
			},
		},
		{
			name: "day out of range",
			spec: domain.TitleSpec{
				Mode: domain.TitleWeekly, BaseTitle: "X", Count: 2,
				StartMonth: "March", StartDay: 42, StartYear: 2026,
			},
		},
		{
			name: "unknown quarter",
			spec: domain.TitleSpec{
				Mode: domain.TitleQuarterly, BaseTitle: "X", Count: 2,
				StartQuarter: "Q5", StartYear: 2026,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExpandTitles(tt.spec)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestDeduplicateTitles(t *testing.T) {
	out := DeduplicateTitles([]string{"A", "B", "A", "A"})
	assert.Equal(t, []string{"A", "B", "A (2)", "A (3)"}, out)
}

func TestDeduplicateTitlesRegistersGeneratedNames(t *testing.T) {
	// The literal "A (2)" after a deduplicated "A" collides with the
	// generated name and must itself be renamed.
	out := DeduplicateTitles([]string{"A", "A", "A (2)"})
	assert.Equal(t, []string{"A", "A (2)", "A (2) (2)"}, out)
}

func TestDeduplicateTitlesSkipsTakenSuffixes(t *testing.T) {
	// A literal "A (2)" occupies the suffix a later duplicate of "A"
	// would otherwise be assigned; the duplicate must skip past it.
	out := DeduplicateTitles([]string{"A (2)", "A", "A"})
	assert.Equal(t, []string{"A (2)", "A", "A (3)"}, out)
	assert.Equal(t, out, DeduplicateTitles(out))

	out = DeduplicateTitles([]string{"A (2)", "A", "A", "A"})
	assert.Equal(t, []string{"A (2)", "A", "A (3)", "A (4)"}, out)
	assert.Equal(t, out, DeduplicateTitles(out))
}

func TestDeduplicateTitlesIdempotent(t *testing.T) {
	first := DeduplicateTitles([]string{"A", "B", "A", "A"})
	second := DeduplicateTitles(first)
	assert.Equal(t, first, second)
}

func TestDeduplicateTitlesTrimsForComparison(t *testing.T) {
	out := DeduplicateTitles([]string{"A", " A "})
	assert.Equal(t, []string{"A", "A (2)"}, out)
}

func TestDeduplicateTitlesPassesEmptyThrough(t *testing.T) {
	out := DeduplicateTitles([]string{"", "  ", "A"})
	assert.Equal(t, []string{"", "  ", "A"}, out)
}
