package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
)

// quarterStartMonths maps Q1..Q4 to their zero-based starting month.
var quarterStartMonths = map[string]int{
	"Q1": 0,
	"Q2": 3,
	"Q3": 6,
	"Q4": 9,
}

// parseMonth maps a full English month name to its zero-based index.
func parseMonth(name string) (int, error) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), strings.TrimSpace(name)) {
			return int(m) - 1, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown month %q", domain.ErrInvalidInput, name)
}

// ExpandTitles computes the ordered title sequence for a title spec.
// It is pure and deterministic: no I/O, no clock. Every mode produces
// exactly the requested number of titles in ascending order.
func ExpandTitles(spec domain.TitleSpec) ([]string, error) {
	base := strings.TrimSpace(spec.BaseTitle)
	if base == "" {
		return nil, fmt.Errorf("%w: base title is required", domain.ErrInvalidInput)
	}

	switch spec.Mode {
	case domain.TitleSingle:
		return []string{base}, nil
	case domain.TitleNumbered:
		return expandNumbered(base, spec.Count)
	case domain.TitleWeekly:
		return expandWeekly(base, spec)
	case domain.TitleMonthly:
		return expandMonthly(base, spec)
	case domain.TitleQuarterly:
		return expandQuarterly(base, spec)
	default:
		return nil, fmt.Errorf("%w: unknown title mode %q", domain.ErrInvalidInput, spec.Mode)
	}
}

func requireCount(count int) error {
	if count < 1 {
		return fmt.Errorf("%w: count must be at least 1", domain.ErrInvalidInput)
	}
	return nil
}

func expandNumbered(base string, count int) ([]string, error) {
	if err := requireCount(count); err != nil {
		return nil, err
	}
	titles := make([]string, count)
	for i := 0; i < count; i++ {
		titles[i] = fmt.Sprintf("%s (%d)", base, i+1)
	}
	return titles, nil
}

// expandWeekly steps seven calendar days per entry. time.Time.AddDate
// carries across month and year boundaries, so Jan 28 + 7 days lands on
// Feb 4, never Jan 35.
func expandWeekly(base string, spec domain.TitleSpec) ([]string, error) {
	if err := requireCount(spec.Count); err != nil {
		return nil, err
	}
	monthIdx, err := parseMonth(spec.StartMonth)
	if err != nil {
		return nil, err
	}
	if spec.StartDay < 1 || spec.StartDay > 31 {
		return nil, fmt.Errorf("%w: day %d out of range", domain.ErrInvalidInput, spec.StartDay)
	}

	start := time.Date(spec.StartYear, time.Month(monthIdx+1), spec.StartDay, 0, 0, 0, 0, time.UTC)
	titles := make([]string, spec.Count)
	for i := 0; i < spec.Count; i++ {
		d := start.AddDate(0, 0, 7*i)
		titles[i] = fmt.Sprintf("%s - Week of %s %d, %d", base, d.Month().String(), d.Day(), d.Year())
	}
	return titles, nil
}

func expandMonthly(base string, spec domain.TitleSpec) ([]string, error) {
	if err := requireCount(spec.Count); err != nil {
		return nil, err
	}
	monthIdx, err := parseMonth(spec.StartMonth)
	if err != nil {
		return nil, err
	}

	titles := make([]string, spec.Count)
	for i := 0; i < spec.Count; i++ {
		total := monthIdx + i
		month := time.Month(total%12 + 1)
		year := spec.StartYear + total/12
		titles[i] = fmt.Sprintf("%s - %s %d", base, month.String(), year)
	}
	return titles, nil
}

func expandQuarterly(base string, spec domain.TitleSpec) ([]string, error) {
	if err := requireCount(spec.Count); err != nil {
		return nil, err
	}
	startMonth, ok := quarterStartMonths[strings.ToUpper(strings.TrimSpace(spec.StartQuarter))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown quarter %q", domain.ErrInvalidInput, spec.StartQuarter)
	}

	titles := make([]string, spec.Count)
	for i := 0; i < spec.Count; i++ {
		total := startMonth + 3*i
		year := spec.StartYear + total/12
		quarter := (total%12)/3 + 1
		titles[i] = fmt.Sprintf("%s - Q%d %d", base, quarter, year)
	}
	return titles, nil
}

// DeduplicateTitles disambiguates caller-supplied duplicate titles before
// they reach the bulk engine. The first occurrence of a trimmed title is
// left unchanged; occurrence n of the same title is suffixed " (n)", so
// the second occurrence becomes "Title (2)". The suffix number is bumped
// past any name already emitted, literal or generated, so a list like
// ["A (2)", "A", "A"] yields "A (3)" for the last entry rather than a
// second "A (2)". Re-running the pass on its own output is a no-op.
// Empty and whitespace-only titles pass through untouched.
func DeduplicateTitles(titles []string) []string {
	seen := make(map[string]int, len(titles))
	out := make([]string, len(titles))

	for i, title := range titles {
		key := strings.TrimSpace(title)
		if key == "" {
			out[i] = title
			continue
		}

		seen[key]++
		if seen[key] == 1 {
			out[i] = title
			continue
		}

		n := seen[key]
		unique := fmt.Sprintf("%s (%d)", key, n)
		for seen[unique] > 0 {
			n++
			unique = fmt.Sprintf("%s (%d)", key, n)
		}
		seen[unique]++
		out[i] = unique
	}

	return out
}
