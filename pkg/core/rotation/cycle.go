package rotation

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrUnsupportedCadence is returned for a cycles-per-year value outside 1-4.
var ErrUnsupportedCadence = errors.New("unsupported cycles-per-year cadence")

// Suffix schemes per cadence. Cadence 1 has no suffix at all.
var cadenceSuffixes = map[int][]string{
	1: {""},
	2: {"A", "B"},
	3: {"A", "B", "C"},
	4: {"Q1", "Q2", "Q3", "Q4"},
}

// NextCycleID advances a cycle identifier by one step for the given
// cadence. Identifiers are "YYYY" (1/year), "YYYYA".."YYYYB" (2/year),
// "YYYYA".."YYYYC" (3/year) or "YYYYQ1".."YYYYQ4" (4/year). Advancing
// past the last suffix in a year rolls the year forward and resets to
// the first suffix.
func NextCycleID(prev string, cadence int) (string, error) {
	suffixes, ok := cadenceSuffixes[cadence]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedCadence, cadence)
	}

	if len(prev) < 4 {
		return "", fmt.Errorf("malformed cycle identifier %q", prev)
	}
	year, err := strconv.Atoi(prev[:4])
	if err != nil {
		return "", fmt.Errorf("malformed cycle identifier %q: %w", prev, err)
	}
	suffix := prev[4:]

	idx := -1
	for i, s := range suffixes {
		if s == suffix {
			idx = i
			break
		}
	}
	if idx == -1 {
		return "", fmt.Errorf("cycle identifier %q does not match cadence %d", prev, cadence)
	}

	idx++
	if idx == len(suffixes) {
		year++
		idx = 0
	}
	return fmt.Sprintf("%d%s", year, suffixes[idx]), nil
}

// CurrentCycleID derives the cycle identifier containing the given
// instant. Month boundaries: 2/year splits the year Jan-Jun / Jul-Dec,
// 3/year Jan-Apr / May-Aug / Sep-Dec, 4/year by calendar quarter.
func CurrentCycleID(now time.Time, cadence int) (string, error) {
	suffixes, ok := cadenceSuffixes[cadence]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedCadence, cadence)
	}

	monthsPer := 12 / cadence
	idx := (int(now.Month()) - 1) / monthsPer
	return fmt.Sprintf("%d%s", now.Year(), suffixes[idx]), nil
}
