package rotation

import (
	"errors"
	"fmt"
)

// ErrSequenceNotConfigured is returned when no rotation sequence exists.
var ErrSequenceNotConfigured = errors.New("rotation sequence is not configured")

// NextCategoryMap builds the successor map for a rotation sequence:
// each category maps to the one that follows it, wrapping the last back
// to the first. The sequence must be non-empty and contain no repeats.
func NextCategoryMap(sequence []Category) (map[Category]Category, error) {
	if len(sequence) == 0 {
		return nil, ErrSequenceNotConfigured
	}

	next := make(map[Category]Category, len(sequence))
	for i, cat := range sequence {
		if _, seen := next[cat]; seen {
			return nil, fmt.Errorf("rotation sequence contains %q twice", cat)
		}
		next[cat] = sequence[(i+1)%len(sequence)]
	}
	return next, nil
}
