package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// InvalidScoreError reports an entry that is not a finite number.
type InvalidScoreError struct {
	Index int
	Value string
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("exercise %d: %q is not a number", e.Index+1, e.Value)
}

// SumScores adds up score entries. Blank entries count as zero; anything else
// must parse as a finite float.
func SumScores(entries []string) (float64, error) {
	var total float64
	for i, entry := range entries {
		v := strings.TrimSpace(entry)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, &InvalidScoreError{Index: i, Value: entry}
		}
		total += f
	}
	return total, nil
}

// NormalizeScores trims entries and replaces blanks with "0".
func NormalizeScores(entries []string) []string {
	out := make([]string, len(entries))
	for i, entry := range entries {
		v := strings.TrimSpace(entry)
		if v == "" {
			v = "0"
		}
		out[i] = v
	}
	return out
}

// FormatTotal renders a total the way the results file stores it.
func FormatTotal(total float64) string {
	return strconv.FormatFloat(total, 'f', 1, 64)
}
