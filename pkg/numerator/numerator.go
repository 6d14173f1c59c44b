// Package numerator provides document auto-numbering.
//
// Quotation ids look like COT-001. The next number is derived from the
// maximum numeric suffix among the existing ids, so a deleted highest id
// can be reissued; the collections are single-writer so this is acceptable.
package numerator

import (
	"fmt"
	"strconv"
	"strings"
)

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "COT")
	Prefix string

	// PadWidth is the minimum number width (default 3)
	PadWidth int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:   prefix,
		PadWidth: 3,
	}
}

// Format creates the final number string, e.g. COT-007.
func (c Config) Format(num int64) string {
	padWidth := c.PadWidth
	if padWidth == 0 {
		padWidth = 3
	}
	return fmt.Sprintf("%s-%0*d", c.Prefix, padWidth, num)
}

// ParseNumber extracts the numeric suffix from a formatted number.
// Returns -1 if parsing fails.
func ParseNumber(formatted string) int64 {
	idx := strings.LastIndexByte(formatted, '-')
	if idx < 0 || idx == len(formatted)-1 {
		return -1
	}
	num, err := strconv.ParseInt(formatted[idx+1:], 10, 64)
	if err != nil {
		return -1
	}
	return num
}

// Next returns the next formatted number given all existing ids.
// Ids that do not parse are skipped. Starts at 1 for an empty collection.
func Next(cfg Config, existing []string) string {
	var max int64
	for _, id := range existing {
		if n := ParseNumber(id); n > max {
			max = n
		}
	}
	return cfg.Format(max + 1)
}

// NextNumeric returns the next bare numeric id ("1", "2", ...) given all
// existing ids. Used by catalogs whose ids carry no prefix.
func NextNumeric(existing []string) string {
	var max int64
	for _, id := range existing {
		if n, err := strconv.ParseInt(id, 10, 64); err == nil && n > max {
			max = n
		}
	}
	return strconv.FormatInt(max+1, 10)
}
