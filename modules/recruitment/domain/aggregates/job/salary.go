package job

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	salaryMinRe = regexp.MustCompile(`(\d+)`)
	salaryMaxRe = regexp.MustCompile(`(?:-|to)\s*(\d+)`)
)

// ParseSalaryRange extracts numeric bounds from free-form salary text.
// The first number is the lower bound; a number after "-" or "to" is the
// upper bound. A "k" anywhere in the text marks thousands and scales both
// bounds, so "40 - 50k" parses as 40000..50000. When no upper bound is
// present both bounds are the same, and unparseable text yields zeros.
func ParseSalaryRange(raw string) (int, int) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, 0
	}

	multiplier := 1
	if strings.Contains(strings.ToLower(raw), "k") {
		multiplier = 1000
	}

	smin := 0
	if m := salaryMinRe.FindStringSubmatch(raw); m != nil {
		smin = atoi(m[1]) * multiplier
	}

	smax := smin
	if m := salaryMaxRe.FindStringSubmatch(raw); m != nil {
		smax = atoi(m[1]) * multiplier
	}
	return smin, smax
}

func atoi(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}
