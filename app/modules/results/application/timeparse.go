package resultsservice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTimeFormat indicates a clock time that is not bare seconds,
// MM:SS, or HH:MM:SS.
var ErrInvalidTimeFormat = errors.New("invalid time format")

// ParseClockTime converts a clock time string into total seconds. Accepted
// forms are bare seconds ("95"), MM:SS ("45:30"), and HH:MM:SS ("1:02:15").
// Components are non-negative integers; out-of-range component values such
// as "1:99:99" are carried through arithmetically, not rejected, because
// some timing systems emit them deliberately. Empty input parses as zero;
// whether a time may be absent is the caller's rule (the validator requires
// one for finished rows), not a format question.
func ParseClockTime(input string) (int, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, nil
	}
	parts := strings.Split(trimmed, ":")

	values := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := parseTimeComponent(part)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, input)
		}
		values = append(values, n)
	}

	switch len(values) {
	case 1:
		return values[0], nil
	case 2:
		return values[0]*60 + values[1], nil
	case 3:
		return values[0]*3600 + values[1]*60 + values[2], nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, input)
	}
}

func parseTimeComponent(part string) (int, error) {
	if part == "" {
		return 0, fmt.Errorf("empty component")
	}
	n, err := strconv.Atoi(part)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative component")
	}
	return n, nil
}
