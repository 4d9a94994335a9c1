package classifier

import (
	"strconv"
	"strings"
)

// ParseResponse turns a raw model reply into a Result.
//
// Expected shape is "<yes|no>, <0-100>%", case-insensitive, with
// whitespace tolerated. The reply is split on the first comma: the left
// segment decides the verdict by substring, the right segment is stripped
// of non-digits and parsed as the confidence, with values above 100
// clamped to 100. Anything else is Unparseable with confidence 0.
func ParseResponse(raw string) Result {
	s := strings.ToLower(strings.TrimSpace(raw))

	left, right, found := strings.Cut(s, ",")
	if !found {
		return Result{Verdict: Unparseable}
	}

	var verdict Verdict
	switch {
	case strings.Contains(left, "yes"):
		verdict = Affirmative
	case strings.Contains(left, "no"):
		verdict = Negative
	default:
		return Result{Verdict: Unparseable}
	}

	digits := make([]byte, 0, len(right))
	for i := 0; i < len(right); i++ {
		if right[i] >= '0' && right[i] <= '9' {
			digits = append(digits, right[i])
		}
	}
	confidence, err := strconv.Atoi(string(digits))
	if err != nil {
		return Result{Verdict: Unparseable}
	}
	if confidence > 100 {
		confidence = 100
	}

	return Result{Verdict: verdict, Confidence: confidence}
}
