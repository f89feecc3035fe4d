package layout

import "strconv"

// Score formats a score with an explicit sign
func Score(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v > 0 {
		return "+" + s
	}
	return s
}

// ScoreClass returns the CSS class for a score
func ScoreClass(v float64) string {
	switch {
	case v > 0:
		return "positive"
	case v < 0:
		return "negative"
	default:
		return ""
	}
}
