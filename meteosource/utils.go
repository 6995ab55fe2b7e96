package meteosource

import "strconv"

// formatFloat formats a float64 to a string with appropriate precision.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func defaultString(s, def string) string {
	if s != "" {
		return s
	}
	return def
}

// Float64Ptr is a helper function to get a pointer to a float64 value.
func Float64Ptr(f float64) *float64 {
	return &f
}
