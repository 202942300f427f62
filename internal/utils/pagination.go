// Package utils holds small parsing helpers shared by the HTTP layer.
package utils

import "strconv"

// IntInRange parses s as a base-10 int and clamps it to [lo, hi]. Empty or
// malformed input yields def, which is returned unclamped.
//
//	utils.IntInRange("42", 20, 1, 100)   // 42
//	utils.IntInRange("500", 20, 1, 100)  // 100
//	utils.IntInRange("", 20, 1, 100)     // 20
func IntInRange(s string, def, lo, hi int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
