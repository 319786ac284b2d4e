// Package util holds small request-shaping helpers shared by handlers.
package util

// Calculate turns 1-based page/size query values into an offset/limit pair.
// Out-of-range values fall back to page 1 and size 10; size is capped at 100.
func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	from = (page - 1) * size
	return from, size
}
