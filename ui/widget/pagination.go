// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package widget

import "math"

// PageOf returns the page holding absolute index i.
func PageOf(i, capacity int) int { return i / capacity }

// RowOf returns the row of absolute index i within its page.
func RowOf(i, capacity int) int { return i % capacity }

// IndexOf is the inverse of PageOf and RowOf.
func IndexOf(page, row, capacity int) int { return page*capacity + row }

// Pages returns how many pages n items need.
func Pages(n, capacity int) int {
	if n <= 0 {
		return 0
	}
	return (n + capacity - 1) / capacity
}

// ScrollPercent is the position shown in the border of a list that does
// not fit on one page.
func ScrollPercent(page, row, capacity, n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(IndexOf(page, row, capacity)) / float64(n)))
}
