package validator

import (
	"sort"
)

// Summary aggregates the results of one run.
type Summary struct {
	Results []*Result
}

// Sort orders results by source identifier. Reports always use this order.
func (s *Summary) Sort() {
	sort.SliceStable(s.Results, func(i, j int) bool {
		return s.Results[i].Source < s.Results[j].Source
	})
}

// Success reports whether every result passed.
func (s *Summary) Success() bool {
	for _, r := range s.Results {
		if !r.Passed() {
			return false
		}
	}
	return true
}

// Passed returns the number of passing results.
func (s *Summary) Passed() int {
	n := 0
	for _, r := range s.Results {
		if r.Passed() {
			n++
		}
	}
	return n
}

// Failed returns the number of failing results.
func (s *Summary) Failed() int {
	return len(s.Results) - s.Passed()
}
