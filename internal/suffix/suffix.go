// Package suffix builds suffix arrays and their longest-common-prefix
// companions over raw byte strings.
package suffix

import (
	"errors"
	"math"
	"slices"
)

var (
	// ErrEmpty is returned for an empty input, which has no LCP array.
	ErrEmpty = errors.New("suffix: empty input")

	// ErrTooLong is returned for inputs not addressable by int32 offsets.
	ErrTooLong = errors.New("suffix: input exceeds 32-bit offsets")
)

// Build returns the suffix array and LCP array of data.
//
// The suffix array holds every offset of data ordered so that data[sa[i]:]
// is lexicographically non-decreasing; lcp[i] is the length of the common
// prefix of data[sa[i]:] and data[sa[i+1]:], so len(lcp) == len(data)-1.
func Build(data []byte) (sa, lcp []int32, err error) {
	if len(data) == 0 {
		return nil, nil, ErrEmpty
	}
	if len(data) > math.MaxInt32 {
		return nil, nil, ErrTooLong
	}
	sa = sortSuffixes(data)
	lcp = commonPrefixes(data, sa)
	return sa, lcp, nil
}

// sortSuffixes orders suffixes by prefix doubling: each round sorts by the
// rank pair of the first k and the following k bytes, until every rank is
// distinct.
func sortSuffixes(data []byte) []int32 {
	n := len(data)
	sa := make([]int32, n)
	rank := make([]int32, n)
	next := make([]int32, n)
	for i := range sa {
		sa[i] = int32(i)
		rank[i] = int32(data[i])
	}

	for k := 1; ; k <<= 1 {
		second := func(i int32) int32 {
			if j := int(i) + k; j < n {
				return rank[j]
			}
			return -1
		}
		compare := func(a, b int32) int {
			if ra, rb := rank[a], rank[b]; ra != rb {
				return int(ra - rb)
			}
			return int(second(a) - second(b))
		}
		slices.SortFunc(sa, compare)

		next[sa[0]] = 0
		for i := 1; i < n; i++ {
			next[sa[i]] = next[sa[i-1]]
			if compare(sa[i-1], sa[i]) < 0 {
				next[sa[i]]++
			}
		}
		copy(rank, next)

		if int(rank[sa[n-1]]) == n-1 || k >= n {
			return sa
		}
	}
}

// commonPrefixes computes the LCP array in linear time (Kasai et al.).
func commonPrefixes(data []byte, sa []int32) []int32 {
	n := len(data)
	lcp := make([]int32, n-1)
	rank := make([]int32, n)
	for i, p := range sa {
		rank[p] = int32(i)
	}

	h := 0
	for i := 0; i < n; i++ {
		r := rank[i]
		if r == 0 {
			h = 0
			continue
		}
		j := int(sa[r-1])
		for i+h < n && j+h < n && data[i+h] == data[j+h] {
			h++
		}
		lcp[r-1] = int32(h)
		if h > 0 {
			h--
		}
	}
	return lcp
}
