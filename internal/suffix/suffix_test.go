package suffix_test

import (
	"bytes"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/incident/internal/suffix"
)

func TestBuild_empty(t *testing.T) {
	sa, lcp, err := suffix.Build(nil)
	assert.ErrorIs(t, err, suffix.ErrEmpty)
	assert.Nil(t, sa)
	assert.Nil(t, lcp)
}

func TestBuild(t *testing.T) {
	for _, tc := range []struct {
		data string
		sa   []int32
		lcp  []int32
	}{
		{"a", []int32{0}, []int32{}},
		{"aa", []int32{1, 0}, []int32{1}},
		{"ba", []int32{1, 0}, []int32{0}},
		{"banana", []int32{5, 3, 1, 0, 4, 2}, []int32{1, 3, 0, 0, 2}},
		{"abcabcabc", []int32{6, 3, 0, 7, 4, 1, 8, 5, 2}, []int32{3, 6, 0, 2, 5, 0, 1, 4}},
		{"mississippi", []int32{10, 7, 4, 1, 0, 9, 8, 6, 3, 5, 2}, []int32{1, 1, 4, 0, 0, 1, 0, 2, 1, 3}},
	} {
		t.Run(tc.data, func(t *testing.T) {
			sa, lcp, err := suffix.Build([]byte(tc.data))
			require.NoError(t, err)
			assert.Equal(t, tc.sa, sa, "expected suffix array")
			assert.Equal(t, tc.lcp, lcp, "expected LCP array")
		})
	}
}

func TestBuild_naive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for round := 0; round < 300; round++ {
		alphabet := 1 + rng.Intn(4)
		data := make([]byte, 1+rng.Intn(64))
		for i := range data {
			data[i] = 'a' + byte(rng.Intn(alphabet))
		}

		sa, lcp, err := suffix.Build(data)
		require.NoError(t, err)

		wantSA, wantLCP := naive(data)
		if !assert.Equal(t, wantSA, sa, "suffix array of %q", data) ||
			!assert.Equal(t, wantLCP, lcp, "LCP array of %q", data) {
			return
		}
	}
}

func naive(data []byte) (sa, lcp []int32) {
	sa = make([]int32, len(data))
	for i := range sa {
		sa[i] = int32(i)
	}
	sort.Slice(sa, func(i, j int) bool {
		return bytes.Compare(data[sa[i]:], data[sa[j]:]) < 0
	})
	lcp = make([]int32, len(data)-1)
	for i := range lcp {
		a, b := data[sa[i]:], data[sa[i+1]:]
		for int(lcp[i]) < len(a) && int(lcp[i]) < len(b) && a[lcp[i]] == b[lcp[i]] {
			lcp[i]++
		}
	}
	return sa, lcp
}
