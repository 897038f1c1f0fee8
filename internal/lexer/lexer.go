// Package lexer discovers the implicit lexical structure of an Incident
// program: the substrings that occur exactly three times, which of them
// survive overlap resolution, and the role each surviving occurrence plays.
package lexer

import (
	"fmt"
	"sort"

	"github.com/jcorbin/incident/internal/suffix"
)

// Triple holds the three occurrences of one exactly-thrice-repeated
// substring. Triples produced by FindTriples list occurrences in suffix
// order; those in an Analysis list them in text order, indexed by Role.
type Triple [3]Occurrence

// Analysis is the lexical structure of a program.
type Analysis struct {
	// Tags has one entry per program byte.
	Tags []Tag

	// Commands holds the occurrences of every surviving command, indexed by
	// command id, with occurrences in text order so that Commands[id][role]
	// is the occurrence playing role.
	Commands []Triple
}

// Count returns the number of surviving commands.
func (an *Analysis) Count() int { return len(an.Commands) }

// Anchor returns the program's anchor command, or false if it has none.
func (an *Analysis) Anchor() (int, bool) { return Anchor(an.Tags) }

// Analyze discovers the commands of program src.
func Analyze(src []byte) (*Analysis, error) {
	if len(src) < 3 {
		return &Analysis{Tags: make([]Tag, len(src))}, nil
	}
	sa, lcp, err := suffix.Build(src)
	if err != nil {
		return nil, fmt.Errorf("cannot build suffix array: %w", err)
	}
	return Resolve(len(src), FindTriples(src, sa, lcp)), nil
}

// FindTriples enumerates the maximal triples of src given its suffix and LCP
// arrays, in suffix array order.
//
// Three suffixes adjacent in the suffix array whose two inner LCP values both
// exceed the LCP values on either side share a prefix that occurs exactly
// three times, and that prefix cannot be extended rightwards. Those whose
// occurrences are all preceded by the same byte extend leftwards instead,
// and are found again at the longer substring's own suffix array position.
func FindTriples(src []byte, sa, lcp []int32) []Triple {
	n := len(src)
	var triples []Triple
	for i := 0; i+2 < n; i++ {
		var outer int32
		if i > 0 {
			outer = lcp[i-1]
		}
		if i+2 < len(lcp) && lcp[i+2] > outer {
			outer = lcp[i+2]
		}
		inner := min(lcp[i], lcp[i+1])
		if inner <= outer {
			continue
		}

		a, b, c := sa[i], sa[i+1], sa[i+2]
		if a > 0 && b > 0 && c > 0 &&
			src[a-1] == src[b-1] && src[a-1] == src[c-1] {
			continue
		}

		triples = append(triples, Triple{
			{Start: a, Length: inner},
			{Start: b, Length: inner},
			{Start: c, Length: inner},
		})
	}
	return triples
}

// Resolve tags a program of length n given its maximal triples.
//
// Every byte covered by more than one occurrence is tagged Overlap and
// disqualifies each triple covering it; bytes only covered by disqualified
// triples are tagged Discarded. Surviving triples are numbered in the order
// given, and their occurrences tagged with the role implied by text order.
func Resolve(n int, triples []Triple) *Analysis {
	const overlapped = -1

	// owner holds 1 + the index of the sole triple covering each byte
	owner := make([]int32, n)
	dropped := make([]bool, len(triples))
	for id, triple := range triples {
		for _, occ := range triple {
			for j := occ.Start; j < occ.End(); j++ {
				switch other := owner[j]; {
				case other == 0:
					owner[j] = int32(id) + 1
				case other == overlapped:
					dropped[id] = true
				default:
					dropped[other-1] = true
					dropped[id] = true
					owner[j] = overlapped
				}
			}
		}
	}

	an := &Analysis{Tags: make([]Tag, n)}
	for id, triple := range triples {
		if dropped[id] {
			continue
		}
		sort.Slice(triple[:], func(i, j int) bool {
			return triple[i].Start < triple[j].Start
		})
		an.Commands = append(an.Commands, triple)
	}

	for j, other := range owner {
		switch {
		case other == overlapped:
			an.Tags[j] = Overlap
		case other > 0 && dropped[other-1]:
			an.Tags[j] = Discarded
		}
	}
	for cmd, triple := range an.Commands {
		for role, occ := range triple {
			tag := CommandTag(cmd, Role(role))
			for j := occ.Start; j < occ.End(); j++ {
				an.Tags[j] = tag
			}
		}
	}

	return an
}

// Anchor selects the command whose first occurrence is the centremost of all
// commands' first occurrences, taking the lower middle for an even count.
// Returns false if tags contains no commands.
func Anchor(tags []Tag) (int, bool) {
	var firsts []int
	prior := Noise
	for _, tag := range tags {
		if tag != prior && tag.IsCommand() && tag.Role() == PushZero {
			firsts = append(firsts, tag.Command())
		}
		prior = tag
	}
	if len(firsts) == 0 {
		return 0, false
	}
	return firsts[(len(firsts)-1)/2], true
}
