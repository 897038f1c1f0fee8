// Package bitstack implements growable LIFO stacks of bits, packed into
// machine words, with an optional limit on the total held by a Set of them.
package bitstack

import (
	"errors"
	"fmt"
)

const wordBits = 64

// Stack is a LIFO sequence of bits; the zero value is an empty stack.
type Stack struct {
	words  []uint64
	height int
}

// Len returns the number of bits on the stack.
func (s *Stack) Len() int { return s.height }

// Push adds bit to the top of the stack.
func (s *Stack) Push(bit bool) {
	i, off := s.height/wordBits, uint(s.height%wordBits)
	if i == len(s.words) {
		s.words = append(s.words, 0)
	}
	if bit {
		s.words[i] |= 1 << off
	} else {
		s.words[i] &^= 1 << off
	}
	s.height++
}

// Pop removes and returns the top bit; ok is false if the stack is empty.
func (s *Stack) Pop() (bit, ok bool) {
	if s.height == 0 {
		return false, false
	}
	s.height--
	return s.At(s.height), true
}

// At returns the bit at height i, counting up from 0 at the bottom.
func (s *Stack) At(i int) bool {
	return s.words[i/wordBits]&(1<<uint(i%wordBits)) != 0
}

// Top returns the top bit; ok is false if the stack is empty.
func (s *Stack) Top() (bit, ok bool) {
	if s.height == 0 {
		return false, false
	}
	return s.At(s.height - 1), true
}

// Reset empties the stack, retaining its storage.
func (s *Stack) Reset() { s.height = 0 }

// ErrLimit is matched by any LimitError.
var ErrLimit = errors.New("stack limit exceeded")

// LimitError indicates that a push would exceed a Set's Limit.
type LimitError struct {
	Stack int
	Limit int
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("stack limit of %v bits exceeded by push onto stack %v", lim.Limit, lim.Stack)
}

// Is returns true for ErrLimit.
func (lim LimitError) Is(target error) bool { return target == ErrLimit }

// Set is a fixed number of independent stacks sharing an optional limit.
type Set struct {
	// Limit bounds the total bits held by all stacks; 0 means no limit.
	Limit int

	stacks []Stack
	size   int
}

// Reset empties the set and sizes it to n stacks.
func (set *Set) Reset(n int) {
	if cap(set.stacks) < n {
		set.stacks = make([]Stack, n)
	} else {
		set.stacks = set.stacks[:n]
	}
	for i := range set.stacks {
		set.stacks[i].Reset()
	}
	set.size = 0
}

// Len returns the number of stacks in the set.
func (set *Set) Len() int { return len(set.stacks) }

// Size returns the total number of bits held across all stacks.
func (set *Set) Size() int { return set.size }

// Stack returns stack id for inspection.
func (set *Set) Stack(id int) *Stack { return &set.stacks[id] }

// Push adds bit to stack id, or returns a LimitError.
func (set *Set) Push(id int, bit bool) error {
	if set.Limit != 0 && set.size >= set.Limit {
		return LimitError{Stack: id, Limit: set.Limit}
	}
	set.stacks[id].Push(bit)
	set.size++
	return nil
}

// Pop removes the top bit of stack id; ok is false if it is empty.
func (set *Set) Pop(id int) (bit, ok bool) {
	bit, ok = set.stacks[id].Pop()
	if ok {
		set.size--
	}
	return bit, ok
}
