// Package graph threads a tagged Incident program into its control flow
// graph: for every command, where execution continues after each of the
// three things that can happen to it.
package graph

import (
	"fmt"

	"github.com/jcorbin/incident/internal/lexer"
)

// Fragment mode markers.
const (
	StartMarker = '^'
	StopMarker  = '$'
)

// Loc is an instruction location: one occurrence of a command.
type Loc struct {
	Cmd  int
	Role lexer.Role
}

// Halt is the location that ends execution.
var Halt = Loc{Cmd: -1}

// IsHalt returns true if loc ends execution.
func (loc Loc) IsHalt() bool { return loc.Cmd < 0 }

func (loc Loc) String() string {
	if loc.IsHalt() {
		return "halt"
	}
	return fmt.Sprintf("%d:%v", loc.Cmd, loc.Role)
}

// LocOf returns the location tagged by tag; tag must be a command tag.
func LocOf(tag lexer.Tag) Loc { return Loc{tag.Command(), tag.Role()} }

// Slot names one of a command's successor links.
type Slot uint8

// Successor slots.
const (
	OnPopZero Slot = iota
	OnPopOne
	OnPush
)

// SlotAfter returns the successor slot fed by the occurrence that textually
// precedes another: leaving a push-0 occurrence means a 0 was popped,
// leaving a pop occurrence means something was pushed, and leaving a push-1
// occurrence means a 1 was popped.
func SlotAfter(role lexer.Role) Slot {
	switch role {
	case lexer.PushZero:
		return OnPopZero
	case lexer.PushOne:
		return OnPopOne
	default:
		return OnPush
	}
}

// Command holds a command's successor links, indexed by Slot.
type Command [3]Loc

// OnPopped returns the successor after popping bit.
func (cmd Command) OnPopped(bit bool) Loc {
	if bit {
		return cmd[OnPopOne]
	}
	return cmd[OnPopZero]
}

// Graph is the control flow of a program.
type Graph struct {
	// Start is where whole-program execution begins.
	Start Loc

	// Commands holds successor links indexed by command id.
	Commands []Command

	// Fragments holds the first location of every fragment, one per start
	// marker in text order; only built in fragment mode.
	Fragments []Loc
}

// Next returns the successor of cmd in slot.
func (g *Graph) Next(cmd int, slot Slot) Loc { return g.Commands[cmd][slot] }

// Build threads the commands of src, tagged by tags, into a Graph of count
// commands. In fragmented mode, stop markers in src break threading and
// start markers begin fragments.
func Build(src []byte, tags []lexer.Tag, count int, fragmented bool) *Graph {
	g := &Graph{Commands: make([]Command, count)}
	for i := range g.Commands {
		g.Commands[i] = Command{Halt, Halt, Halt}
	}

	th := threader{g: g}
	stop := func(i int) bool { return fragmented && src[i] == StopMarker }
	for i := 0; i < len(tags); i++ {
		if stop(i) {
			th.link(Halt)
			th.state = threadStopped
			continue
		}
		tag := tags[i]
		if !tag.IsCommand() {
			continue
		}
		th.link(LocOf(tag))
		for i+1 < len(tags) && tags[i+1] == tag && !stop(i+1) {
			i++
		}
	}
	th.link(Halt)

	if fragmented {
		g.Fragments = fragmentStarts(src, tags)
	}
	return g
}

type threadState uint8

const (
	threadStart threadState = iota
	threadLinked
	threadStopped
)

// threader tracks the last occurrence seen, whose successor slot receives
// the next location threaded.
type threader struct {
	g     *Graph
	state threadState
	last  Loc
}

func (th *threader) link(loc Loc) {
	switch th.state {
	case threadStart:
		th.g.Start = loc
	case threadLinked:
		th.g.Commands[th.last.Cmd][SlotAfter(th.last.Role)] = loc
	}
	if loc.IsHalt() {
		th.state = threadStopped
	} else {
		th.state, th.last = threadLinked, loc
	}
}

// fragmentStarts finds, for every start marker, the first command occurrence
// at or after it; a stop marker reached first makes the fragment empty.
func fragmentStarts(src []byte, tags []lexer.Tag) []Loc {
	var starts []Loc
	for i, b := range src {
		if b != StartMarker {
			continue
		}
		start := Halt
		for j := i; j < len(src); j++ {
			if src[j] == StopMarker {
				break
			}
			if tags[j].IsCommand() {
				start = LocOf(tags[j])
				break
			}
		}
		starts = append(starts, start)
	}
	return starts
}
