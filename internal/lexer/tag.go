package lexer

import "fmt"

// Role is the part a command occurrence plays, decided by its position among
// the command's three occurrences in the program text.
type Role uint8

// Roles in text order: first, middle, and last occurrence.
const (
	PushZero Role = iota
	Pop
	PushOne
)

var roleNames = [3]string{"push0", "pop", "push1"}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// Tag is the lexical category of one program byte.
//
// Values below FirstCommand classify bytes that belong to no command; all
// higher values encode a (command, role) pair as 3*(command+1) + role.
type Tag int32

const (
	// Noise bytes are not covered by any provisional command.
	Noise Tag = iota

	// Discarded bytes belonged to a single provisional command that was
	// dropped because some other byte of it overlapped.
	Discarded

	// Overlap bytes were covered by more than one provisional occurrence.
	Overlap

	// FirstCommand is the tag of command 0's first occurrence.
	FirstCommand
)

// CommandTag encodes an occurrence of command cmd playing the given role.
func CommandTag(cmd int, role Role) Tag { return Tag(3*(cmd+1)) + Tag(role) }

// IsCommand returns true if t marks an occurrence of a surviving command.
func (t Tag) IsCommand() bool { return t >= FirstCommand }

// Command returns the command id encoded by t; only valid if t.IsCommand().
func (t Tag) Command() int { return int(t)/3 - 1 }

// Role returns the role encoded by t; only valid if t.IsCommand().
func (t Tag) Role() Role { return Role(t % 3) }

func (t Tag) String() string {
	switch {
	case t == Noise:
		return "noise"
	case t == Discarded:
		return "discarded"
	case t == Overlap:
		return "overlap"
	case t.IsCommand():
		return fmt.Sprintf("%d:%v", t.Command(), t.Role())
	}
	return fmt.Sprintf("Tag(%d)", int32(t))
}

// Occurrence is one textual appearance of a repeated substring.
type Occurrence struct {
	Start  int32
	Length int32
}

// End returns the offset just past the occurrence.
func (occ Occurrence) End() int32 { return occ.Start + occ.Length }

func (occ Occurrence) String() string { return fmt.Sprintf("@%d+%d", occ.Start, occ.Length) }
