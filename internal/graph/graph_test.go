package graph_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/incident/internal/graph"
	"github.com/jcorbin/incident/internal/lexer"
)

func loc(cmd int, role lexer.Role) graph.Loc { return graph.Loc{Cmd: cmd, Role: role} }

var (
	push0 = lexer.PushZero
	pop   = lexer.Pop
	push1 = lexer.PushOne
	halt  = graph.Halt
)

func build(t *testing.T, src string, fragmented bool) *graph.Graph {
	an, err := lexer.Analyze([]byte(src))
	require.NoError(t, err, "must analyze %q", src)
	return graph.Build([]byte(src), an.Tags, an.Count(), fragmented)
}

func TestBuild(t *testing.T) {
	for _, tc := range []struct {
		name       string
		src        string
		fragmented bool
		want       *graph.Graph
	}{
		{
			name: "empty",
			src:  "",
			want: &graph.Graph{Start: halt, Commands: []graph.Command{}},
		},

		{
			name: "single command",
			src:  "abcabcabc",
			want: &graph.Graph{
				Start: loc(0, push0),
				Commands: []graph.Command{
					{graph.OnPopZero: loc(0, pop), graph.OnPopOne: halt, graph.OnPush: loc(0, push1)},
				},
			},
		},

		{
			name: "two commands in sequence",
			src:  "ab1ab2ab3bc4bc5bc",
			want: &graph.Graph{
				Start: loc(0, push0),
				Commands: []graph.Command{
					{graph.OnPopZero: loc(0, pop), graph.OnPopOne: loc(1, push0), graph.OnPush: loc(0, push1)},
					{graph.OnPopZero: loc(1, pop), graph.OnPopOne: halt, graph.OnPush: loc(1, push1)},
				},
			},
		},

		{
			name: "interleaved commands",
			src:  "ab1cd2ab3cd4ab5cd",
			want: &graph.Graph{
				Start: loc(0, push0),
				Commands: []graph.Command{
					{graph.OnPopZero: loc(1, push0), graph.OnPopOne: loc(1, push1), graph.OnPush: loc(1, pop)},
					{graph.OnPopZero: loc(0, pop), graph.OnPopOne: halt, graph.OnPush: loc(0, push1)},
				},
			},
		},

		{
			name:       "markers ignored outside fragment mode",
			src:        "ab1ab$ab",
			fragmented: false,
			want: &graph.Graph{
				Start: loc(0, push0),
				Commands: []graph.Command{
					{graph.OnPopZero: loc(0, pop), graph.OnPopOne: halt, graph.OnPush: loc(0, push1)},
				},
			},
		},

		{
			name:       "stop marker breaks the thread",
			src:        "^ab1ab$ab",
			fragmented: true,
			want: &graph.Graph{
				Start: loc(0, push0),
				Commands: []graph.Command{
					{graph.OnPopZero: loc(0, pop), graph.OnPopOne: halt, graph.OnPush: halt},
				},
				Fragments: []graph.Loc{loc(0, push0)},
			},
		},

		{
			name:       "empty fragment",
			src:        "^$ab1ab2ab",
			fragmented: true,
			want: &graph.Graph{
				Start: halt,
				Commands: []graph.Command{
					{graph.OnPopZero: loc(0, pop), graph.OnPopOne: halt, graph.OnPush: loc(0, push1)},
				},
				Fragments: []graph.Loc{halt},
			},
		},

		{
			name:       "several fragments",
			src:        "^ab1ab$^2ab",
			fragmented: true,
			want: &graph.Graph{
				Start: loc(0, push0),
				Commands: []graph.Command{
					{graph.OnPopZero: loc(0, pop), graph.OnPopOne: halt, graph.OnPush: halt},
				},
				Fragments: []graph.Loc{loc(0, push0), loc(0, push1)},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g := build(t, tc.src, tc.fragmented)
			if diff := cmp.Diff(tc.want, g); diff != "" {
				t.Errorf("unexpected graph of %q (-want +got):\n%s", tc.src, diff)
			}
		})
	}
}

func TestBuild_stopInsideOccurrence(t *testing.T) {
	// a hand tagged single command whose middle occurrence contains a stop
	src := []byte("aa" + "a$a" + "aa")
	c := func(role lexer.Role) lexer.Tag { return lexer.CommandTag(0, role) }
	tags := []lexer.Tag{
		c(push0), c(push0),
		c(pop), c(pop), c(pop),
		c(push1), c(push1),
	}
	g := graph.Build(src, tags, 1, true)
	assert.Equal(t, loc(0, push0), g.Start)
	assert.Equal(t, graph.Command{
		graph.OnPopZero: loc(0, pop),
		graph.OnPopOne:  halt,
		graph.OnPush:    loc(0, push1),
	}, g.Commands[0], "expected threading to resume after the stop marker")
}

func TestSlotAfter(t *testing.T) {
	assert.Equal(t, graph.OnPopZero, graph.SlotAfter(push0))
	assert.Equal(t, graph.OnPush, graph.SlotAfter(pop))
	assert.Equal(t, graph.OnPopOne, graph.SlotAfter(push1))
}

func TestLoc_String(t *testing.T) {
	assert.Equal(t, "halt", halt.String())
	assert.Equal(t, "2:pop", loc(2, pop).String())
	assert.True(t, halt.IsHalt())
	assert.False(t, loc(0, push0).IsHalt())
}
