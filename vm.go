package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/tools/container/intsets"

	"github.com/jcorbin/incident/internal/bitio"
	"github.com/jcorbin/incident/internal/bitstack"
	"github.com/jcorbin/incident/internal/graph"
	"github.com/jcorbin/incident/internal/lexer"
)

const (
	noAnchor          = -1
	fragmentSeparator = "\n"
)

// VM runs an analyzed Incident program.
type VM struct {
	logfn     func(mess string, args ...interface{})
	in        io.Reader
	out       io.Writer
	trace     bool
	fragments bool
	memLimit  int

	src    []byte
	an     *lexer.Analysis
	g      *graph.Graph
	anchor int

	state
}

// state is everything a run mutates; it is rebuilt by every Run and reset
// before every fragment.
type state struct {
	ip     graph.Loc
	stacks bitstack.Set

	// skips holds a skipKey for every push since the last pop
	skips intsets.Sparse

	input  *bitio.Reader
	output *bitio.Writer

	traceBuf []byte
}

func skipKey(cmd int, bit bool) int {
	if bit {
		return 2*cmd + 1
	}
	return 2 * cmd
}

func (vm *VM) logf(mess string, args ...interface{}) {
	if vm.logfn != nil {
		vm.logfn(mess, args...)
	}
}

func (vm *VM) logAnalysis() {
	if vm.logfn == nil {
		return
	}
	if vm.anchor == noAnchor {
		vm.logf("analyzed %v bytes: %v commands, no anchor", len(vm.src), vm.an.Count())
	} else {
		vm.logf("analyzed %v bytes: %v commands, anchor %v", len(vm.src), vm.an.Count(), vm.anchor)
	}
	for id, triple := range vm.an.Commands {
		first := triple[lexer.PushZero]
		vm.logf("command %v: %v %v %v %q", id,
			triple[lexer.PushZero], triple[lexer.Pop], triple[lexer.PushOne],
			vm.src[first.Start:first.End()])
	}
}

func (vm *VM) begin() {
	vm.state = state{
		input:  bitio.NewReader(vm.in),
		output: bitio.NewWriter(vm.out),
	}
	vm.stacks.Limit = vm.memLimit
	vm.reset()
}

func (vm *VM) reset() {
	vm.ip = graph.Halt
	vm.stacks.Reset(len(vm.g.Commands))
	vm.skips.Clear()
	vm.input.Reset()
	vm.output.Reset()
}

func (vm *VM) run(ctx context.Context) error {
	vm.begin()
	if !vm.fragments {
		vm.exec(ctx, vm.g.Start)
	} else {
		for i, start := range vm.g.Fragments {
			vm.logf("fragment %v start %v", i, start)
			vm.reset()
			vm.exec(ctx, start)
			vm.write(fragmentSeparator)
		}
	}
	if err := vm.output.Flush(); err != nil {
		return streamError{"output", err}
	}
	return nil
}

func (vm *VM) exec(ctx context.Context, start graph.Loc) {
	vm.ip = start
	vm.settle()
	for !vm.ip.IsHalt() {
		vm.haltif(ctx.Err())
		vm.step()
		vm.settle()
	}
	vm.logf("halt")
}

func (vm *VM) step() {
	cmd := vm.ip.Cmd
	switch role := vm.ip.Role; role {
	case lexer.PushZero, lexer.PushOne:
		bit := role == lexer.PushOne
		if !vm.skips.Insert(skipKey(cmd, bit)) {
			vm.jump(vm.g.Commands[cmd].OnPopped(bit), "skip")
			return
		}
		vm.haltif(vm.stacks.Push(cmd, bit))
		if cmd == vm.anchor {
			vm.output.WriteBit(bit)
		}
		vm.jump(vm.g.Next(cmd, graph.OnPush), "push")

	case lexer.Pop:
		vm.skips.Clear()
		if bit, ok := vm.stacks.Pop(cmd); ok {
			vm.jump(vm.g.Commands[cmd].OnPopped(bit), "pop")
			return
		}
		if vm.input.Buffered() == 0 {
			// about to block on input, the user should see all output so far
			if err := vm.output.Flush(); err != nil {
				vm.halt(streamError{"output", err})
			}
		}
		bit, err := vm.input.ReadBit()
		if errors.Is(err, io.EOF) {
			vm.jump(vm.g.Next(cmd, graph.OnPush), "eof")
			return
		} else if err != nil {
			vm.halt(streamError{"input", err})
		}
		vm.jump(vm.g.Commands[cmd].OnPopped(bit), "read")
	}
}

func (vm *VM) jump(next graph.Loc, how string) {
	if vm.logfn != nil {
		vm.logf("exec %v %v stack:%v -> %v", vm.ip, how, vm.stacks.Stack(vm.ip.Cmd).Len(), next)
	}
	vm.ip = next
}

// settle completes a step, drawing the state if tracing and writing any
// completed output byte.
func (vm *VM) settle() {
	if vm.trace {
		vm.drawTrace()
	}
	if vm.output.Full() {
		if vm.trace {
			vm.write(" ")
		}
		if err := vm.output.Emit(); err != nil {
			vm.halt(streamError{"output", err})
		}
	}
	if vm.trace {
		vm.write("\n")
	}
}

func (vm *VM) write(s string) {
	if _, err := vm.output.WriteString(s); err != nil {
		vm.halt(streamError{"output", err})
	}
}

func (vm *VM) halt(err error) {
	if vm.output != nil {
		if ferr := vm.output.Flush(); err == nil && ferr != nil {
			err = streamError{"output", ferr}
		}
	}
	vm.logf("halt error: %v", err)
	panic(haltError{err})
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.halt(err)
	}
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}

func (err haltError) Unwrap() error { return err.error }

// streamError is a failure of the program's input or output stream.
type streamError struct {
	stream string
	error
}

func (err streamError) Error() string {
	return fmt.Sprintf("%v stream error: %v", err.stream, err.error)
}

func (err streamError) Unwrap() error { return err.error }

func isStreamError(err error) bool {
	var se streamError
	return errors.As(err, &se)
}
