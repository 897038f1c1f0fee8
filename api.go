package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jcorbin/incident/internal/graph"
	"github.com/jcorbin/incident/internal/lexer"
	"github.com/jcorbin/incident/internal/panicerr"
)

// New analyzes program src, returning a VM ready to Run it.
func New(src []byte, opts ...VMOption) (*VM, error) {
	vm := VM{src: src, anchor: noAnchor}
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)

	an, err := lexer.Analyze(src)
	if err != nil {
		return nil, fmt.Errorf("cannot analyze program: %w", err)
	}
	vm.an = an
	if anchor, ok := an.Anchor(); ok {
		vm.anchor = anchor
	}
	vm.g = graph.Build(src, an.Tags, an.Count(), vm.fragments)
	vm.logAnalysis()
	return &vm, nil
}

// Run executes the program until it halts, returning nil for a normal halt.
// Every Run starts from empty stacks; input and output streams carry on
// from any prior Run.
func (vm *VM) Run(ctx context.Context) error {
	err := panicerr.Recover("VM", func() error {
		return vm.run(ctx)
	})
	var halted haltError
	if errors.As(err, &halted) {
		err = halted.error
	}
	return err
}

// WithInput sets the stream that empty stacks pop bits from.
func WithInput(r io.Reader) VMOption { return withInput(r) }

// WithOutput sets the stream that anchor bits, trace lines, and fragment
// separators are written to.
func WithOutput(w io.Writer) VMOption { return withOutput(w) }

// WithTrace enables drawing the machine state after every step.
func WithTrace(enabled bool) VMOption { return traceOption(enabled) }

// WithFragments enables fragment mode, running every ^ to $ section of the
// program separately.
func WithFragments(enabled bool) VMOption { return fragmentsOption(enabled) }

// WithMemLimit bounds the total number of bits held by all stacks; a push
// beyond it fails the run with bitstack.ErrLimit. 0 means no limit.
func WithMemLimit(limit int) VMOption { return withMemLimit(limit) }

// WithLogf sets a debug logging function.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
