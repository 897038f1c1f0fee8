package main

import (
	"io"
	"strings"
)

// VMOption configures a VM; see the With* functions.
type VMOption interface{ apply(vm *VM) }

var defaultOptions = VMOptions(
	withInput(strings.NewReader("")),
	withOutput(io.Discard),
)

// VMOptions combines any number of options into one, applied in order.
func VMOptions(opts ...VMOption) VMOption {
	var flat vmOptions
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case vmOptions:
			flat = append(flat, impl...)
		default:
			flat = append(flat, impl)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return flat
}

type vmOptions []VMOption

func (opts vmOptions) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type traceOption bool
type fragmentsOption bool
type memLimitOption int

func withInput(r io.Reader) inputOption     { return inputOption{r} }
func withOutput(w io.Writer) outputOption   { return outputOption{w} }
func withMemLimit(limit int) memLimitOption { return memLimitOption(limit) }

func (i inputOption) apply(vm *VM)      { vm.in = i.Reader }
func (o outputOption) apply(vm *VM)     { vm.out = o.Writer }
func (t traceOption) apply(vm *VM)      { vm.trace = bool(t) }
func (f fragmentsOption) apply(vm *VM)  { vm.fragments = bool(f) }
func (lim memLimitOption) apply(vm *VM) { vm.memLimit = int(lim) }
