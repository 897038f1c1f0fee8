package main

import (
	"github.com/jcorbin/incident/internal/bitstack"
	"github.com/jcorbin/incident/internal/graph"
	"github.com/jcorbin/incident/internal/lexer"
)

const (
	noiseGlyph   = "░"
	currentGlyph = "▶"
	freeGlyph    = "✓"
	skipGlyph    = "✗"
)

// pairGlyphs draws a 2-bit stack, indexed by bottom | top<<1.
var pairGlyphs = [4]string{"⇇", "⇆", "⇄", "⇉"}

// drawTrace writes one glyph per program byte, without a line ending.
func (vm *VM) drawTrace() {
	buf := vm.traceBuf[:0]
	for _, tag := range vm.an.Tags {
		buf = append(buf, vm.traceGlyph(tag)...)
	}
	vm.traceBuf = buf
	if _, err := vm.output.Write(buf); err != nil {
		vm.halt(streamError{"output", err})
	}
}

func (vm *VM) traceGlyph(tag lexer.Tag) string {
	if !tag.IsCommand() {
		return noiseGlyph
	}
	if graph.LocOf(tag) == vm.ip {
		return currentGlyph
	}
	cmd := tag.Command()
	switch tag.Role() {
	case lexer.Pop:
		return stackGlyph(vm.stacks.Stack(cmd))
	case lexer.PushOne:
		return skipGlyphOf(vm.skips.Has(skipKey(cmd, true)))
	default:
		return skipGlyphOf(vm.skips.Has(skipKey(cmd, false)))
	}
}

func skipGlyphOf(occupied bool) string {
	if occupied {
		return skipGlyph
	}
	return freeGlyph
}

func stackGlyph(s *bitstack.Stack) string {
	switch s.Len() {
	case 0:
		return " "
	case 1:
		if s.At(0) {
			return "→"
		}
		return "←"
	case 2:
		i := 0
		if s.At(0) {
			i |= 1
		}
		if s.At(1) {
			i |= 2
		}
		return pairGlyphs[i]
	default:
		if top, _ := s.Top(); top {
			return "↱"
		}
		return "↰"
	}
}
