// Package bitio provides the bit reservoirs between an Incident program and
// its byte streams. Bits travel least significant first in both directions.
package bitio

import (
	"bufio"
	"io"
)

// Reader reads bits from a byte stream, one byte at a time.
type Reader struct {
	r   io.ByteReader
	cur byte
	n   uint8
}

// NewReader returns a Reader around r, buffering it unless it already
// implements io.ByteReader.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br}
}

// Buffered returns the number of unconsumed bits left from the last byte
// read; ReadBit only touches the underlying stream when this is 0.
func (br *Reader) Buffered() int { return int(br.n) }

// ReadBit returns the next bit, reading a new byte if the reservoir is
// empty; returns io.EOF once the stream is exhausted.
func (br *Reader) ReadBit() (bool, error) {
	if br.n == 0 {
		b, err := br.r.ReadByte()
		if err != nil {
			return false, err
		}
		br.cur, br.n = b, 8
	}
	bit := br.cur&1 != 0
	br.cur >>= 1
	br.n--
	return bit, nil
}

// Reset discards any unconsumed bits.
func (br *Reader) Reset() { br.cur, br.n = 0, 0 }

// Writer assembles bits into bytes for an output stream.
type Writer struct {
	w   WriteFlusher
	cur byte
	n   uint8
}

// NewWriter returns a Writer onto w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: NewWriteFlusher(w)}
}

// WriteBit adds a bit to the reservoir, returning true if it is now full;
// a full reservoir must be emitted before writing more bits.
func (bw *Writer) WriteBit(bit bool) bool {
	if bit {
		bw.cur |= 1 << bw.n
	}
	bw.n++
	return bw.Full()
}

// Full returns true when a whole byte has been assembled.
func (bw *Writer) Full() bool { return bw.n == 8 }

// Pending returns the number of bits assembled so far.
func (bw *Writer) Pending() int { return int(bw.n) }

// Emit writes the assembled byte to the stream and empties the reservoir.
func (bw *Writer) Emit() error {
	b := bw.cur
	bw.Reset()
	_, err := bw.w.Write([]byte{b})
	return err
}

// Reset discards any partially assembled byte.
func (bw *Writer) Reset() { bw.cur, bw.n = 0, 0 }

// Write passes p through to the underlying stream, bypassing the reservoir.
func (bw *Writer) Write(p []byte) (int, error) { return bw.w.Write(p) }

// WriteString passes s through to the underlying stream.
func (bw *Writer) WriteString(s string) (int, error) { return io.WriteString(bw.w, s) }

// Flush flushes the underlying stream; any partial byte stays unwritten.
func (bw *Writer) Flush() error { return bw.w.Flush() }
