package frames

// This file contains the hexadecimal export: each row becomes one integer,
// most significant bit first, the way font glyph rows are usually written
// down in C sources.

import (
	"io"
	"math/big"
	"strconv"
	"strings"
)

// RowSeparator follows every encoded row.
const RowSeparator = ", "

// packedWidth is the widest row RowValue holds completely.
const packedWidth = 64

// RowValue packs row y into an integer; x=0 is the most significant of the
// frame's width bits. Rows wider than 64 pixels keep only their rightmost
// 64 pixels; use RowInt for those.
func (f *Frame) RowValue(y int) uint64 {
	var acc uint64
	for x := 0; x < f.width; x++ {
		if f.Pixel(x, y) {
			acc |= 1 << uint(f.width-x-1)
		}
	}
	return acc
}

// RowInt packs row y like RowValue, without a limit on the width.
func (f *Frame) RowInt(y int) *big.Int {
	acc := new(big.Int)
	for x := 0; x < f.width; x++ {
		if f.Pixel(x, y) {
			acc.SetBit(acc, f.width-x-1, 1)
		}
	}
	return acc
}

func appendRow(b []byte, v uint64) []byte {
	b = append(b, "0x"...)
	if v < 0x10 {
		b = append(b, '0')
	}
	b = strconv.AppendUint(b, v, 16)
	return append(b, RowSeparator...)
}

func appendBigRow(b []byte, v *big.Int) []byte {
	b = append(b, "0x"...)
	if v.BitLen() <= 4 {
		b = append(b, '0')
	}
	b = v.Append(b, 16)
	return append(b, RowSeparator...)
}

func (f *Frame) appendEncodedRow(b []byte, y int) []byte {
	if f.width <= packedWidth {
		return appendRow(b, f.RowValue(y))
	}
	return appendBigRow(b, f.RowInt(y))
}

// EncodeRow returns row y as a zero-padded lowercase hexadecimal literal
// followed by RowSeparator, e.g. "0x80, " for an 8-wide row with only the
// leftmost pixel set.
func (f *Frame) EncodeRow(y int) string {
	return string(f.appendEncodedRow(nil, y))
}

// Encode returns all rows of the frame encoded and concatenated in row
// order.
func (f *Frame) Encode() string {
	var b []byte
	for y := 0; y < f.height; y++ {
		b = f.appendEncodedRow(b, y)
	}
	return string(b)
}

// Export returns the text export of all frames: every frame's encoding on
// its own line, each line preceded by a newline.
func (s *Store) Export() string {
	sb := &strings.Builder{}
	s.WriteExport(sb)
	return sb.String()
}

// WriteExport writes the same text as Export to w.
func (s *Store) WriteExport(w io.Writer) error {
	for _, f := range s.frames {
		if _, err := io.WriteString(w, "\n"+f.Encode()); err != nil {
			return err
		}
	}
	return nil
}
