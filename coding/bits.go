// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"

	"github.com/unixdj/qrenc/gf256"
)

// Bits accumulates a QR code bit stream, most significant bit first.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns Bits with enough capacity for a QR code of the
// given version.
func NewBits(v Version) *Bits {
	return &Bits{b: make([]byte, 0, v.TotalBytes())}
}

func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Bits returns the number of bits written.
func (b *Bits) Bits() int { return b.nbit }

// Bytes returns the bytes written.  It panics if the number of bits
// is not a multiple of 8.
func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Write appends the low nbit bits of v.
func (b *Bits) Write(v uint32, nbit int) {
	for nbit > 0 {
		if b.nbit&7 == 0 {
			b.b = append(b.b, 0)
		}
		free := 8 - b.nbit&7
		n := min(free, nbit)
		b.b[len(b.b)-1] |= byte(v>>(nbit-n)) & (1<<n - 1) << (free - n)
		b.nbit += n
		nbit -= n
	}
}

// Append appends whole bytes.
func (b *Bits) Append(p []byte) {
	if b.nbit&7 == 0 {
		b.b = append(b.b, p...)
		b.nbit += len(p) * 8
		return
	}
	for _, v := range p {
		b.Write(uint32(v), 8)
	}
}

// PadTo adds up to t terminator bits to b, fills the last byte with
// zeros and pads it with alternating 0xec and 0x11 bytes to n bits.
// n must be a multiple of 8.
func (b *Bits) PadTo(t, n int) {
	b.nbit = (min(b.nbit+t, n) + 7) &^ 7
	for len(b.b) < b.nbit>>3 {
		b.b = append(b.b, 0)
	}
	for pad := byte(0xec); len(b.b) < n>>3; pad ^= 0xec ^ 0x11 {
		b.b = append(b.b, pad)
	}
	b.nbit = len(b.b) * 8
}

// AddCheckBytes adds terminator, padding and checksum to b for the
// given QR version and level.  The data is split into blocks, the
// longer ones last, and each block's check bytes are appended in
// block order.
func (b *Bits) AddCheckBytes(v Version, l Level) {
	nb := v.DataBits(l)
	if b.nbit > nb {
		panic("qr: too much data")
	}
	b.PadTo(4, nb)

	nd := v.DataBytes(l)
	nblock, check := v.Blocks(l), v.CheckBytes(l)
	dat := b.b[:nd:nd]
	chk := make([]byte, nblock*check)
	db := nd / nblock
	normal := nblock - nd%nblock // number of short blocks
	rs := gf256.NewRSEncoder(Field, check)
	for i := 0; i < nblock; i++ {
		n := db
		if i >= normal {
			n++
		}
		rs.ECC(dat[:n], chk[i*check:(i+1)*check])
		dat = dat[n:]
	}
	b.Append(chk)

	if len(b.b) != v.TotalBytes() {
		panic("qr: internal error")
	}
}

// interleave writes the nblock blocks of src to dst column by column:
// byte 0 of every block, then byte 1, and so on.  If the length of
// src is not divisible by nblock, the last len(src)%nblock blocks are
// one byte longer; their extra bytes come last.
func interleave(dst, src []byte, nblock int) []byte {
	db := len(src) / nblock
	normal := nblock - len(src)%nblock
	start := func(i int) int { return i*db + max(i-normal, 0) }
	for j := 0; j <= db; j++ {
		for i := 0; i < nblock; i++ {
			if j < db || i >= normal {
				dst = append(dst, src[start(i)+j])
			}
		}
	}
	return dst
}

// Permute returns a BitStream reading data and checksum bits in b
// with blocks interleaved for the given QR code version and level.
func (b *Bits) Permute(v Version, l Level) BitStream {
	src := b.Bytes()
	if len(src) != v.TotalBytes() {
		panic("qr: wrong data length")
	}
	nblock := v.Blocks(l)
	if nblock == 1 {
		return NewBitStream(src)
	}
	nd := v.DataBytes(l)
	dst := make([]byte, 0, len(src))
	dst = interleave(dst, src[:nd], nblock)
	dst = interleave(dst, src[nd:], nblock)
	return NewBitStream(dst)
}

// BitStream reads bits from the underlying buffer.
type BitStream struct {
	b   []byte
	pos int
}

// NewBitStream returns a BitStream reading from b.
func NewBitStream(b []byte) BitStream { return BitStream{b: b} }

// Bytes returns the data underlying s.
func (s *BitStream) Bytes() []byte { return s.b }

// Next returns the next bit from s.
// Past end of buffer Next returns false.
func (s *BitStream) Next() bool {
	i := s.pos >> 3
	if i >= len(s.b) {
		return false
	}
	bit := s.b[i]>>(7&^s.pos)&1 != 0
	s.pos++
	return bit
}

// Byte mode is the only segment encoding mode.
const (
	Byte Mode = 4 // byte mode, any data

	indicatorLen = 4 // mode indicator length in bits
)

// A Mode is a QR segment mode indicator.
type Mode byte

func (m Mode) String() string {
	if m == Byte {
		return "byte"
	}
	return fmt.Sprintf("mode(%d)", byte(m))
}

// countLength lists lengths of the byte mode character count field in
// the three version size classes.
var countLength = [3]int{8, 16, 16}

// A Segment describes a QR code segment: the mode, the character
// count, which is the length of Text, and the data.
type Segment struct {
	Text string // data to encode
	Mode Mode   // encoding mode
}

// ModeError represents a Segment in an unsupported mode.
type ModeError Mode

func (e ModeError) Error() string {
	return fmt.Sprintf("qr: unsupported mode %v", Mode(e))
}

// Count returns the character count of seg.
func (seg Segment) Count() int { return len(seg.Text) }

// EncodedLength returns the encoded length in bits of seg, including
// the header, in a QR code of version v.
func (seg Segment) EncodedLength(v Version) int {
	return indicatorLen + countLength[v.SizeClass()] + len(seg.Text)*8
}

// Encode writes seg encoded for the given QR version to b.
func (seg Segment) Encode(b *Bits, v Version) error {
	if seg.Mode != Byte {
		return ModeError(seg.Mode)
	}
	cl := countLength[v.SizeClass()]
	if seg.Count() >= 1<<cl {
		return fmt.Errorf("%w: %d bytes in version %v segment",
			ErrTooLong, seg.Count(), v)
	}
	b.Write(uint32(seg.Mode), indicatorLen)
	b.Write(uint32(seg.Count()), cl)
	b.Append([]byte(seg.Text))
	return nil
}

// EncodedLength returns the total encoded length in bits of segs in a
// QR code of version v.
func EncodedLength(v Version, segs ...Segment) int {
	n := 0
	for _, s := range segs {
		n += s.EncodedLength(v)
	}
	return n
}

// FitVersion returns the smallest version that can hold segs at level
// l.  If even MaxVersion is too small, it returns a *CapacityError.
func FitVersion(l Level, segs ...Segment) (Version, error) {
	if !l.IsValid() {
		return 0, ErrLevel
	}
	for v := MinVersion; v <= MaxVersion; v++ {
		if EncodedLength(v, segs...) <= v.DataBits(l) {
			return v, nil
		}
	}
	return 0, &CapacityError{
		Bits:    EncodedLength(MaxVersion, segs...),
		Max:     MaxVersion.DataBits(l),
		Version: MaxVersion,
		Level:   l,
	}
}
