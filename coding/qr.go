// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "golang.org/x/sync/errgroup"

// A Symbol is a finished QR code: a square grid of pixels and the
// parallel grid of function pixel flags.  Pixels are stored row by
// row, (x, y) at index y*Size+x.
type Symbol struct {
	Version Version // QR code version
	Level   Level   // QR error correction level
	Mask    Mask    // applied mask
	Size    int     // number of pixels on a side

	Modules   []bool // true is black
	Function  []bool // true for function pixels, which masks skip
	Codewords []byte // data and check bytes in transmission order
}

// Black reports whether the pixel at (x, y) is black.
// Pixels outside the grid are white.
func (s *Symbol) Black(x, y int) bool {
	return 0 <= x && x < s.Size && 0 <= y && y < s.Size &&
		s.Modules[y*s.Size+x]
}

// IsFunction reports whether the pixel at (x, y) is a function pixel.
func (s *Symbol) IsFunction(x, y int) bool {
	return 0 <= x && x < s.Size && 0 <= y && y < s.Size &&
		s.Function[y*s.Size+x]
}

// Penalty returns the penalty value of s.
func (s *Symbol) Penalty() int { return Penalty(s.Modules, s.Size) }

// Clone returns a deep copy of s.
func (s *Symbol) Clone() *Symbol {
	c := *s
	c.Modules = append([]bool(nil), s.Modules...)
	c.Function = append([]bool(nil), s.Function...)
	c.Codewords = append([]byte(nil), s.Codewords...)
	return &c
}

// Format returns both copies of the format information read from s.
func (s *Symbol) Format() [2]uint16 {
	var fb [2]uint16
	n := 0
	formatPixels(s.Size, func(i, x, y int) {
		if s.Black(x, y) {
			fb[n/15] |= 1 << i
		}
		n++
	})
	return fb
}

// drawFormat writes format information for s.Level and s.Mask.
func (s *Symbol) drawFormat() {
	fb := FormatBits(s.Level, s.Mask)
	formatPixels(s.Size, func(i, x, y int) {
		s.Modules[y*s.Size+x] = fb>>i&1 != 0
	})
}

// drawVersion writes version information for versions 7 and up.
func (s *Symbol) drawVersion() {
	if s.Version < 7 {
		return
	}
	vb := VersionBits(s.Version)
	versionPixels(s.Size, func(i, x, y int) {
		s.Modules[y*s.Size+x] = vb>>i&1 != 0
	})
}

// ApplyMask xors mask m into the data pixels of s.  Applying the same
// mask again restores s.  It does not update s.Mask.
func (s *Symbol) ApplyMask(m Mask) {
	m.apply(s.Modules, s.Function, s.Size)
}

// bestMask returns the mask with the lowest penalty for the unmasked
// symbol s.  Masks are scored concurrently, each on a private copy of
// the pixels; on equal penalties the lower mask wins.
func (s *Symbol) bestMask() Mask {
	var pen [NumMasks]int
	var g errgroup.Group
	for m := Mask(0); m < NumMasks; m++ {
		g.Go(func() error {
			bitmap := append([]bool(nil), s.Modules...)
			m.apply(bitmap, s.Function, s.Size)
			pen[m] = Penalty(bitmap, s.Size)
			return nil
		})
	}
	_ = g.Wait() // scorers never fail
	best := Mask(0)
	for m := Mask(1); m < NumMasks; m++ {
		if pen[m] < pen[best] {
			best = m
		}
	}
	return best
}

// Layout returns the unmasked symbol for segs encoded at the given
// version and level: function patterns are drawn, format and version
// information areas are white, the data pixels hold the codewords.
func Layout(v Version, l Level, segs ...Segment) (*Symbol, error) {
	p, err := makePlan(v)
	if err != nil {
		return nil, err
	}
	if !l.IsValid() {
		return nil, ErrLevel
	}
	if n, nb := EncodedLength(v, segs...), v.DataBits(l); n > nb {
		return nil, &CapacityError{n, nb, v, l}
	}
	b := NewBits(v)
	for _, t := range segs {
		if err := t.Encode(b, v); err != nil {
			return nil, err
		}
	}
	b.AddCheckBytes(v, l)
	bits := b.Permute(v, l)

	s := &Symbol{
		Version:   v,
		Level:     l,
		Mask:      AutoMask,
		Size:      p.Size,
		Modules:   append([]bool(nil), p.Pattern...),
		Function:  append([]bool(nil), p.Map...),
		Codewords: bits.Bytes(),
	}
	p.Serialise(bits, s.Modules)
	return s, nil
}

// EncodeMask encodes segs into a QR code with the given version, level
// and mask.  If mask is AutoMask, the mask with the lowest penalty is
// used.
func EncodeMask(v Version, l Level, mask Mask, segs ...Segment) (*Symbol, error) {
	if mask != AutoMask && !mask.IsValid() {
		return nil, ErrMask
	}
	s, err := Layout(v, l, segs...)
	if err != nil {
		return nil, err
	}
	if mask == AutoMask {
		mask = s.bestMask()
	}
	s.ApplyMask(mask)
	s.Mask = mask
	s.drawFormat()
	s.drawVersion()
	return s, nil
}

// Encode encodes segs into a QR code with the given version and level.
func Encode(v Version, l Level, segs ...Segment) (*Symbol, error) {
	return EncodeMask(v, l, AutoMask, segs...)
}
