// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "sync"

// A Plan describes the layout of a QR code of a specific version:
// which pixels are function pixels and the values of the fixed ones.
// Pixels are stored row by row, (x, y) at index y*Size+x.
type Plan struct {
	Version Version // QR code version
	Size    int     // number of pixels on a side

	Map     []bool // pixel map: false is data or checksum, true is other
	Pattern []bool // timing, position and alignment boxes; true is black
}

// NewPlan returns a Plan for a QR code with the given version.
// The returned Plan is a copy and may be modified by the caller.
func NewPlan(v Version) (*Plan, error) {
	pp, err := makePlan(v)
	if err != nil {
		return nil, err
	}
	p := *pp
	p.Map = append([]bool(nil), pp.Map...)
	p.Pattern = append([]bool(nil), pp.Pattern...)
	return &p, nil
}

// Pre-allocated Plans.  A Plan is created the first time a version is
// used and never modified afterwards.
var plans [MaxVersion + 1]struct {
	once sync.Once
	p    *Plan
}

// makePlan returns plans[v].  If it doesn't exist, it is created.
func makePlan(v Version) (*Plan, error) {
	if !v.IsValid() {
		return nil, ErrVersion
	}
	p := &plans[v]
	p.once.Do(func() { p.p = vplan(v) })
	return p.p, nil
}

// set marks (x, y) as a function pixel with the given colour.
func (p *Plan) set(x, y int, black bool) {
	i := y*p.Size + x
	p.Map[i] = true
	p.Pattern[i] = black
}

// vplan creates a Plan for the given version.
func vplan(v Version) *Plan {
	siz := v.Size()
	p := &Plan{
		Version: v,
		Size:    siz,
		Map:     make([]bool, siz*siz),
		Pattern: make([]bool, siz*siz),
	}

	// Timing markers (partly overwritten by boxes).
	for i := 0; i < siz; i++ {
		p.set(6, i, i&1 == 0)
		p.set(i, 6, i&1 == 0)
	}

	// Position boxes with separators, 9x9 centred on the box centre
	// and clipped at the edges.
	for _, c := range [3][2]int{{3, 3}, {siz - 4, 3}, {3, siz - 4}} {
		for dy := -4; dy <= 4; dy++ {
			for dx := -4; dx <= 4; dx++ {
				x, y := c[0]+dx, c[1]+dy
				if 0 <= x && x < siz && 0 <= y && y < siz {
					d := max(abs(dx), abs(dy))
					p.set(x, y, d != 2 && d != 4)
				}
			}
		}
	}

	// Alignment boxes, except where they would overlap position boxes.
	pos := v.AlignPositions()
	last := len(pos) - 1
	for i, y := range pos {
		for j, x := range pos {
			if i == 0 && j == 0 || i == 0 && j == last ||
				i == last && j == 0 {
				continue
			}
			for dy := -2; dy <= 2; dy++ {
				for dx := -2; dx <= 2; dx++ {
					p.set(x+dx, y+dy, max(abs(dx), abs(dy)) != 1)
				}
			}
		}
	}

	// Format pixels, written after masking.
	formatPixels(siz, func(_, x, y int) { p.set(x, y, false) })
	// One lonely black pixel
	p.set(8, siz-8, true)

	// Version pattern, written after masking.
	if v >= 7 {
		versionPixels(siz, func(_, x, y int) { p.set(x, y, false) })
	}
	return p
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// formatPixels calls fn for each bit i of both copies of the 15 bit
// format information and its pixel coordinates.  Bit 0 is the least
// significant.
func formatPixels(siz int, fn func(i, x, y int)) {
	// Around the top left position box.
	for i := 0; i < 6; i++ {
		fn(i, 8, i)
	}
	fn(6, 8, 7)
	fn(7, 8, 8)
	fn(8, 7, 8)
	for i := 9; i < 15; i++ {
		fn(i, 14-i, 8)
	}
	// Split between top right and bottom left.
	for i := 0; i < 8; i++ {
		fn(i, siz-1-i, 8)
	}
	for i := 8; i < 15; i++ {
		fn(i, 8, siz-15+i)
	}
}

// versionPixels calls fn for each bit i of both copies of the 18 bit
// version information and its pixel coordinates: a 3x6 block left of
// the top right position box and a 6x3 block above the bottom left one.
func versionPixels(siz int, fn func(i, x, y int)) {
	for i := 0; i < 18; i++ {
		a, b := siz-11+i%3, i/3
		fn(i, a, b)
		fn(i, b, a)
	}
}

// Serialise writes bits from s to data pixels of the bitmap in zigzag
// scan order: two pixel wide columns from right to left, skipping the
// vertical timing strip, alternately upwards and downwards, the right
// pixel of each pair first.  Pixels left when s is exhausted are white.
func (p *Plan) Serialise(s BitStream, bitmap []bool) {
	siz := p.Size
	for right := siz - 1; right >= 1; right -= 2 {
		if right == 6 { // vertical timing strip
			right = 5
		}
		up := (right+1)&2 == 0
		for vert := 0; vert < siz; vert++ {
			y := vert
			if up {
				y = siz - 1 - vert
			}
			for x := right; x > right-2; x-- {
				if i := y*siz + x; !p.Map[i] {
					bitmap[i] = s.Next()
				}
			}
		}
	}
}
