// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"math/bits"
	"strconv"
)

// A Mask describes a mask that is applied to the data pixels of a QR
// code to avoid patterns that confuse scanners.  Valid masks are
// integers from 0 to 7.  AutoMask selects the mask with the lowest
// penalty.
type Mask int

const AutoMask Mask = -1

// Number of mask patterns.
const NumMasks = 8

// Mask patterns, inverting pixels where the formula holds:
//
//	0: ▄▀▄▀▄▀▄▀▄▀▄▀  1: ▄▄▄▄▄▄▄▄▄▄▄▄  2:  ██ ██ ██ ██  3: ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//
//	4:    ███   ███  5:  ▄▄▄▄▄ ▄▄▄▄▄  6:    ▄▄▄   ▄▄▄  7: ▄█▄▀ ▀▄█▄▀ ▀
//	   ███   ███         █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	      ███   ███      ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
var maskFunc = [NumMasks]func(x, y int) bool{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(_, y int) bool { return y%2 == 0 },
	func(x, _ int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (y/2+x/3)%2 == 0 },
	func(x, y int) bool { return x*y%2+x*y%3 == 0 },
	func(x, y int) bool { return (x*y%2+x*y%3)%2 == 0 },
	func(x, y int) bool { return ((x+y)%2+x*y%3)%2 == 0 },
}

func (m Mask) String() string { return strconv.Itoa(int(m)) }

// IsValid reports whether m is one of the 8 mask patterns.
func (m Mask) IsValid() bool { return 0 <= m && m < NumMasks }

// Invert reports whether the mask inverts the pixel at (x, y).
func (m Mask) Invert(x, y int) bool { return maskFunc[m](x, y) }

// apply xors mask m into the data pixels of bitmap.  Function pixels
// are left alone.  Applying a mask twice restores the bitmap.
func (m Mask) apply(bitmap, fmap []bool, siz int) {
	f := maskFunc[m]
	for y := 0; y < siz; y++ {
		row, frow := bitmap[y*siz:(y+1)*siz], fmap[y*siz:(y+1)*siz]
		for x := range row {
			if !frow[x] && f(x, y) {
				row[x] = !row[x]
			}
		}
	}
}

// Penalty rules.  Total penalty is the sum of penalties for runs and
// boxes of same-colour pixels, finder-like patterns and colour balance.
//
//   - RunP: for each row or column run of n >= 5 pixels -> 3 + (n-5)
//   - BoxP: for possibly overlapping 2x2 boxes -> 3
//   - FindP: for each 1011101 pattern in a row or column -> 40
//   - BalP: 10 for every full 5% the share of black pixels is off 50%
const (
	MinRun = 5  // RunP:  minimum run length
	RunPP  = 3  // RunP:  points for a run of MinRun
	BoxPP  = 3  // BoxP:  points per box
	FindPP = 40 // FindP: points per pattern
	BalPP  = 10 // BalP:  points per 5% step
)

// finder-like pattern, 1:1:3:1:1
var findPat = [...]bool{true, false, true, true, true, false, true}

// Penalty returns the penalty value of the bitmap of a QR code with
// the given size.  The value is used for choosing the mask.
func Penalty(bitmap []bool, siz int) int {
	p := 0
	line := make([]bool, siz)
	for y := 0; y < siz; y++ {
		p += linePenalty(bitmap[y*siz : (y+1)*siz])
	}
	for x := 0; x < siz; x++ {
		for y := range line {
			line[y] = bitmap[y*siz+x]
		}
		p += linePenalty(line)
	}

	// BoxP, counted at the top left pixel of each box.
	black := 0
	for y := 0; y < siz; y++ {
		row := bitmap[y*siz : (y+1)*siz]
		for x, c := range row {
			if c {
				black++
			}
			if y+1 < siz && x+1 < siz {
				next := bitmap[(y+1)*siz+x:]
				if row[x+1] == c && next[0] == c && next[1] == c {
					p += BoxPP
				}
			}
		}
	}

	// BalP: k = floor(|100*black/total - 50| / 5)
	total := siz * siz
	k := (black*20 - total*10) / total
	return p + abs(k)*BalPP
}

// linePenalty returns RunP and FindP for a row or column.
func linePenalty(line []bool) int {
	p := 0
	r := 1
	for i := 1; i <= len(line); i++ {
		if i < len(line) && line[i] == line[i-1] {
			r++
			continue
		}
		if r >= MinRun {
			p += RunPP + r - MinRun
		}
		r = 1
	}
Find:
	for i := 0; i+len(findPat) <= len(line); i++ {
		for j, c := range findPat {
			if line[i+j] != c {
				continue Find
			}
		}
		p += FindPP
	}
	return p
}

// Format and version information BCH codes.
const (
	formatPoly  = 0x537  // x^10 + x^8 + x^5 + x^4 + x^2 + x + 1
	formatMask  = 0x5412 // xored into format bits
	versionPoly = 0x1f25 // x^12 + x^11 + x^10 + x^9 + x^8 + x^5 + x^2 + 1
)

// FormatBits returns the 15 bit format information for level l and
// mask m: the 2 bit level code and 3 bit mask protected by a (15,5)
// BCH code and xored with 0x5412.
func FormatBits(l Level, m Mask) uint16 {
	fb := uint16(l.FormatCode()<<3|int(m)&7) << 10
	rem := fb
	for i := 14; i >= 10; i-- {
		if rem>>i&1 != 0 {
			rem ^= formatPoly << (i - 10)
		}
	}
	return (fb | rem) ^ formatMask
}

// DecodeFormat returns the level and mask encoded in the format
// information fb, correcting errors, and the number of bits that
// differ from the nearest valid format information.  Up to 3 errors
// can be corrected.
func DecodeFormat(fb uint16) (Level, Mask, int) {
	bestL, bestM, bestD := L, Mask(0), 16
	for l := L; l <= H; l++ {
		for m := Mask(0); m < NumMasks; m++ {
			d := bits.OnesCount16(FormatBits(l, m) ^ fb&0x7fff)
			if d < bestD {
				bestL, bestM, bestD = l, m, d
			}
		}
	}
	return bestL, bestM, bestD
}

// VersionBits returns the 18 bit version information for version v:
// the 6 bit version protected by an (18,6) BCH code.
func VersionBits(v Version) uint32 {
	vb := uint32(v) << 12
	rem := vb
	for i := 17; i >= 12; i-- {
		if rem>>i&1 != 0 {
			rem ^= versionPoly << (i - 12)
		}
	}
	return vb | rem
}
