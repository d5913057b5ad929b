// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details.
package coding // import "github.com/unixdj/qrenc/coding"

//go:generate sh -c "go run gen.go | gofmt > tables.go"

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/unixdj/qrenc/gf256"
)

var (
	ErrLevel   = errors.New("qr: invalid level")
	ErrVersion = errors.New("qr: invalid version")
	ErrMask    = errors.New("qr: invalid mask")
	ErrTooLong = errors.New("qr: data too long")
)

// CapacityError reports data that does not fit in a QR code.
// It matches ErrTooLong with errors.Is.
type CapacityError struct {
	Bits    int     // encoded data length in bits
	Max     int     // capacity in bits
	Version Version // largest version tried
	Level   Level
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("qr: cannot encode %d bits into %d-bit code "+
		"(version %v, level %v)", e.Bits, e.Max, e.Version, e.Level)
}

func (e *CapacityError) Is(target error) bool { return target == ErrTooLong }

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 pixels on a side.
// Versions run from 1 to 40: the larger the version,
// the more information the code can store.
type Version int

const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string { return strconv.Itoa(int(v)) }

// IsValid reports whether v is a QR version.
func (v Version) IsValid() bool { return MinVersion <= v && v <= MaxVersion }

// Version size classes.  The length of character count fields
// depends on the size class.
const (
	Class0 = iota // QR versions 1 to 9
	Class1        // QR versions 10 to 26
	Class2        // QR versions 27 to 40
)

// SizeClass returns the size class of v, as documented under Class0.
func (v Version) SizeClass() int {
	if v <= 9 {
		return Class0
	}
	if v <= 26 {
		return Class1
	}
	return Class2
}

// Size returns the number of pixels on a side.
func (v Version) Size() int { return int(v)*4 + 17 }

// TotalBytes returns the number of data and check bytes in a QR code
// of version v.
func (v Version) TotalBytes() int { return vtab[v].bytes }

// Blocks returns the number of error correction blocks.
func (v Version) Blocks(l Level) int { return vtab[v].level[l].nblock }

// CheckBytes returns the number of check bytes per block.
func (v Version) CheckBytes(l Level) int { return vtab[v].level[l].check }

// DataBytes returns the number of data bytes that can be
// stored in a QR code with the given version and level.
func (v Version) DataBytes(l Level) int {
	vt := &vtab[v]
	lev := vt.level[l]
	return vt.bytes - lev.nblock*lev.check
}

// DataBits returns the number of data bits that can be
// stored in a QR code with the given version and level.
func (v Version) DataBits(l Level) int { return v.DataBytes(l) * 8 }

// AlignPositions returns the row and column coordinates of alignment
// box centres, in increasing order.  Version 1 has none.  The first
// coordinate is always 6 and the last size-7, the rest are spaced
// evenly backwards from the last with an even step.
func (v Version) AlignPositions() []int {
	if v < 2 {
		return nil
	}
	n := int(v)/7 + 2
	step := 26
	if v != 32 {
		step = (int(v)*4 + n*2 + 1) / (n*2 - 2) * 2
	}
	pos := make([]int, n)
	pos[0] = 6
	for i, p := n-1, v.Size()-7; i > 0; i, p = i-1, p-step {
		pos[i] = p
	}
	return pos
}

// A version describes metadata associated with a version.
type version struct {
	bytes int
	level [4]level
}

type level struct {
	nblock int
	check  int
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string {
	if l.IsValid() {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// IsValid reports whether l is a QR error correction level.
func (l Level) IsValid() bool { return L <= l && l <= H }

// FormatCode returns the 2 bit level indicator stored in format
// information: L=01, M=00, Q=11, H=10.
func (l Level) FormatCode() int { return int(l) ^ 1 }
