// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements arithmetic over the Galois Field GF(256)
// and Reed-Solomon error correction coding.
package gf256 // import "github.com/unixdj/qrenc/gf256"

import (
	"strconv"
	"sync"
)

// A Field represents an instance of GF(256) defined by a specific
// polynomial and generator.
type Field struct {
	log [256]byte // log[0] is unused
	exp [510]byte // exp[i+255] == exp[i]

	gen [256]struct { // generator polynomials by degree
		once sync.Once
		p    []byte
	}
}

// NewField returns a new field corresponding to the polynomial poly
// and generator α.  The Reed-Solomon encoding in QR codes uses
// polynomial 0x11d with generator 2.
//
// NewField panics if poly is not a degree 8 polynomial or α does not
// generate the multiplicative group of the field.
func NewField(poly, α int) *Field {
	if poly < 0x100 || poly >= 0x200 {
		panic("gf256: invalid polynomial: " + strconv.Itoa(poly))
	}
	f := new(Field)
	x := 1
	for i := 0; i < 255; i++ {
		if x == 1 && i != 0 {
			panic("gf256: invalid generator " + strconv.Itoa(α) +
				" for polynomial " + strconv.Itoa(poly))
		}
		f.exp[i] = byte(x)
		f.exp[i+255] = byte(x)
		f.log[x] = byte(i)
		x = mul(x, α, poly)
	}
	f.log[0] = 255
	return f
}

// mul multiplies x and y in the field defined by poly, the slow way.
func mul(x, y, poly int) int {
	z := 0
	for x > 0 {
		if x&1 != 0 {
			z ^= y
		}
		x >>= 1
		y <<= 1
		if y&0x100 != 0 {
			y ^= poly
		}
	}
	return z
}

// Add returns the sum of x and y in the field.
func (f *Field) Add(x, y byte) byte { return x ^ y }

// Exp returns the base-α exponential of e in the field.
// If e < 0, Exp returns 0.
func (f *Field) Exp(e int) byte {
	if e < 0 {
		return 0
	}
	return f.exp[e%255]
}

// Log returns the base-α logarithm of x in the field.
// If x == 0, Log returns -1.
func (f *Field) Log(x byte) int {
	if x == 0 {
		return -1
	}
	return int(f.log[x])
}

// Inv returns the multiplicative inverse of x in the field.
// If x == 0, Inv returns 0.
func (f *Field) Inv(x byte) byte {
	if x == 0 {
		return 0
	}
	return f.exp[255-f.log[x]]
}

// Mul returns the product of x and y in the field.
func (f *Field) Mul(x, y byte) byte {
	if x == 0 || y == 0 {
		return 0
	}
	return f.exp[int(f.log[x])+int(f.log[y])]
}

// Gen returns the Reed-Solomon generator polynomial of the given
// degree, the product of (x - α^i) for 0 <= i < degree, with the
// coefficient of the highest power first.  Polynomials are computed
// once per degree and shared; the caller must not modify the result.
func (f *Field) Gen(degree int) []byte {
	if degree < 1 || degree > 255 {
		panic("gf256: invalid degree: " + strconv.Itoa(degree))
	}
	g := &f.gen[degree]
	g.once.Do(func() {
		p := make([]byte, 1, degree+1)
		p[0] = 1
		for i := 0; i < degree; i++ {
			// p *= x + α^i
			p = append(p, 0)
			for j := len(p) - 1; j > 0; j-- {
				p[j] ^= f.Mul(p[j-1], f.exp[i])
			}
		}
		g.p = p
	})
	return g.p
}

// An RSEncoder computes Reed-Solomon check bytes.
type RSEncoder struct {
	f    *Field
	c    int
	lgen []int // log of generator coefficients, leading 1 dropped
}

// NewRSEncoder returns a new Reed-Solomon encoder
// over the given field and number of error correction bytes.
func NewRSEncoder(f *Field, c int) *RSEncoder {
	gen := f.Gen(c)
	lgen := make([]int, c)
	for i, v := range gen[1:] {
		lgen[i] = f.Log(v)
	}
	return &RSEncoder{f: f, c: c, lgen: lgen}
}

// ECC writes to check the error correcting code bytes
// for data using the given Reed-Solomon parameters.
// The check slice must be exactly c bytes long.
func (rs *RSEncoder) ECC(data []byte, check []byte) {
	if len(check) != rs.c {
		panic("gf256: invalid check byte length")
	}
	if rs.c == 0 {
		return
	}
	clear(check)
	exp := &rs.f.exp
	last := len(check) - 1
	for _, d := range data {
		factor := d ^ check[0]
		copy(check, check[1:])
		check[last] = 0
		if factor == 0 {
			continue
		}
		lf := int(rs.f.log[factor])
		for i, lg := range rs.lgen {
			if lg >= 0 {
				check[i] ^= exp[lf+lg]
			}
		}
	}
}
