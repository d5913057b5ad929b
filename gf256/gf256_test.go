// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var qrField = NewField(0x11d, 2)

func TestFieldTables(t *testing.T) {
	t.Parallel()
	f := qrField
	for x := 1; x < 256; x++ {
		b := byte(x)
		require.Equal(t, b, f.Exp(f.Log(b)), "exp(log(%d))", x)
		assert.Equal(t, byte(1), f.Mul(b, f.Inv(b)), "%d * inv(%d)", x, x)
		assert.Equal(t, byte(mul(x, 7, 0x11d)), f.Mul(b, 7))
	}
	assert.Equal(t, -1, f.Log(0))
	assert.Equal(t, byte(0), f.Inv(0))
	assert.Equal(t, byte(0), f.Mul(0, 93))
	assert.Equal(t, byte(0), f.Exp(-1))
	assert.Equal(t, byte(1), f.Exp(255))
	assert.Equal(t, byte(0x1d), f.Exp(8))
	assert.Equal(t, byte(0x5a), f.Add(0x0f, 0x55))
}

func TestNewFieldInvalid(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewField(0x1d, 2) })
	// x^8+1 is reducible: x has order 8.
	assert.Panics(t, func() { NewField(0x101, 2) })
}

func TestGen(t *testing.T) {
	t.Parallel()
	// Exponents of the degree 7 generator coefficients.
	want := []int{0, 87, 229, 146, 149, 238, 102, 21}
	g := qrField.Gen(7)
	require.Len(t, g, 8)
	for i, v := range g {
		assert.Equal(t, want[i], qrField.Log(v), "coefficient %d", i)
	}
	assert.Same(t, &g[0], &qrField.Gen(7)[0], "generator not cached")

	// Every generator has roots α^0 .. α^(degree-1).
	for _, degree := range []int{7, 10, 13, 17, 22, 26, 28, 30} {
		g := qrField.Gen(degree)
		for i := 0; i < degree; i++ {
			assert.Zero(t, eval(qrField, g, qrField.Exp(i)),
				"degree %d root %d", degree, i)
		}
	}
	assert.Panics(t, func() { qrField.Gen(0) })
}

// eval evaluates polynomial p, highest power first, at x.
func eval(f *Field, p []byte, x byte) byte {
	var y byte
	for _, c := range p {
		y = f.Mul(y, x) ^ c
	}
	return y
}

func TestECC(t *testing.T) {
	t.Parallel()
	// Version 1-M "HELLO WORLD".
	data := []byte{32, 91, 11, 120, 209, 114, 220, 77, 67, 64,
		236, 17, 236, 17, 236, 17}
	want := []byte{196, 35, 39, 119, 235, 215, 231, 226, 93, 23}
	check := make([]byte, 10)
	NewRSEncoder(qrField, 10).ECC(data, check)
	assert.Equal(t, want, check)

	// Reusing the check buffer gives the same result.
	NewRSEncoder(qrField, 10).ECC(data, check)
	assert.Equal(t, want, check)

	assert.Panics(t, func() {
		NewRSEncoder(qrField, 10).ECC(data, make([]byte, 9))
	})
}

func TestECCSyndromes(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct{ ndata, ncheck int }{
		{19, 7}, {1, 7}, {55, 20}, {15, 30}, {118, 30},
	} {
		data := make([]byte, tc.ndata)
		for i := range data {
			data[i] = byte(i*37 + 11)
		}
		check := make([]byte, tc.ncheck)
		NewRSEncoder(qrField, tc.ncheck).ECC(data, check)
		cw := append(append([]byte{}, data...), check...)
		for i := 0; i < tc.ncheck; i++ {
			assert.Zero(t, eval(qrField, cw, qrField.Exp(i)),
				"%d+%d: syndrome %d", tc.ndata, tc.ncheck, i)
		}
	}
}

func BenchmarkECC(b *testing.B) {
	data := make([]byte, 118)
	check := make([]byte, 30)
	rs := NewRSEncoder(qrField, 30)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		rs.ECC(data, check)
	}
}
