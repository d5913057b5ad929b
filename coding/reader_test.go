// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"fmt"
	"strings"
)

// Reference reader and scorer used to check symbols independently of
// the encoder's own layout and penalty code.

// readCodewords unmasks s and reads its codewords in transmission
// order, scanning two pixel columns from the right edge and turning
// around at the top and bottom.
func readCodewords(s *Symbol) []byte {
	siz := s.Size
	var out []byte
	var cur byte
	n := 0
	up := true
	for j := siz - 1; j > 0; j -= 2 {
		if j == 6 {
			j--
		}
		for count := 0; count < siz; count++ {
			y := count
			if up {
				y = siz - 1 - count
			}
			for col := 0; col < 2; col++ {
				x := j - col
				if s.IsFunction(x, y) {
					continue
				}
				bit := s.Black(x, y) != s.Mask.Invert(x, y)
				cur <<= 1
				if bit {
					cur |= 1
				}
				if n++; n%8 == 0 {
					out = append(out, cur)
					cur = 0
				}
			}
		}
		up = !up
	}
	return out[:s.Version.TotalBytes()]
}

// deinterleave splits transmitted codewords into blocks, each holding
// its data bytes followed by its check bytes.
func deinterleave(cw []byte, v Version, l Level) [][]byte {
	nblock, check, nd := v.Blocks(l), v.CheckBytes(l), v.DataBytes(l)
	short := nd / nblock
	long := nd % nblock
	blocks := make([][]byte, nblock)
	i := 0
	for col := 0; col <= short; col++ {
		for b := range blocks {
			if col == short && b < nblock-long {
				continue
			}
			blocks[b] = append(blocks[b], cw[i])
			i++
		}
	}
	for col := 0; col < check; col++ {
		for b := range blocks {
			blocks[b] = append(blocks[b], cw[i])
			i++
		}
	}
	return blocks
}

// checkBlock reports whether the block is a valid Reed-Solomon
// codeword with the given number of check bytes: its polynomial
// vanishes at α^0 .. α^(check-1).
func checkBlock(block []byte, check int) bool {
	for i := 0; i < check; i++ {
		x := Field.Exp(i)
		var y byte
		for _, c := range block {
			y = Field.Mul(y, x) ^ c
		}
		if y != 0 {
			return false
		}
	}
	return true
}

// bitReader reads big endian bit fields.
type bitReader struct {
	b   []byte
	pos int
}

func (r *bitReader) read(n int) (int, bool) {
	if r.pos+n > len(r.b)*8 {
		return 0, false
	}
	v := 0
	for i := 0; i < n; i++ {
		v = v<<1 | int(r.b[r.pos>>3]>>(7-r.pos&7)&1)
		r.pos++
	}
	return v, true
}

// decodeSymbol reads back the byte mode text stored in s, verifying
// the check bytes of every block.
func decodeSymbol(s *Symbol) (string, error) {
	v, l := s.Version, s.Level
	cw := readCodewords(s)
	check := v.CheckBytes(l)
	var data []byte
	for i, b := range deinterleave(cw, v, l) {
		if !checkBlock(b, check) {
			return "", fmt.Errorf("block %d: bad check bytes", i)
		}
		data = append(data, b[:len(b)-check]...)
	}
	r := &bitReader{b: data}
	var text strings.Builder
	for {
		mode, ok := r.read(4)
		if !ok || mode == 0 {
			return text.String(), nil
		}
		if mode != int(Byte) {
			return "", fmt.Errorf("unexpected mode %d", mode)
		}
		cl := 8
		if v >= 10 {
			cl = 16
		}
		n, ok := r.read(cl)
		if !ok {
			return "", errors.New("truncated count")
		}
		for i := 0; i < n; i++ {
			c, ok := r.read(8)
			if !ok {
				return "", errors.New("truncated data")
			}
			text.WriteByte(byte(c))
		}
	}
}

// refPenalty scores s pixel by pixel.
func refPenalty(s *Symbol) int {
	siz := s.Size
	lines := make([]string, 0, 2*siz)
	for i := 0; i < siz; i++ {
		var row, col strings.Builder
		for j := 0; j < siz; j++ {
			row.WriteByte("01"[b2i(s.Black(j, i))])
			col.WriteByte("01"[b2i(s.Black(i, j))])
		}
		lines = append(lines, row.String(), col.String())
	}

	p := 0
	for _, line := range lines {
		// runs
		for start := 0; start < len(line); {
			end := start
			for end < len(line) && line[end] == line[start] {
				end++
			}
			if n := end - start; n >= 5 {
				p += 3 + n - 5
			}
			start = end
		}
		// finder-like patterns, possibly overlapping
		for i := range line {
			if strings.HasPrefix(line[i:], "1011101") {
				p += 40
			}
		}
	}

	black := 0
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; x++ {
			c := s.Black(x, y)
			if c {
				black++
			}
			if x+1 < siz && y+1 < siz && s.Black(x+1, y) == c &&
				s.Black(x, y+1) == c && s.Black(x+1, y+1) == c {
				p += 3
			}
		}
	}

	// 10 points for each full 5% away from half black.
	total := siz * siz
	dev := black*100 - total*50
	if dev < 0 {
		dev = -dev
	}
	for k := 1; k*5*total <= dev; k++ {
		p += 10
	}
	return p
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
