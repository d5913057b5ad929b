// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bufio"
	"io"
	"strconv"
)

// EncodePBM writes a Portable Bit Map image displaying the code to w,
// for use with netpbm.  EncodePBM disregards c.Palette, as other PNM
// formats are not supported.
func (c *Code) EncodePBM(w io.Writer) error {
	pix, err := c.pixels()
	if err != nil {
		return err
	}
	b := bufio.NewWriter(w)
	ls := strconv.Itoa(pix)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}
	// In PBM 1 is black.
	var white byte
	if c.Reverse {
		white = 0xff
	}
	row := make([]byte, (pix+7)/8)
	blank := func() {
		for i := range row {
			row[i] = white
		}
	}
	blank()
	for i := 0; i < c.Scale*c.Border; i++ {
		if _, err := b.Write(row); err != nil {
			return err
		}
	}
	off := c.Scale * c.Border
	for y := 0; y < c.Size; y++ {
		blank()
		for x := 0; x < c.Size; x++ {
			if c.Black(x, y) {
				pbmFill(row, off+x*c.Scale, c.Scale)
			}
		}
		for i := 0; i < c.Scale; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	blank()
	for i := 0; i < c.Scale*c.Border; i++ {
		if _, err := b.Write(row); err != nil {
			return err
		}
	}
	return b.Flush()
}

// pbmFill flips n bits of row starting at bit pos, most significant
// bit first.
func pbmFill(row []byte, pos, n int) {
	for ; n > 0 && pos&7 != 0; n-- {
		row[pos>>3] ^= 0x80 >> (pos & 7)
		pos++
	}
	for ; n >= 8; n -= 8 {
		row[pos>>3] = ^row[pos>>3]
		pos += 8
	}
	for ; n > 0; n-- {
		row[pos>>3] ^= 0x80 >> (pos & 7)
		pos++
	}
}
