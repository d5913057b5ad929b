// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bytes"
	"image"
	"image/png"
	"io"
)

// PNG returns a PNG image displaying the code, or nil if the code
// can't be rendered.
func (c *Code) PNG() []byte {
	var b bytes.Buffer
	if err := c.EncodePNG(&b); err != nil {
		return nil
	}
	return b.Bytes()
}

// EncodePNG writes a PNG image displaying the code to w.  The image
// is a two colour paletted image, stored at one bit per pixel.
func (c *Code) EncodePNG(w io.Writer) error {
	if w == nil {
		return ErrArgs
	}
	img, err := c.paletted()
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}

// paletted renders c as a paletted image: index 1 for black pixels,
// 0 for white ones and the quiet zone.
func (c *Code) paletted() (*image.Paletted, error) {
	pix, err := c.pixels()
	if err != nil {
		return nil, err
	}
	img := image.NewPaletted(image.Rect(0, 0, pix, pix), c.palette())
	scale, off := c.Scale, c.Border*c.Scale
	for y := 0; y < c.Size; y++ {
		row := img.Pix[(off+y*scale)*img.Stride:]
		for x := 0; x < c.Size; x++ {
			if c.Black(x, y) {
				px := row[off+x*scale:]
				for i := 0; i < scale; i++ {
					px[i] = 1
				}
			}
		}
		line := row[:img.Stride]
		for i := 1; i < scale; i++ {
			copy(row[i*img.Stride:(i+1)*img.Stride], line)
		}
	}
	return img, nil
}
