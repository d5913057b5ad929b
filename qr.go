// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR codes.

Text is stored in byte mode segments at the smallest QR version that
holds it at the requested error correction level.  The finished Code
is a bitmap that can be rendered as an image.Image, a grayscale raster,
PNG, PBM or text.
*/
package qr // import "github.com/unixdj/qrenc"

import (
	"errors"
	"image"
	"image/color"
	"strings"

	"github.com/unixdj/qrenc/coding"
	"github.com/unixdj/qrenc/split"
)

var (
	ErrArgs       = errors.New("qr: invalid arguments")
	ErrLargeImage = errors.New("qr: image too large")

	// ErrTooLong is returned, wrapped in a *coding.CapacityError,
	// when text does not fit in a QR code at the requested level.
	ErrTooLong = coding.ErrTooLong
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string { return coding.Level(l).String() }

// Image defaults.
const (
	DefaultScale  = 8 // image pixels per QR pixel
	DefaultBorder = 4 // quiet zone width in QR pixels

	maxPixels = 1 << 15 // maximum image width
)

// Encode returns an encoding of text at the given error correction
// level.  Text is stored as is in a single byte mode segment.
func Encode(text string, level Level) (*Code, error) {
	return EncodeText(text, nil, level, coding.AutoMask)
}

// EncodeText returns an encoding of text converted with cs at the
// given error correction level.  If cs is nil, text is stored as is.
// If mask is coding.AutoMask, the mask with the lowest penalty is
// chosen.
func EncodeText(text string, cs split.Charset, level Level, mask coding.Mask) (*Code, error) {
	segs, v, err := split.Split(text, cs, coding.Level(level))
	if err != nil {
		return nil, err
	}
	s, err := coding.EncodeMask(v, coding.Level(level), mask, segs...)
	if err != nil {
		return nil, err
	}
	return newCode(s), nil
}

// newCode packs the pixels of s into a Code.
func newCode(s *coding.Symbol) *Code {
	siz := s.Size
	stride := (siz + 7) / 8
	c := &Code{
		Bitmap:  make([]byte, stride*siz),
		Size:    siz,
		Stride:  stride,
		Scale:   DefaultScale,
		Border:  DefaultBorder,
		Version: s.Version,
		Level:   Level(s.Level),
		Mask:    s.Mask,
	}
	for y := 0; y < siz; y++ {
		row := c.Bitmap[y*stride:]
		for x := 0; x < siz; x++ {
			if s.Black(x, y) {
				row[x/8] |= 0x80 >> (x & 7)
			}
		}
	}
	return c
}

// A Code is a square pixel grid.
// It implements image.Image and direct PNG encoding.
type Code struct {
	Bitmap  []byte          // 1 is black, 0 is white
	Size    int             // number of pixels on a side
	Stride  int             // number of bytes per row
	Scale   int             // number of image pixels per QR pixel
	Border  int             // quiet zone width in QR pixels
	Reverse bool            // reverse colours
	Palette *[2]color.Color // background and foreground; nil is white and black

	Version coding.Version // QR version
	Level   Level          // error correction level
	Mask    coding.Mask    // applied mask
}

// Black returns true if the pixel at (x,y) is black.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7-x&7)) != 0
}

// isValid reports whether c can be rendered.
func (c *Code) isValid() bool {
	return c != nil && c.Size > 0 && c.Stride == (c.Size+7)/8 &&
		len(c.Bitmap) == c.Stride*c.Size && c.Scale > 0 && c.Border >= 0
}

// pixels returns the image width, or an error if c can't be rendered.
func (c *Code) pixels() (int, error) {
	if !c.isValid() {
		return 0, ErrArgs
	}
	pix := (c.Size + 2*c.Border) * c.Scale
	if pix > maxPixels || pix/c.Scale != c.Size+2*c.Border {
		return 0, ErrLargeImage
	}
	return pix, nil
}

// palette returns the background and foreground colours of c,
// swapped if c.Reverse is set.
func (c *Code) palette() color.Palette {
	pal := color.Palette{color.Gray{0xff}, color.Gray{0x00}}
	if c.Palette != nil {
		pal[0], pal[1] = c.Palette[0], c.Palette[1]
	}
	if c.Reverse {
		pal[0], pal[1] = pal[1], pal[0]
	}
	return pal
}

// Image returns an Image displaying the code.
func (c *Code) Image() image.Image {
	return &codeImage{c, c.palette()}
}

// codeImage implements image.Image
type codeImage struct {
	*Code
	pal color.Palette
}

func (c *codeImage) Bounds() image.Rectangle {
	d := (c.Size + 2*c.Border) * c.Scale
	return image.Rect(0, 0, d, d)
}

func (c *codeImage) At(x, y int) color.Color {
	if x < 0 || y < 0 {
		return c.pal[0]
	}
	if c.Black(x/c.Scale-c.Border, y/c.Scale-c.Border) {
		return c.pal[1]
	}
	return c.pal[0]
}

func (c *codeImage) ColorModel() color.Model {
	return c.pal
}

// Raster returns a grayscale image of the code with scale image
// pixels per QR pixel and a white quiet zone border QR pixels wide.
// Black pixels are 0x00, white are 0xff.  Raster ignores c.Scale,
// c.Border, c.Reverse and c.Palette.
func (c *Code) Raster(scale, border int) (*image.Gray, error) {
	if scale < 1 || border < 0 {
		return nil, ErrArgs
	}
	cc := *c
	cc.Scale, cc.Border = scale, border
	pix, err := cc.pixels()
	if err != nil {
		return nil, err
	}
	img := image.NewGray(image.Rect(0, 0, pix, pix))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	off := border * scale
	for y := 0; y < c.Size; y++ {
		row := img.Pix[(off+y*scale)*img.Stride:]
		for x := 0; x < c.Size; x++ {
			if !c.Black(x, y) {
				continue
			}
			px := row[off+x*scale:]
			for i := 0; i < scale; i++ {
				px[i] = 0
			}
		}
		// Copy the first line of the QR pixel row.
		line := row[:img.Stride]
		for i := 1; i < scale; i++ {
			copy(row[i*img.Stride:(i+1)*img.Stride], line)
		}
	}
	return img, nil
}

// String returns the code drawn with Unicode half blocks, two QR pixels
// per character, with the quiet zone.  White pixels are drawn as
// blocks, for terminals with light text on a dark background; set
// c.Reverse for the opposite.
func (c *Code) String() string {
	bord := max(c.Border, 0)
	blocks := [4]string{"█", "▀", "▄", " "}
	if c.Reverse {
		blocks = [4]string{" ", "▄", "▀", "█"}
	}
	var b strings.Builder
	pix := c.Size + 2*bord
	b.Grow((pix*len("█") + 1) * (pix + 1) / 2)
	for y := -bord; y < c.Size+bord; y += 2 {
		for x := -bord; x < c.Size+bord; x++ {
			n := 0
			if c.Black(x, y) {
				n |= 2
			}
			// The line below the last one is blank.
			if last := y+1 == c.Size+bord; last && !c.Reverse ||
				!last && c.Black(x, y+1) {
				n |= 1
			}
			b.WriteString(blocks[n])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
