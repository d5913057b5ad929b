// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package split splits strings into QR code segments.

All text is stored in byte mode.  A Charset decides which bytes
represent the text: UTF8 stores the string as is, other Charsets
convert UTF-8 input to an eight bit encoding first.
*/
package split // import "github.com/unixdj/qrenc/split"

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"

	"github.com/unixdj/qrenc/coding"
)

// QR error correction levels.
const (
	L = coding.L // 20% redundant
	M = coding.M // 38% redundant
	Q = coding.Q // 55% redundant
	H = coding.H // 65% redundant
)

// ErrNotEncodable is returned when text contains characters the
// Charset cannot represent.
var ErrNotEncodable = errors.New("qr: text not encodable in given charset")

// A Charset converts text to the bytes stored in a byte mode segment.
type Charset interface {
	// Bytes returns the encoded form of s.
	Bytes(s string) (string, error)
}

// Predefined Charsets.
var (
	// UTF8 stores strings unchanged.  The input need not be valid
	// UTF-8.
	UTF8 Charset = utf8Charset{}

	// Latin1 converts UTF-8 input to ISO 8859-1.  Characters above
	// U+00FF are not encodable.
	Latin1 Charset = EncodingCharset{charmap.ISO8859_1}

	// ShiftJIS converts UTF-8 input to Shift JIS, stored as bytes.
	ShiftJIS Charset = EncodingCharset{japanese.ShiftJIS}
)

type utf8Charset struct{}

func (utf8Charset) Bytes(s string) (string, error) { return s, nil }

// An EncodingCharset converts UTF-8 input with an x/text Encoding.
type EncodingCharset struct {
	encoding.Encoding
}

func (c EncodingCharset) Bytes(s string) (string, error) {
	b, err := c.NewEncoder().String(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotEncodable, err)
	}
	return b, nil
}

// Text returns the segments for s converted with cs.  A nil Charset
// means UTF8.  Empty text yields no segments: the QR code then holds
// only the terminator and padding.
func Text(s string, cs Charset) ([]coding.Segment, error) {
	if cs == nil {
		cs = UTF8
	}
	b, err := cs.Bytes(s)
	if err != nil {
		return nil, err
	}
	if b == "" {
		return nil, nil
	}
	return []coding.Segment{{Text: b, Mode: coding.Byte}}, nil
}

// Length returns the encoded length of segs in bits in a QR code of
// version v.
func Length(segs []coding.Segment, v coding.Version) int {
	return coding.EncodedLength(v, segs...)
}

// Split converts s with cs and returns the segments and the smallest
// version that holds them at the given level.
func Split(s string, cs Charset, level coding.Level) ([]coding.Segment, coding.Version, error) {
	segs, err := Text(s, cs)
	if err != nil {
		return nil, 0, err
	}
	v, err := coding.FitVersion(level, segs...)
	if err != nil {
		return nil, 0, err
	}
	return segs, v, nil
}
