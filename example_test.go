// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr_test

import (
	"fmt"
	"log"
	"os"

	qr "github.com/unixdj/qrenc"
)

func ExampleEncode() {
	c, err := qr.Encode("HELLO", qr.L)
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Printf("version %v, %dx%d pixels\n", c.Version, c.Size, c.Size)
	// Output:
	// version 1, 21x21 pixels
}

func ExampleCode_Raster() {
	c, err := qr.Encode("https://example.com/", qr.M)
	if err != nil {
		log.Fatalln(err)
	}
	img, err := c.Raster(4, 4)
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Println(img.Bounds().Dx(), img.Bounds().Dy(), img.GrayAt(0, 0).Y)
	// Output:
	// 132 132 255
}

func ExampleCode_EncodePBM() {
	c, err := qr.Encode("", qr.H)
	if err != nil {
		log.Fatalln(err)
	}
	c.Scale, c.Border = 1, 0
	if err := c.EncodePBM(os.Stdout); err != nil {
		log.Fatalln(err)
	}
}
