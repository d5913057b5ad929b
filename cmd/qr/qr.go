package main

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"

	qr "github.com/unixdj/qrenc"
	"github.com/unixdj/qrenc/coding"
	"github.com/unixdj/qrenc/split"
)

var g = struct {
	scale   int         // scale
	border  int         // quiet zone
	rev     bool        // reverse colours
	fn      string      // filename
	lev     qr.Level    // QR correction level
	mask    coding.Mask // QR mask
	format  int         // output file format
	latin1  bool        // Latin-1 byte mode
	sjis    bool        // Shift JIS byte mode
	verbose bool        // report version, level and mask
}{
	mask: coding.AutoMask,
}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	fmt.Fprint(w, "QR code generator\nUsage: ", cl.Program(), " ",
		cl.UsageLine(), ` [string ...]
If no string is given, data is read from standard input and the final
newline is stripped.  Data is stored in byte mode, by default as is.
Defaults for -l, -s, -m and -t are read from QR_LEVEL, QR_SCALE,
QR_BORDER and QR_FORMAT.

`)
	var b bytes.Buffer
	cl.PrintOptions(&b)
	bb := b.Bytes()
	if n := bytes.Index(bb, []byte(" [-1]")); n > 0 {
		w.Write(bb[:n])
		bb = bb[n+len(" [-1]"):]
	}
	w.Write(bb)
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`qr version 1.0.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2025 Vadim Vygonets`)
	os.Exit(0)
}

var formats = []string{
	"png", "pngi", "PNG", "PNGi", "pbm", "pbmi", "utf8", "utf8i",
	"ascii", "asciii",
}

var encoders = [...]func(*qr.Code, io.Writer) error{
	(*qr.Code).EncodePNG,
	func(c *qr.Code, w io.Writer) error { return png.Encode(w, c.Image()) },
	(*qr.Code).EncodePBM,
	func(c *qr.Code, w io.Writer) error {
		_, err := fmt.Fprint(w, c)
		return err
	},
	ascii,
}

func parseFlags(cfg config) {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.Flag(&g.latin1, '1',
		"convert input from UTF-8 to Latin-1")
	getopt.Flag(&g.sjis, 'j',
		"convert input from UTF-8 to Shift JIS")
	getopt.Flag(&g.verbose, 'v',
		"report QR version, level and mask on standard error")
	g.border = cfg.Border
	getopt.Flag(&g.border, 'm', "quiet zone pixels", "margin")
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output`, "file")
	mask := getopt.Signed('k', -1, &getopt.SignedLimit{0, 8, -1, 7},
		"mask pattern, -1 to choose the best one", "mask")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, cfg.Level,
		"error correction level, lowest to highest", "l|m|q|h")
	scale := getopt.Unsigned('s', uint64(cfg.Scale),
		&(getopt.UnsignedLimit{0, 28, 1, 1 << 12}),
		`image pixels per QR module ("pixel"); `+
			`ignored for types utf8[i] and ascii[i]`, "scale")
	ff := getopt.Enum('t', formats, cfg.Format, `output format, one of: `+
		strings.Join(formats, ", ")+
		`; types with "i" appended have colours inverted; `+
		`"png" writes a one bit paletted image at best compression, `+
		`"PNG" uses the standard encoder defaults; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise png`, "type")

	getopt.Parse()
	if g.latin1 && g.sjis {
		fmt.Fprintln(os.Stderr, "-1 and -j are incompatible")
		usage()
	}
	if g.border < 0 {
		fmt.Fprintln(os.Stderr, "-m: negative margin")
		usage()
	}
	g.scale = int(*scale)
	g.mask = coding.Mask(*mask)
	g.lev = qr.Level(strings.Index("lmqhLMQH", *lev) & 3)
	if *ff == "" {
		if !fno.Seen() && isatty.IsTerminal(os.Stdout.Fd()) {
			*ff = "utf8"
		} else {
			*ff = "png"
		}
	}
	for i, v := range formats {
		if *ff == v {
			g.format = i >> 1
			g.rev = i&1 != 0
			break
		}
	}
	if g.fn == "-" {
		g.fn = ""
	}
}

func main() {
	log.SetFlags(0)
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalln(err)
	}
	parseFlags(cfg)

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}

	var cs split.Charset
	switch {
	case g.latin1:
		cs = split.Latin1
	case g.sjis:
		cs = split.ShiftJIS
	}
	c, err := qr.EncodeText(s, cs, g.lev, g.mask)
	if err != nil {
		log.Fatalln(err)
	}
	if g.verbose {
		log.Printf("version %v, level %v, mask %v, %d pixels",
			c.Version, c.Level, c.Mask, c.Size)
	}
	write(c)
}

func write(c *qr.Code) {
	var w = os.Stdout
	if g.fn != "" {
		var err error
		if w, err = os.OpenFile(g.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			log.Fatalln(err)
		}
	}
	c.Scale = g.scale
	c.Border = g.border
	c.Reverse = g.rev
	err := encoders[g.format](c, w)
	if g.fn != "" && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
}

func ascii(c *qr.Code, w io.Writer) error {
	siz := c.Size
	bord := c.Border
	pix := siz + 2*bord
	b := make([]byte, (pix*2+1)*pix)
	i := 0
	for y := -bord; y < siz+bord; y++ {
		for x := -bord; x < siz+bord; x++ {
			var p byte = ' '
			if c.Black(x, y) != c.Reverse {
				p = '#'
			}
			b[i], b[i+1] = p, p
			i += 2
		}
		b[i] = '\n'
		i++
	}
	_, err := w.Write(b)
	return err
}
