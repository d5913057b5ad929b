package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qr "github.com/unixdj/qrenc"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"QR_LEVEL", "QR_SCALE", "QR_BORDER", "QR_FORMAT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config{Level: "l", Scale: 4, Border: 4}, cfg)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("QR_LEVEL", "Q")
	t.Setenv("QR_SCALE", "2")
	t.Setenv("QR_BORDER", "0")
	t.Setenv("QR_FORMAT", "pbmi")
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config{Level: "q", Scale: 2, Border: 0, Format: "pbmi"}, cfg)
}

func TestLoadConfigInvalid(t *testing.T) {
	for _, tc := range []struct {
		key, value, msg string
	}{
		{"QR_LEVEL", "x", "QR_LEVEL"},
		{"QR_LEVEL", "lm", "QR_LEVEL"},
		{"QR_SCALE", "0", "QR_SCALE"},
		{"QR_SCALE", "many", "Scale"},
		{"QR_BORDER", "-1", "QR_BORDER"},
		{"QR_FORMAT", "gif", "QR_FORMAT"},
	} {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := loadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestASCII(t *testing.T) {
	t.Parallel()
	c, err := qr.Encode("ascii", qr.L)
	require.NoError(t, err)
	c.Border = 2
	var b bytes.Buffer
	require.NoError(t, ascii(c, &b))
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	require.Len(t, lines, 25)
	assert.Equal(t, strings.Repeat(" ", 50), lines[0])
	assert.Equal(t, "    ##############  ", lines[2][:20])

	c.Reverse = true
	b.Reset()
	require.NoError(t, ascii(c, &b))
	lines = strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	assert.Equal(t, strings.Repeat("#", 50), lines[0])
	assert.Equal(t, "####              ##", lines[2][:20])
}
