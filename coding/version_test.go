// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionTable(t *testing.T) {
	t.Parallel()
	for v := MinVersion; v <= MaxVersion; v++ {
		siz := v.Size()
		require.Equal(t, int(v)*4+17, siz)
		require.True(t, siz%2 == 1 && siz >= 21)
		for l := L; l <= H; l++ {
			nb, check := v.Blocks(l), v.CheckBytes(l)
			nd := v.DataBytes(l)
			assert.Equal(t, v.TotalBytes(), nd+nb*check, "%v-%v", v, l)
			assert.Equal(t, nd*8, v.DataBits(l))
			assert.Positive(t, nd/nb, "%v-%v", v, l)
			if l > L {
				assert.Less(t, nd, v.DataBytes(l-1), "%v-%v", v, l)
			}
		}
		if v > MinVersion {
			assert.Greater(t, v.TotalBytes(), (v - 1).TotalBytes())
		}
	}
}

func TestVersionTableRows(t *testing.T) {
	t.Parallel()
	for v := MinVersion; v <= MaxVersion; v++ {
		row := vtab[v]
		require.NotZero(t, row.bytes, "version %v", v)
		for l := L; l <= H; l++ {
			require.NotZero(t, row.level[l].nblock, "%v-%v", v, l)
			require.NotZero(t, row.level[l].check, "%v-%v", v, l)
		}
	}
	assert.Equal(t, 3706, MaxVersion.TotalBytes())
	assert.Equal(t, 1276, MaxVersion.DataBytes(H))
	assert.Equal(t, 81, MaxVersion.Blocks(H))
}

func TestSizeClass(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		v     Version
		class int
	}{
		{1, Class0}, {9, Class0}, {10, Class1}, {26, Class1},
		{27, Class2}, {40, Class2},
	} {
		assert.Equal(t, tc.class, tc.v.SizeClass(), "version %v", tc.v)
	}
}

func TestAlignPositions(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		v   Version
		pos []int
	}{
		{1, nil},
		{2, []int{6, 18}},
		{6, []int{6, 34}},
		{7, []int{6, 22, 38}},
		{14, []int{6, 26, 46, 66}},
		{22, []int{6, 26, 50, 74, 98}},
		{32, []int{6, 34, 60, 86, 112, 138}},
		{36, []int{6, 24, 50, 76, 102, 128, 154}},
		{40, []int{6, 30, 58, 86, 114, 142, 170}},
	} {
		assert.Equal(t, tc.pos, tc.v.AlignPositions(), "version %v", tc.v)
	}
	for v := Version(2); v <= MaxVersion; v++ {
		pos := v.AlignPositions()
		assert.Equal(t, v.Size()-7, pos[len(pos)-1], "version %v", v)
	}
}

func TestLevel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "L", L.String())
	assert.Equal(t, "H", H.String())
	assert.Equal(t, "4", Level(4).String())
	assert.False(t, Level(-1).IsValid())
	assert.Equal(t, []int{1, 0, 3, 2},
		[]int{L.FormatCode(), M.FormatCode(), Q.FormatCode(), H.FormatCode()})
}

// Byte mode capacities in bytes.
func TestByteCapacity(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		v   Version
		cap [4]int
	}{
		{1, [4]int{17, 14, 11, 7}},
		{2, [4]int{32, 26, 20, 14}},
		{9, [4]int{230, 180, 130, 98}},
		{10, [4]int{271, 213, 151, 119}},
		{40, [4]int{2953, 2331, 1663, 1273}},
	} {
		for l := L; l <= H; l++ {
			n := tc.cap[l]
			fits := []Segment{{string(make([]byte, n)), Byte}}
			over := []Segment{{string(make([]byte, n+1)), Byte}}
			assert.LessOrEqual(t, EncodedLength(tc.v, fits...),
				tc.v.DataBits(l), "%v-%v", tc.v, l)
			assert.Greater(t, EncodedLength(tc.v, over...),
				tc.v.DataBits(l), "%v-%v", tc.v, l)
		}
	}
}
