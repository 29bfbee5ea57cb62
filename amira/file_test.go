package amira

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAmiraMesh(t *testing.T) {
	f, err := Parse(strings.NewReader(amSampleASCII))
	require.NoError(t, err)

	require.Equal(t, AmiraMesh, f.Format)
	idx := strings.Index(amSampleASCII, "\n@1\n0")
	require.Equal(t, amSampleASCII[:idx], f.HeaderText)
	require.Equal(t, int64(idx), f.HeaderLen)

	require.Equal(t, "BINARY-LITTLE-ENDIAN", f.Header.Designation.Encoding)
	require.Len(t, f.Header.ArrayDeclarations, 1)
	require.Len(t, f.Header.DataDefinitions, 1)
}

func TestParseHeaderOnlyFile(t *testing.T) {
	f, err := Parse(strings.NewReader(amSampleHeader))
	require.NoError(t, err)
	require.Equal(t, amSampleHeader, f.HeaderText)
	require.Equal(t, int64(len(amSampleHeader)), f.HeaderLen)
	require.Len(t, f.Header.DataDefinitions, 1)
}

func TestParseUndefined(t *testing.T) {
	_, err := Parse(strings.NewReader("definitely not an amira file\n"))
	require.ErrorIs(t, err, ErrUndefinedFormat)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.am")
	require.NoError(t, os.WriteFile(path, []byte(amSampleASCII), 0o644))

	f, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, AmiraMesh, f.Format)
	require.Len(t, f.Header.ArrayDeclarations, 1)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.am"))
	require.Error(t, err)
}

func TestBlocksAmiraMesh(t *testing.T) {
	f, err := Parse(strings.NewReader(amSampleASCII))
	require.NoError(t, err)

	blocks := f.Blocks()
	require.Len(t, blocks, 1)
	require.Equal(t, "Lattice", blocks[0].Declaration.Name)
	require.Len(t, blocks[0].Data, 1)
	require.Equal(t, "Data", blocks[0].Data[0].Name)

	b, ok := f.Block("Lattice")
	require.True(t, ok)
	require.Equal(t, []int64{2, 2, 2}, b.Declaration.Dimensions)

	_, ok = f.Block("Nope")
	require.False(t, ok)
}

func TestBlocksHyperSurface(t *testing.T) {
	f, err := Parse(strings.NewReader(hxSampleASCII))
	require.NoError(t, err)

	b, ok := f.Block("Patch1")
	require.True(t, ok)
	require.Equal(t, 1, b.Declaration.ItemID)
	require.Len(t, b.Data, 3)

	v, ok := f.Block("Vertices")
	require.True(t, ok)
	require.Equal(t, []int64{3}, v.Declaration.Dimensions)
	require.Len(t, v.Data, 1)
}
