package amira

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/amiratools/go-amira/internal/cursor"
	"github.com/amiratools/go-amira/internal/delim"
	"github.com/amiratools/go-amira/internal/dtype"
)

func TestWalkHyperSurfaceASCII(t *testing.T) {
	f, err := Parse(strings.NewReader(hxSampleASCII))
	require.NoError(t, err)
	require.Equal(t, HyperSurface, f.Format)

	wantDecls := []ArrayDeclaration{
		{Name: "Vertices", Dimensions: []int64{3}},
		{Name: "NBranchingPoints", HasCount: true, StreamType: dtype.Int},
		{Name: "NVerticesOnCurves", HasCount: true, StreamType: dtype.Int},
		{Name: "Patches", Dimensions: []int64{3}, IsList: true},
		{Name: "Patch1", Parent: "Patches", ItemID: 1},
		{Name: "Patch2", Parent: "Patches", ItemID: 2},
	}
	if diff := cmp.Diff(wantDecls, f.Header.ArrayDeclarations); diff != "" {
		t.Errorf("array declarations mismatch (-want +got):\n%s", diff)
	}

	defs := f.Header.DataDefinitions
	require.Len(t, defs, 7)

	coords := defs[0]
	require.Equal(t, "Vertices", coords.ArrayRef)
	require.Equal(t, "Coordinates", coords.Name)
	require.Equal(t, "float", coords.Type)
	require.Equal(t, 3, coords.Dimension)
	require.Equal(t, -1, coords.Index)
	require.Equal(t, int64(3), coords.Count)
	require.Equal(t, "0.1 0.2 0.3\n1.1 1.2 1.3\n2.1 2.2 2.3\n", string(coords.StreamData))

	wantOffset := int64(strings.Index(hxSampleASCII, "0.1 0.2 0.3"))
	require.Equal(t, wantOffset, coords.StreamOffset)

	require.Equal(t, "Patch1", defs[1].ArrayRef)
	require.Equal(t, "InnerRegion", defs[1].Name)
	require.Equal(t, "char", defs[1].Type)
	require.Equal(t, "Exterior", defs[1].Value)

	require.Equal(t, "Patch1", defs[2].ArrayRef)
	require.Equal(t, "OuterRegion", defs[2].Name)
	require.Equal(t, "Inside", defs[2].Value)

	require.Equal(t, "Patch1", defs[3].ArrayRef)
	require.Equal(t, "Triangles", defs[3].Name)
	require.Equal(t, "int", defs[3].Type)
	require.Equal(t, int64(1), defs[3].Count)
	require.Equal(t, "1 2 3", string(defs[3].StreamData))

	require.Equal(t, "Patch2", defs[4].ArrayRef)
	require.Equal(t, "Inside", defs[4].Value)
	require.Equal(t, "Patch2", defs[5].ArrayRef)
	require.Equal(t, "Exterior", defs[5].Value)
	require.Equal(t, "Patch2", defs[6].ArrayRef)
	require.Equal(t, "1 3 2", string(defs[6].StreamData))
}

func TestWalkHyperSurfaceBinary(t *testing.T) {
	vertexData := make([]byte, 24) // 2 vertices, float[3]
	for i := range vertexData {
		vertexData[i] = byte(0x20 + i)
	}
	triangleData := make([]byte, 12) // 1 triangle, int[3]
	for i := range triangleData {
		triangleData[i] = byte(0x60 + i)
	}

	file := "# HyperSurface 0.1 BINARY-LITTLE-ENDIAN\n\nParameters {\n}\n" +
		"\nVertices 2\n" + string(vertexData) +
		"\nPatches 1\n{\nInnerRegion Inside\nOuterRegion Exterior\nTriangles 1\n" +
		string(triangleData) + "\n}\n"

	f, err := Parse(strings.NewReader(file))
	require.NoError(t, err)
	require.True(t, f.Header.Designation.Binary())

	defs := f.Header.DataDefinitions
	require.Len(t, defs, 4)

	coords := defs[0]
	require.Equal(t, "Coordinates", coords.Name)
	require.Equal(t, vertexData, coords.StreamData)
	wantOffset := int64(strings.Index(file, "Vertices 2\n") + len("Vertices 2\n"))
	require.Equal(t, wantOffset, coords.StreamOffset)

	tri := defs[3]
	require.Equal(t, "Triangles", tri.Name)
	require.Equal(t, "Patch1", tri.ArrayRef)
	require.Equal(t, triangleData, tri.StreamData)
	wantOffset = int64(strings.Index(file, "Triangles 1\n") + len("Triangles 1\n"))
	require.Equal(t, wantOffset, tri.StreamOffset)
}

// The parse result must not depend on the chunk sizes used for scanning.
func TestWalkChunkSizeIndependence(t *testing.T) {
	want, err := Parse(strings.NewReader(hxSampleASCII))
	require.NoError(t, err)

	for _, chunk := range []int{64, 256, 4096} {
		got, err := Parse(strings.NewReader(hxSampleASCII),
			WithHeaderBytes(chunk), WithStreamBytes(chunk))
		require.NoError(t, err, "chunk size %d", chunk)
		if diff := cmp.Diff(want.Header, got.Header); diff != "" {
			t.Errorf("chunk size %d: header mismatch (-want +got):\n%s", chunk, diff)
		}
	}
}

// Comments inside an ASCII payload are stripped and never terminate the
// stream, even when they contain delimiter-like text.
func TestWalkASCIICommentsInPayload(t *testing.T) {
	file := hxSampleHeader + `
Vertices 2
0.1 0.2 0.3
# Patches 9
1.1 1.2 1.3
NBranchingPoints 0
`
	f, err := Parse(strings.NewReader(file))
	require.NoError(t, err)

	require.Equal(t, "Coordinates", f.Header.DataDefinitions[0].Name)
	require.Equal(t, "0.1 0.2 0.3\n\n1.1 1.2 1.3\n",
		string(f.Header.DataDefinitions[0].StreamData))

	// The walker keeps going past the comment: the scalar stream after the
	// payload is still found.
	last := f.Header.ArrayDeclarations[len(f.Header.ArrayDeclarations)-1]
	require.Equal(t, "NBranchingPoints", last.Name)
}

func TestWalkMissingGroupItems(t *testing.T) {
	file := hxSampleHeader + `
Vertices 1
0.1 0.2 0.3
Patches 2
{
InnerRegion Exterior
OuterRegion Inside
Triangles 1
1 2 3
}
`
	_, err := Parse(strings.NewReader(file))
	var serr *StreamError
	require.ErrorAs(t, err, &serr)
	require.Contains(t, serr.Reason, "missing")
	require.Equal(t, "Patches", serr.Stream)
}

func TestWalkMandatoryGroupEmpty(t *testing.T) {
	file := hxSampleHeader + `
Vertices 1
0.1 0.2 0.3
Patches 0
`
	_, err := Parse(strings.NewReader(file))
	var serr *StreamError
	require.ErrorAs(t, err, &serr)
	require.Contains(t, serr.Reason, "mandatory")
}

func TestWalkOptionalGroupEmpty(t *testing.T) {
	file := hxSampleHeader + `
Vertices 1
0.1 0.2 0.3
BoundaryCurves 0
NBranchingPoints 4
`
	f, err := Parse(strings.NewReader(file))
	require.NoError(t, err)

	for _, decl := range f.Header.ArrayDeclarations {
		require.NotEqual(t, "BoundaryCurves", decl.Name)
	}
	last := f.Header.ArrayDeclarations[len(f.Header.ArrayDeclarations)-1]
	require.Equal(t, "NBranchingPoints", last.Name)
	require.Equal(t, int64(4), last.Count)
}

func TestWalkGroupStreamAtTopLevel(t *testing.T) {
	file := hxSampleHeader + `
Triangles 1
1 2 3
}
`
	_, err := Parse(strings.NewReader(file))
	var serr *StreamError
	require.ErrorAs(t, err, &serr)
	require.Contains(t, serr.Reason, "outside")
	require.Equal(t, "Triangles", serr.Stream)
}

func TestWalkUnterminatedASCIIStream(t *testing.T) {
	file := hxSampleHeader + `
Vertices 2
0.1 0.2 0.3
1.1 1.2 1.3
`
	_, err := Parse(strings.NewReader(file))
	var serr *StreamError
	require.ErrorAs(t, err, &serr)
	require.Contains(t, serr.Reason, "terminator")
}

func TestWalkUnknownKeyword(t *testing.T) {
	w := &hxWalker{
		cur: cursor.New(strings.NewReader("Bogus 5\n1 2 3 4 5\n}\n")),
		set: delim.NewSet([]string{"Bogus"}),
		hdr: &Header{},
		cfg: newConfig(nil),
	}
	err := w.run()
	var serr *StreamError
	require.ErrorAs(t, err, &serr)
	require.Contains(t, serr.Reason, "unknown")
	require.Equal(t, "Bogus", serr.Stream)
}
