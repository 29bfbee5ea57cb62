package delim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testKeywords = []string{
	"NVerticesOnCurves",
	"NBranchingPoints",
	"BranchingPoints",
	"BoundaryCurves",
	"InnerRegion",
	"OuterRegion",
	"Triangles",
	"Surfaces",
	"Vertices",
	"Patches",
	"Region",
}

func TestRescanOverlap(t *testing.T) {
	s := NewSet(testKeywords)
	// len("NVerticesOnCurves") == 17, rounded up to a 16-byte multiple.
	require.Equal(t, 32, s.RescanOverlap())
}

func TestAmiraMeshStartAtBufferStart(t *testing.T) {
	s := NewSet(testKeywords)
	m := s.AmiraMeshStart([]byte("@1\n0.5 0.6\n"), 0)
	require.NotNil(t, m)
	require.Equal(t, 0, m.Start)
	require.Equal(t, 3, m.End)
	require.Equal(t, "1", m.Stream)
}

func TestAmiraMeshStartNotMidLine(t *testing.T) {
	// Searching from a mid-line offset must not treat that offset as a
	// line start.
	s := NewSet(testKeywords)
	data := []byte(" @7\nrest\n")

	m := s.AmiraMeshStart(data, 0)
	require.NotNil(t, m)
	require.Equal(t, 0, m.Start)
	require.Equal(t, "7", m.Stream)

	require.Nil(t, s.AmiraMeshStart(data, 1))
}

func TestAmiraMeshStartAfterNewline(t *testing.T) {
	s := NewSet(testKeywords)
	data := []byte("xx@1\nfoo\n@2\n")
	m := s.AmiraMeshStart(data, 0)
	require.NotNil(t, m)
	require.Equal(t, "2", m.Stream)
	require.Equal(t, 8, m.Start)
	require.Equal(t, len(data), m.End)
}

func TestHyperSurfaceMarkerCount(t *testing.T) {
	s := NewSet(testKeywords)
	data := []byte("junk\nVertices 3\n0.1 0.2 0.3\n")
	m := s.HyperSurfaceMarker(data, 0)
	require.NotNil(t, m)
	require.Equal(t, "Vertices", m.Stream)
	require.True(t, m.HasCount)
	require.Equal(t, int64(3), m.Count)
	require.Equal(t, len("junk\nVertices 3"), m.CountEnd)
	require.Equal(t, len("junk\nVertices 3\n"), m.End)
}

func TestHyperSurfaceMarkerToken(t *testing.T) {
	s := NewSet(testKeywords)
	data := []byte("\nInnerRegion Inside\n")
	m := s.HyperSurfaceMarker(data, 0)
	require.NotNil(t, m)
	require.Equal(t, "InnerRegion", m.Stream)
	require.False(t, m.HasCount)
	require.Equal(t, "Inside", m.Str)
	require.Equal(t, len("\nInnerRegion Inside"), m.StrEnd)
}

func TestHyperSurfaceMarkerStopsBeforeBraceLine(t *testing.T) {
	// The group's opening brace sits on the next line and stays in the
	// buffer; the marker match ends at the newline after the count.
	s := NewSet(testKeywords)
	data := []byte("\nPatches 2\n{\nInnerRegion Inside\n")
	m := s.HyperSurfaceMarker(data, 0)
	require.NotNil(t, m)
	require.Equal(t, "Patches", m.Stream)
	require.Equal(t, int64(2), m.Count)
	require.Equal(t, len("\nPatches 2\n"), m.End)
}

func TestHyperSurfaceMarkerMidOffset(t *testing.T) {
	s := NewSet(testKeywords)
	data := []byte("Vertices 3\nVertices 4\n")

	m := s.HyperSurfaceMarker(data, 0)
	require.NotNil(t, m)
	require.Equal(t, 0, m.Start)

	m = s.HyperSurfaceMarker(data, 1)
	require.NotNil(t, m)
	require.Equal(t, len("Vertices 3"), m.Start)
	require.Equal(t, int64(4), m.Count)
}

func TestStopOrCommentBrace(t *testing.T) {
	s := NewSet(testKeywords)
	data := []byte("1 2 3\n}\n{\nmore")
	m := s.StopOrComment(data, 0)
	require.NotNil(t, m)
	require.True(t, m.Stop)
	require.Equal(t, len("1 2 3"), m.Start)
}

func TestStopOrCommentKeyword(t *testing.T) {
	s := NewSet(testKeywords)
	data := []byte("0.1 0.2\nVertices 4\n")
	m := s.StopOrComment(data, 0)
	require.NotNil(t, m)
	require.True(t, m.Stop)
	require.Equal(t, len("0.1 0.2\n"), m.Start)
}

func TestStopOrCommentComment(t *testing.T) {
	s := NewSet(testKeywords)
	data := []byte("1 2 # note\n}\n")
	m := s.StopOrComment(data, 0)
	require.NotNil(t, m)
	require.True(t, m.IsComment())
	require.False(t, m.Stop)
	require.Equal(t, 4, m.Start)
	require.Equal(t, len("1 2 # note"), m.End)
}

func TestHasCloseBrace(t *testing.T) {
	s := NewSet(testKeywords)
	require.True(t, s.HasCloseBrace([]byte("\n}\n")))
	require.True(t, s.HasCloseBrace([]byte("} {")))
	require.False(t, s.HasCloseBrace([]byte("{\n")))
	require.False(t, s.HasCloseBrace([]byte("1 2 3")))
}
