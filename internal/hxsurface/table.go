package hxsurface

import (
	"sort"

	"github.com/amiratools/go-amira/internal/dtype"
)

// Descriptor describes one contextual definition of a HyperSurface stream
// keyword.
type Descriptor struct {
	// Owner is the base name of the group the stream belongs to
	// ("Patch", "Surface", "BoundaryCurve"). Empty means the stream
	// appears at top level among the array declarations.
	Owner string

	// Block is the emitted block name. For Kind == dtype.Group it is the
	// base name used to synthesize per-item array names (Patch1, Patch2, ...).
	Block string

	// Items is the fixed per-item element count. HasItems is false for
	// streams whose value is a scalar count or a free-form token.
	Items    int
	HasItems bool

	// Kind is the element datatype, or dtype.Group for list containers.
	Kind dtype.Kind

	// Optional streams may be absent from a well-formed file.
	Optional bool
}

// Group base names referenced by the table.
const (
	GroupPatch         = "Patch"
	GroupSurface       = "Surface"
	GroupBoundaryCurve = "BoundaryCurve"
)

// streams maps each keyword to its definitions indexed by group-nesting
// level. A keyword seen at a level beyond the slice resolves to the last
// entry.
var streams = map[string][]Descriptor{
	"Vertices": {
		{Block: "Coordinates", Items: 3, HasItems: true, Kind: dtype.Float},
		{Owner: GroupBoundaryCurve, Block: "Vertices", Items: 1, HasItems: true, Kind: dtype.Int},
	},
	"NBranchingPoints": {
		{Block: "NBranchingPoints", Kind: dtype.Int, Optional: true},
	},
	"NVerticesOnCurves": {
		{Block: "NVerticesOnCurves", Kind: dtype.Int, Optional: true},
	},
	"BoundaryCurves": {
		{Block: GroupBoundaryCurve, Items: 1, HasItems: true, Kind: dtype.Group, Optional: true},
		{Owner: GroupPatch, Block: "BoundaryCurves", Items: 1, HasItems: true, Kind: dtype.Int, Optional: true},
	},
	"Patches": {
		{Block: GroupPatch, Items: 1, HasItems: true, Kind: dtype.Group},
		{Owner: GroupSurface, Block: "Patches", Items: 1, HasItems: true, Kind: dtype.Int},
	},
	"InnerRegion": {
		{Owner: GroupPatch, Block: "InnerRegion", Kind: dtype.Char},
	},
	"OuterRegion": {
		{Owner: GroupPatch, Block: "OuterRegion", Kind: dtype.Char},
	},
	"Triangles": {
		{Owner: GroupPatch, Block: "Triangles", Items: 3, HasItems: true, Kind: dtype.Int},
	},
	"BranchingPoints": {
		{Owner: GroupPatch, Block: "BranchingPoints", Items: 1, HasItems: true, Kind: dtype.Int, Optional: true},
	},
	"Surfaces": {
		{Block: GroupSurface, Items: 1, HasItems: true, Kind: dtype.Group, Optional: true},
	},
	"Region": {
		{Owner: GroupSurface, Block: "Region", Kind: dtype.Char},
	},
}

// keywords is the keyword list sorted longest first so that a regexp
// alternation built from it can never prefer a keyword that is a prefix of
// a longer one.
var keywords = func() []string {
	ks := make([]string, 0, len(streams))
	for k := range streams {
		ks = append(ks, k)
	}
	sort.Slice(ks, func(i, j int) bool {
		if len(ks[i]) != len(ks[j]) {
			return len(ks[i]) > len(ks[j])
		}
		return ks[i] < ks[j]
	})
	return ks
}()

// Lookup resolves a stream keyword against the table at the given
// group-nesting level. The second result is false for unknown keywords.
func Lookup(keyword string, level int) (Descriptor, bool) {
	defs, ok := streams[keyword]
	if !ok {
		return Descriptor{}, false
	}
	if level >= len(defs) {
		level = len(defs) - 1
	}
	return defs[level], true
}

// Keywords returns all known stream keywords, longest first.
func Keywords() []string {
	return keywords
}

// MaxKeywordLen returns the length of the longest stream keyword. The
// rescan overlap of the chunked scanner is derived from it.
func MaxKeywordLen() int {
	return len(keywords[0])
}
