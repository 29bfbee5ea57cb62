// Package hxsurface holds the static stream-descriptor table for Amira
// HyperSurface files.
//
// A HyperSurface file stores its data as a sequence of named streams after
// the header. Each known stream keyword maps to one or more [Descriptor]
// entries, selected by the group-nesting level at which the keyword is
// encountered: "Vertices" at top level declares the surface coordinates,
// while "Vertices" inside a BoundaryCurve group is a per-curve index list.
//
// The table follows the stream layout documented in the Amira Reference
// Guide (pp. 519-525) and is immutable after initialization. The delimiter
// patterns in internal/delim are built from [Keywords], so the two tables
// cannot drift apart: a keyword the matcher can find always resolves here.
//
// # Key Types
//
//   - [Descriptor]: owning group, output block name, per-item element
//     count, element kind, and whether the stream may be absent
//   - [Lookup]: resolves a keyword at a given nesting level
//   - [Keywords]: all keywords, longest first (safe regexp alternation)
package hxsurface
