// Package delim compiles and applies the delimiter patterns that bound
// Amira header and data-stream content.
//
// Five pattern roles exist:
//
//  1. AmiraMesh stream start: "@<digits>" at a line start.
//  2. HyperSurface stream/group marker: a known keyword, optionally
//     followed by a numeric count or a free-form token, optionally
//     followed by a group-open brace.
//  3. Comment line: "#" to end of line (merged into 1 for ASCII
//     AmiraMesh stream scanning).
//  4. Stream terminator: a closing brace (optionally reopening) or the
//     next known keyword, whichever comes first (merged with 3 for ASCII
//     HyperSurface payload collection).
//  5. Bare close-brace scan over a bounded span, used to decide whether a
//     terminator is a group close.
//
// All searches return the leftmost match at or after the caller's offset
// and never match to its left, and the line-start anchor only applies at
// offset zero. The search offset never retreats across calls; together
// with the rescan overlap retained by the cursor this guarantees a
// delimiter split across a chunk boundary is found once more bytes arrive.
//
// [Set.RescanOverlap] is the fixed tail length to re-examine after each
// refill: the longest keyword length rounded up to the next multiple of
// sixteen.
package delim
