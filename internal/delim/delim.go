package delim

import (
	"regexp"
	"strconv"
	"strings"
)

// Match is the result of applying a delimiter pattern to a buffer.
// Start and End are byte offsets into the searched buffer. At most one of
// Count, Str, and Group is meaningful for a given match.
type Match struct {
	Start int
	End   int

	// Stream is the captured stream identifier: the digits of an "@<n>"
	// marker or a HyperSurface keyword. Empty for comment matches.
	Stream string

	// Count is the captured numeric item count, valid when HasCount is
	// set. CountEnd is the buffer offset just past the digits.
	Count    int64
	HasCount bool
	CountEnd int

	// Str is the captured free-form token value. StrEnd is the buffer
	// offset just past it.
	Str    string
	StrEnd int

	// Group reports a group-open brace following the keyword.
	Group bool

	// Stop reports a terminator match (close brace or next keyword).
	Stop bool
}

// IsComment reports whether the match is a comment line rather than a
// stream marker or terminator.
func (m *Match) IsComment() bool {
	return m.Stream == "" && !m.Stop
}

// Set holds the compiled delimiter patterns for one keyword table.
// A Set is immutable and safe for concurrent use.
type Set struct {
	overlap int

	// Line-anchored patterns come in two variants: one whose line-start
	// alternative applies at offset zero, and one requiring a preceding
	// newline, used when searching from a later offset. This reproduces
	// the contract that a search never treats an arbitrary mid-line
	// offset as a line start.
	amStart      *regexp.Regexp
	amStartMid   *regexp.Regexp
	hxMarker     *regexp.Regexp
	hxMarkerMid  *regexp.Regexp
	amComment    *regexp.Regexp
	amCommentMid *regexp.Regexp

	stopOrComment *regexp.Regexp
	closeBrace    *regexp.Regexp
}

const (
	amCore  = `\s*@(?P<stream>\d+)\s*\n`
	comment = `#[^\n]*`
)

// NewSet compiles the delimiter patterns for the given HyperSurface
// keywords. Keywords must be ordered so that no earlier alternative is a
// prefix of a later one (longest first).
func NewSet(keywords []string) *Set {
	alt := strings.Join(keywords, "|")
	hxCore := `\s*(?P<stream>(?:` + alt + `))` +
		`(?:\s+(?:(?P<count>\d+)|(?P<string>(?:\w|[^\n{])+)))?` +
		`(?P<group>\s*(?:\n\s*)?\{\s*\n)?\s*\n`

	maxLen := 0
	for _, k := range keywords {
		if len(k) > maxLen {
			maxLen = len(k)
		}
	}

	return &Set{
		overlap:      (maxLen + 15) / 16 * 16,
		amStart:      regexp.MustCompile(`(?:^|\n)` + amCore),
		amStartMid:   regexp.MustCompile(`\n` + amCore),
		hxMarker:     regexp.MustCompile(`(?:^|\n)` + hxCore),
		hxMarkerMid:  regexp.MustCompile(`\n` + hxCore),
		amComment:    regexp.MustCompile(`(?:^|\n)` + amCore + `|` + comment),
		amCommentMid: regexp.MustCompile(`\n` + amCore + `|` + comment),

		stopOrComment: regexp.MustCompile(
			`(?P<stop>\s*\}(?:\s*\{)?\n|(?:` + alt + `))|` + comment),
		closeBrace: regexp.MustCompile(`\}(?:\s*\{)?`),
	}
}

// RescanOverlap returns the number of trailing bytes to re-examine after
// each refill so that a delimiter split across a chunk boundary is still
// found.
func (s *Set) RescanOverlap() int {
	return s.overlap
}

// AmiraMeshStart returns the leftmost "@<n>" stream-start marker at or
// after from, or nil.
func (s *Set) AmiraMeshStart(data []byte, from int) *Match {
	return searchAnchored(s.amStart, s.amStartMid, data, from)
}

// HyperSurfaceMarker returns the leftmost HyperSurface stream or group
// marker at or after from, or nil.
func (s *Set) HyperSurfaceMarker(data []byte, from int) *Match {
	return searchAnchored(s.hxMarker, s.hxMarkerMid, data, from)
}

// AmiraMeshStartOrComment returns the leftmost "@<n>" marker or comment
// line at or after from, or nil. Used when scanning ASCII AmiraMesh
// stream content, where comments must be stripped from payloads.
func (s *Set) AmiraMeshStartOrComment(data []byte, from int) *Match {
	return searchAnchored(s.amComment, s.amCommentMid, data, from)
}

// StopOrComment returns the leftmost stream terminator or comment at or
// after from, or nil. A terminator is a close brace (optionally followed
// by a reopening brace) or the next known stream keyword.
func (s *Set) StopOrComment(data []byte, from int) *Match {
	if from < 0 {
		from = 0
	}
	if from > len(data) {
		return nil
	}
	loc := s.stopOrComment.FindSubmatchIndex(data[from:])
	if loc == nil {
		return nil
	}
	return newMatch(s.stopOrComment, data, loc, from)
}

// HasCloseBrace reports whether a bare close brace occurs anywhere in the
// span.
func (s *Set) HasCloseBrace(span []byte) bool {
	return s.closeBrace.Match(span)
}

func searchAnchored(re, mid *regexp.Regexp, data []byte, from int) *Match {
	if from <= 0 {
		loc := re.FindSubmatchIndex(data)
		if loc == nil {
			return nil
		}
		return newMatch(re, data, loc, 0)
	}
	if from > len(data) {
		return nil
	}
	loc := mid.FindSubmatchIndex(data[from:])
	if loc == nil {
		return nil
	}
	return newMatch(mid, data, loc, from)
}

func newMatch(re *regexp.Regexp, data []byte, loc []int, shift int) *Match {
	m := &Match{Start: loc[0] + shift, End: loc[1] + shift}
	for i, name := range re.SubexpNames() {
		if name == "" || 2*i >= len(loc) || loc[2*i] < 0 {
			continue
		}
		lo, hi := loc[2*i]+shift, loc[2*i+1]+shift
		switch name {
		case "stream":
			m.Stream = string(data[lo:hi])
		case "count":
			n, err := strconv.ParseInt(string(data[lo:hi]), 10, 64)
			if err == nil {
				m.Count = n
				m.HasCount = true
				m.CountEnd = hi
			}
		case "string":
			m.Str = string(data[lo:hi])
			m.StrEnd = hi
		case "group":
			m.Group = true
		case "stop":
			m.Stop = true
		}
	}
	return m
}
