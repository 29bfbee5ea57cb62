package amira

import (
	"io"

	"github.com/amiratools/go-amira/internal/cursor"
	"github.com/amiratools/go-amira/internal/delim"
	"github.com/amiratools/go-amira/internal/hxsurface"
)

// delims holds the delimiter patterns compiled once from the HyperSurface
// keyword table. Read-only after initialization, safe to share across
// concurrent parses.
var delims = delim.NewSet(hxsurface.Keywords())

// ReadHeader scans a byte source for the boundary between the textual
// header and the first data stream. It returns the detected format, the
// header text, and the unconsumed remainder beginning exactly at the
// first stream delimiter. A file with no data streams yields the whole
// content as header text and an empty remainder. An unrecognizable file
// fails with ErrUndefinedFormat before any delimiter search.
func ReadHeader(r io.Reader, opts ...Option) (Format, string, []byte, error) {
	cfg := newConfig(opts)
	cur := cursor.New(r)
	format, header, err := readHeader(cur, cfg)
	if err != nil {
		return format, "", nil, err
	}
	remainder := append([]byte(nil), cur.Bytes()...)
	return format, header, remainder, nil
}

// readHeader implements the boundary scan, leaving cur positioned at the
// first byte of the first stream delimiter.
func readHeader(cur *cursor.Cursor, cfg *config) (Format, string, error) {
	ov := delims.RescanOverlap()
	first := cfg.headerBytes
	if first < ov {
		first = ov
	}
	if first < cfg.formatBytes {
		first = cfg.formatBytes
	}
	if _, err := cur.Fill(first); err != nil {
		return Undefined, "", err
	}

	format := sniffFormat(cur.Bytes())
	cfg.logger.Debug("format detected", "format", format.String())

	var search func([]byte, int) *delim.Match
	switch format {
	case AmiraMesh:
		search = delims.AmiraMeshStart
	case HyperSurface:
		search = delims.HyperSurfaceMarker
	default:
		return Undefined, "", ErrUndefinedFormat
	}

	from := 0
	for {
		if m := search(cur.Bytes(), from); m != nil {
			header := string(cur.Bytes()[:m.Start])
			cur.Discard(m.Start)
			cfg.logger.Debug("header boundary found",
				"bytes", len(header), "stream", m.Stream)
			return format, header, nil
		}
		from = cur.Len() - ov
		if from < 0 {
			from = 0
		}
		n, err := cur.Fill(cfg.headerBytes)
		if err != nil {
			return format, "", err
		}
		if n == 0 {
			// Header-only file: the whole content is the header.
			header := string(cur.Bytes())
			cur.Discard(cur.Len())
			cfg.logger.Debug("no data streams found", "bytes", len(header))
			return format, header, nil
		}
	}
}
