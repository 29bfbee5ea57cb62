package amira

import (
	"io"
	"regexp"
)

// Format identifies the encoding family of an Amira file.
type Format int

const (
	// Undefined marks a file without a recognizable designation line.
	Undefined Format = iota

	// AmiraMesh files carry "@<n>" markers before each data stream.
	AmiraMesh

	// HyperSurface files carry named, optionally grouped data streams.
	HyperSurface
)

func (f Format) String() string {
	switch f {
	case AmiraMesh:
		return "AmiraMesh"
	case HyperSurface:
		return "HyperSurface"
	default:
		return "Undefined"
	}
}

// designationPattern matches the first token of the designation line:
// an optional "#" marker, whitespace, then the file type keyword.
var designationPattern = regexp.MustCompile(`^\s*#\s*(AmiraMesh|HyperSurface)(?:\s|$)`)

// DetectFormat classifies a byte source as AmiraMesh, HyperSurface, or
// Undefined by inspecting its first bytes. It reads at least 50 bytes
// (more with WithFormatBytes) and returns the bytes consumed so callers
// can reuse them instead of re-reading. Read errors other than a short
// source are returned unchanged.
func DetectFormat(r io.Reader, opts ...Option) (Format, []byte, error) {
	cfg := newConfig(opts)
	prefix := make([]byte, cfg.formatBytes)
	n, err := io.ReadFull(r, prefix)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	if err != nil {
		return Undefined, nil, err
	}
	prefix = prefix[:n]
	format := sniffFormat(prefix)
	cfg.logger.Debug("format detected", "format", format.String(), "bytes", n)
	return format, prefix, nil
}

func sniffFormat(prefix []byte) Format {
	m := designationPattern.FindSubmatch(prefix)
	if m == nil {
		return Undefined
	}
	if string(m[1]) == "AmiraMesh" {
		return AmiraMesh
	}
	return HyperSurface
}
