package amira

import (
	"io"
	"os"

	"github.com/amiratools/go-amira/internal/cursor"
)

// File is a parsed Amira file: its detected format, the raw header text,
// the structured header, and the header length in bytes. For HyperSurface
// files the header additionally carries every array declaration and data
// definition the stream walker discovered after the header.
type File struct {
	Format     Format
	HeaderText string
	Header     *Header
	HeaderLen  int64
}

// Open parses the Amira file at path.
func Open(path string, opts ...Option) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, opts...)
}

// Parse reads an Amira file from r. The header is always parsed in full;
// for HyperSurface files the data streams are walked as well, so the
// whole source is consumed. For AmiraMesh files only the header is read,
// leaving r positioned for NewStreamReader (use ReadHeader to obtain the
// remainder bytes).
func Parse(r io.Reader, opts ...Option) (*File, error) {
	cfg := newConfig(opts)
	cur := cursor.New(r)

	format, header, err := readHeader(cur, cfg)
	if err != nil {
		return nil, err
	}
	hdr, err := ParseHeader(header, format)
	if err != nil {
		return nil, err
	}
	if format == HyperSurface {
		if err := walkHyperSurface(cur, hdr, cfg); err != nil {
			return nil, err
		}
	}
	cfg.logger.Debug("file parsed", "format", format.String(),
		"header_bytes", len(header),
		"arrays", len(hdr.ArrayDeclarations),
		"definitions", len(hdr.DataDefinitions))
	return &File{
		Format:     format,
		HeaderText: header,
		Header:     hdr,
		HeaderLen:  int64(len(header)),
	}, nil
}
