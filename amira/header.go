package amira

import "github.com/amiratools/go-amira/internal/dtype"

// Header is the structured representation of an Amira file header. For
// HyperSurface files the stream walker appends further array declarations
// and data definitions discovered after the header.
type Header struct {
	Designation       Designation
	Comments          []string
	ArrayDeclarations []ArrayDeclaration
	Parameters        []Parameter
	Materials         []Material
	DataDefinitions   []DataDefinition
}

// Designation holds the first header line identifying the file.
type Designation struct {
	// Format is the file family (AmiraMesh or HyperSurface).
	Format Format

	// Dimension is "3D" when present.
	Dimension string

	// Encoding is ASCII, BINARY, or BINARY-LITTLE-ENDIAN.
	Encoding string

	// Version is the format version string, e.g. "2.1".
	Version string

	// ContentType is "hxsurface" for AmiraMesh files that embed a
	// surface, empty otherwise.
	ContentType string
}

// Binary reports whether the file's data streams are binary encoded.
func (d Designation) Binary() bool {
	return len(d.Encoding) >= 6 && d.Encoding[:6] == "BINARY"
}

// ArrayDeclaration describes a named array: a "define" line from the
// header, or an entry synthesized by the HyperSurface stream walker.
type ArrayDeclaration struct {
	Name       string
	Dimensions []int64

	// Parent and ItemID link a synthesized per-item array (Patch1,
	// Patch2, ...) to its owning group keyword (Patches).
	Parent string
	ItemID int

	// IsList marks the container declaration of a counted group.
	IsList bool

	// Scalar stream payload, for parameter-like HyperSurface streams
	// (e.g. NBranchingPoints): either a numeric Count or a token Value.
	Count      int64
	HasCount   bool
	Value      string
	StreamType dtype.Kind
}

// Parameter is a named header parameter. Exactly one of Params, Numbers,
// and Value is populated.
type Parameter struct {
	Name    string
	Params  []Parameter // nested parameter list
	Numbers []float64   // numeric value(s)
	Value   string      // string value
}

// Material is one block of the Materials section.
type Material struct {
	Params []Parameter
}

// Name returns the material's Name parameter, or an empty string.
func (m Material) Name() string {
	for _, p := range m.Params {
		if p.Name == "Name" {
			return p.Value
		}
	}
	return ""
}

// DataDefinition links a named array to the data block backing it.
type DataDefinition struct {
	// ArrayRef names the array declaration the data belongs to.
	ArrayRef string

	// Name is the data block name (e.g. Coordinates, Triangles).
	Name string

	// Type is the element type keyword from the header, or the resolved
	// kind for walker-discovered streams.
	Type string

	// Dimension is the per-item element count (e.g. 3 for float[3]).
	Dimension int

	// Index is the AmiraMesh stream index from "@<n>"; -1 for
	// HyperSurface streams located by the walker.
	Index int

	// Interpolation is the declared interpolation method, if any.
	Interpolation string

	// Format and Length describe an inline-encoded AmiraMesh stream
	// (HxByteRLE or HxZip with the encoded byte length).
	Format string
	Length int64

	// StreamOffset is the absolute file offset of the payload and
	// StreamData the extracted bytes, for walker-discovered streams.
	StreamOffset int64
	StreamData   []byte

	// Value or Count hold the payload of token-valued and scalar
	// streams respectively.
	Value    string
	Count    int64
	HasCount bool
}
