package dtype

// Kind identifies a primitive Amira element type.
type Kind int

const (
	Invalid Kind = iota
	Byte
	Short
	Int
	Long
	Float
	Double
	Char

	// Group marks a counted list container in the HyperSurface
	// descriptor table. It has no element size.
	Group
)

var kindNames = map[Kind]string{
	Byte:   "byte",
	Short:  "short",
	Int:    "int",
	Long:   "long",
	Float:  "float",
	Double: "double",
	Char:   "char",
	Group:  "group",
}

var kindSizes = map[Kind]int{
	Byte:   1,
	Short:  2,
	Int:    4,
	Long:   8,
	Float:  4,
	Double: 8,
	Char:   1,
	Group:  0,
}

// Parse maps a header type keyword to its Kind. The second result is false
// for unknown keywords.
func Parse(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return Invalid, false
}

// Size returns the number of bytes a single element occupies on disk.
// Group and Invalid have size 0.
func (k Kind) Size() int {
	return kindSizes[k]
}

// String returns the header keyword for the kind.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "invalid"
}
