package amira

// Block joins an array declaration with the data definitions that
// reference it, giving a per-array view of the parsed metadata.
type Block struct {
	Declaration ArrayDeclaration
	Data        []DataDefinition
}

// Blocks returns one Block per array declaration, in declaration order.
// Data definitions that reference no declared array (possible only in
// malformed headers) are omitted.
func (f *File) Blocks() []Block {
	if f.Header == nil {
		return nil
	}
	blocks := make([]Block, 0, len(f.Header.ArrayDeclarations))
	byName := make(map[string]int, len(f.Header.ArrayDeclarations))
	for _, decl := range f.Header.ArrayDeclarations {
		byName[decl.Name] = len(blocks)
		blocks = append(blocks, Block{Declaration: decl})
	}
	for _, def := range f.Header.DataDefinitions {
		i, ok := byName[def.ArrayRef]
		if !ok {
			continue
		}
		blocks[i].Data = append(blocks[i].Data, def)
	}
	return blocks
}

// Block returns the block for the named array declaration.
func (f *File) Block(name string) (Block, bool) {
	for _, b := range f.Blocks() {
		if b.Declaration.Name == name {
			return b, true
		}
	}
	return Block{}, false
}
