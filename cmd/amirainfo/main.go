// Diagnostic tool for inspecting Amira file headers
package main

import (
	"fmt"
	"os"

	"github.com/amiratools/go-amira/amira"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/amirainfo/main.go <file.am|file.surf>")
		os.Exit(1)
	}

	filename := os.Args[1]
	fmt.Printf("=== Analyzing %s ===\n\n", filename)

	f, err := amira.Open(filename)
	if err != nil {
		fmt.Printf("ERROR: Failed to parse file: %v\n", err)
		os.Exit(1)
	}

	d := f.Header.Designation
	fmt.Printf("Format:   %s\n", f.Format)
	fmt.Printf("Version:  %s\n", d.Version)
	fmt.Printf("Encoding: %s\n", d.Encoding)
	if d.Dimension != "" {
		fmt.Printf("Dimension: %s\n", d.Dimension)
	}
	if d.ContentType != "" {
		fmt.Printf("Content type: %s\n", d.ContentType)
	}
	fmt.Printf("Header:   %d bytes\n", f.HeaderLen)
	fmt.Println()

	if len(f.Header.Comments) > 0 {
		fmt.Println("Comments:")
		for _, c := range f.Header.Comments {
			fmt.Printf("  %s\n", c)
		}
		fmt.Println()
	}

	if len(f.Header.Parameters) > 0 {
		fmt.Println("Parameters:")
		for _, p := range f.Header.Parameters {
			printParameter(p, "  ")
		}
		fmt.Println()
	}

	if len(f.Header.Materials) > 0 {
		fmt.Println("Materials:")
		for _, m := range f.Header.Materials {
			fmt.Printf("  %s\n", m.Name())
		}
		fmt.Println()
	}

	fmt.Println("Blocks:")
	for _, b := range f.Blocks() {
		decl := b.Declaration
		switch {
		case decl.IsList && len(decl.Dimensions) > 0:
			fmt.Printf("  %s (group, %d items)\n", decl.Name, decl.Dimensions[0]-1)
		case decl.Parent != "":
			fmt.Printf("  %s (item %d of %s)\n", decl.Name, decl.ItemID, decl.Parent)
		case len(decl.Dimensions) > 0:
			fmt.Printf("  %s %v\n", decl.Name, decl.Dimensions)
		case decl.HasCount:
			fmt.Printf("  %s = %d\n", decl.Name, decl.Count)
		default:
			fmt.Printf("  %s\n", decl.Name)
		}
		for _, def := range b.Data {
			loc := ""
			if def.Index >= 0 {
				loc = fmt.Sprintf(" @%d", def.Index)
			} else if len(def.StreamData) > 0 {
				loc = fmt.Sprintf(" (%d bytes at offset %d)", len(def.StreamData), def.StreamOffset)
			} else if def.Value != "" {
				loc = fmt.Sprintf(" = %s", def.Value)
			}
			if def.Dimension > 0 {
				fmt.Printf("    %s %s[%d]%s\n", def.Name, def.Type, def.Dimension, loc)
			} else {
				fmt.Printf("    %s %s%s\n", def.Name, def.Type, loc)
			}
		}
	}
}

func printParameter(p amira.Parameter, indent string) {
	switch {
	case len(p.Params) > 0:
		fmt.Printf("%s%s:\n", indent, p.Name)
		for _, nested := range p.Params {
			printParameter(nested, indent+"  ")
		}
	case len(p.Numbers) > 0:
		fmt.Printf("%s%s = %v\n", indent, p.Name, p.Numbers)
	default:
		fmt.Printf("%s%s = %q\n", indent, p.Name, p.Value)
	}
}
