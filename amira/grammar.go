package amira

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHeader parses header text into a structured Header. The format
// hint overrides the designation's file family when supplied. Failure
// yields a *SyntaxError carrying the unconsumed remainder.
func ParseHeader(text string, format Format) (*Header, error) {
	p := &headerParser{src: text}
	h := &Header{}

	if err := p.parseDesignation(&h.Designation); err != nil {
		return nil, err
	}
	if format != Undefined {
		h.Designation.Format = format
	}

	p.skipCommentLines(h)
	if err := p.parseArrayDeclarations(h); err != nil {
		return nil, err
	}

	for {
		p.skipCommentLines(h)
		switch {
		case p.atWord("Parameters"):
			p.word()
			params, err := p.parseParameterList()
			if err != nil {
				return nil, err
			}
			h.Parameters = append(h.Parameters, params...)
		case p.atWord("Materials"):
			p.word()
			mats, err := p.parseMaterials()
			if err != nil {
				return nil, err
			}
			h.Materials = append(h.Materials, mats...)
		default:
			if err := p.parseDataDefinitions(h); err != nil {
				return nil, err
			}
			p.skipAll()
			if !p.eof() {
				return nil, p.errorf("unexpected trailing content")
			}
			return h, nil
		}
	}
}

// headerParser is a position cursor over decoded header text.
type headerParser struct {
	src string
	pos int
}

func (p *headerParser) eof() bool { return p.pos >= len(p.src) }

func (p *headerParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

// skipSpace skips spaces and tabs within a line.
func (p *headerParser) skipSpace() {
	for !p.eof() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\r') {
		p.pos++
	}
}

// skipAll skips spaces, tabs, and newlines.
func (p *headerParser) skipAll() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

// skipCommentLines consumes blank and "#" comment lines, recording the
// comments.
func (p *headerParser) skipCommentLines(h *Header) {
	for {
		p.skipAll()
		if p.peek() != '#' {
			return
		}
		line := strings.TrimSpace(p.restOfLine())
		h.Comments = append(h.Comments, strings.TrimSpace(strings.TrimPrefix(line, "#")))
	}
}

func (p *headerParser) restOfLine() string {
	end := strings.IndexByte(p.src[p.pos:], '\n')
	if end < 0 {
		line := p.src[p.pos:]
		p.pos = len(p.src)
		return line
	}
	line := p.src[p.pos : p.pos+end]
	p.pos += end + 1
	return line
}

func isIdentStart(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b == '_'
}

func isIdentByte(b byte) bool {
	return isIdentStart(b) || b >= '0' && b <= '9' || b == '-'
}

func isNumberStart(b byte) bool {
	return b >= '0' && b <= '9' || b == '-' || b == '+' || b == '.'
}

// word consumes the next identifier, including leading space.
func (p *headerParser) word() string {
	p.skipSpace()
	start := p.pos
	if !p.eof() && isIdentStart(p.src[p.pos]) {
		p.pos++
		for !p.eof() && isIdentByte(p.src[p.pos]) {
			p.pos++
		}
	}
	return p.src[start:p.pos]
}

// atWord reports whether the next token equals w, without consuming.
func (p *headerParser) atWord(w string) bool {
	save := p.pos
	p.skipAll()
	got := p.word()
	p.pos = save
	return got == w
}

// number consumes a numeric literal, including leading space.
func (p *headerParser) number() (float64, bool) {
	p.skipSpace()
	start := p.pos
	if !p.eof() && (p.src[p.pos] == '-' || p.src[p.pos] == '+') {
		p.pos++
	}
	digits := false
	for !p.eof() && (p.src[p.pos] >= '0' && p.src[p.pos] <= '9' || p.src[p.pos] == '.') {
		digits = true
		p.pos++
	}
	if digits && !p.eof() && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
		mark := p.pos
		p.pos++
		if !p.eof() && (p.src[p.pos] == '-' || p.src[p.pos] == '+') {
			p.pos++
		}
		expDigits := false
		for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			expDigits = true
			p.pos++
		}
		if !expDigits {
			p.pos = mark
		}
	}
	if !digits {
		p.pos = start
		return 0, false
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		p.pos = start
		return 0, false
	}
	return v, true
}

func (p *headerParser) expect(b byte) error {
	p.skipSpace()
	if p.peek() != b {
		return p.errorf("expected %q", string(b))
	}
	p.pos++
	return nil
}

func (p *headerParser) errorf(format string, args ...interface{}) error {
	rem := p.src[p.pos:]
	if len(rem) > 40 {
		rem = rem[:40]
	}
	return &SyntaxError{
		Offset:    p.pos,
		Remainder: rem,
		Reason:    fmt.Sprintf(format, args...),
	}
}

// parseDesignation parses the "#" designation line. Both historical token
// orders are accepted: type [3D] format version [<hxsurface>] and
// type version format.
func (p *headerParser) parseDesignation(d *Designation) error {
	p.skipAll()
	if p.peek() != '#' {
		return p.errorf("expected designation line")
	}
	p.pos++
	switch w := p.word(); w {
	case "AmiraMesh":
		d.Format = AmiraMesh
	case "HyperSurface":
		d.Format = HyperSurface
	default:
		return p.errorf("unknown file type %q", w)
	}
	for _, tok := range strings.Fields(p.restOfLine()) {
		switch {
		case tok == "3D":
			d.Dimension = tok
		case tok == "ASCII" || tok == "BINARY" || tok == "BINARY-LITTLE-ENDIAN":
			d.Encoding = tok
		case tok == "<hxsurface>":
			d.ContentType = "hxsurface"
		case isNumberStart(tok[0]):
			d.Version = tok
		default:
			return p.errorf("unexpected designation token %q", tok)
		}
	}
	if d.Encoding == "" {
		return p.errorf("designation missing data encoding")
	}
	return nil
}

// parseArrayDeclarations parses "define Name dims" lines and the legacy
// "nName dims" form.
func (p *headerParser) parseArrayDeclarations(h *Header) error {
	for {
		p.skipCommentLines(h)
		save := p.pos
		p.skipAll()
		w := p.word()

		var name string
		switch {
		case w == "define":
			name = p.word()
			if name == "" {
				return p.errorf("expected array name after define")
			}
		case len(w) > 1 && w[0] == 'n' && !p.atNumberNext():
			p.pos = save
			return nil
		case len(w) > 1 && w[0] == 'n':
			name = w[1:]
		default:
			p.pos = save
			return nil
		}

		decl := ArrayDeclaration{Name: name}
		for {
			v, ok := p.number()
			if !ok {
				break
			}
			decl.Dimensions = append(decl.Dimensions, int64(v))
		}
		if len(decl.Dimensions) == 0 {
			return p.errorf("array %q has no dimensions", name)
		}
		h.ArrayDeclarations = append(h.ArrayDeclarations, decl)
	}
}

// atNumberNext reports whether a numeric token follows on the same line.
func (p *headerParser) atNumberNext() bool {
	save := p.pos
	_, ok := p.number()
	p.pos = save
	return ok
}

// parseParameterList parses "{ parameter* }".
func (p *headerParser) parseParameterList() ([]Parameter, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	var params []Parameter
	for {
		p.skipAll()
		switch {
		case p.eof():
			return nil, p.errorf("unterminated parameter list")
		case p.peek() == '}':
			p.pos++
			return params, nil
		case p.peek() == '#':
			p.restOfLine()
		default:
			param, err := p.parseParameter()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
		}
	}
}

func (p *headerParser) parseParameter() (Parameter, error) {
	name := p.word()
	if name == "" {
		return Parameter{}, p.errorf("expected parameter name")
	}
	param := Parameter{Name: name}
	p.skipSpace()
	switch {
	case p.peek() == '{':
		nested, err := p.parseParameterList()
		if err != nil {
			return Parameter{}, err
		}
		param.Params = nested
	case p.peek() == '"':
		s, err := p.quotedString()
		if err != nil {
			return Parameter{}, err
		}
		param.Value = s
	case !p.eof() && isNumberStart(p.peek()) && p.atNumberNext():
		for {
			v, ok := p.number()
			if !ok {
				break
			}
			param.Numbers = append(param.Numbers, v)
		}
	default:
		// bare token value up to comma, close brace, or end of line
		start := p.pos
		for !p.eof() && p.src[p.pos] != ',' && p.src[p.pos] != '\n' && p.src[p.pos] != '}' {
			p.pos++
		}
		param.Value = strings.TrimSpace(p.src[start:p.pos])
		if p.peek() == ',' {
			p.pos++
		}
		return param, nil
	}
	p.skipSpace()
	if p.peek() == ',' {
		p.pos++
	}
	return param, nil
}

func (p *headerParser) quotedString() (string, error) {
	if p.peek() != '"' {
		return "", p.errorf("expected quoted string")
	}
	p.pos++
	end := strings.IndexByte(p.src[p.pos:], '"')
	if end < 0 {
		return "", p.errorf("unterminated string")
	}
	s := p.src[p.pos : p.pos+end]
	p.pos += end + 1
	return s, nil
}

// parseMaterials parses the standalone Materials section: a brace block
// holding one parameter list per material.
func (p *headerParser) parseMaterials() ([]Material, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	var mats []Material
	for {
		p.skipAll()
		switch {
		case p.eof():
			return nil, p.errorf("unterminated Materials section")
		case p.peek() == '}':
			p.pos++
			return mats, nil
		case p.peek() == '{':
			params, err := p.parseParameterList()
			if err != nil {
				return nil, err
			}
			mats = append(mats, Material{Params: params})
		default:
			// named material block, as inside Parameters
			param, err := p.parseParameter()
			if err != nil {
				return nil, err
			}
			mats = append(mats, Material{Params: []Parameter{param}})
		}
	}
}

// parseDataDefinitions parses lines of the form
//
//	Ref { type[dim] Name } = Linear(@1) (HxByteRLE,1234)
func (p *headerParser) parseDataDefinitions(h *Header) error {
	for {
		p.skipCommentLines(h)
		if p.eof() {
			return nil
		}
		save := p.pos
		ref := p.word()
		if ref == "" {
			return nil
		}
		p.skipSpace()
		if p.peek() != '{' {
			p.pos = save
			return nil
		}
		p.pos++

		def := DataDefinition{ArrayRef: ref, Index: -1}
		def.Type = p.word()
		if def.Type == "" {
			return p.errorf("expected data type")
		}
		p.skipSpace()
		if p.peek() == '[' {
			p.pos++
			v, ok := p.number()
			if !ok {
				return p.errorf("expected data dimension")
			}
			def.Dimension = int(v)
			if err := p.expect(']'); err != nil {
				return err
			}
		}
		def.Name = p.word()
		if def.Name == "" {
			return p.errorf("expected data name")
		}
		if err := p.expect('}'); err != nil {
			return err
		}

		p.skipSpace()
		if p.peek() == '=' {
			p.pos++
		}
		p.skipSpace()
		if isIdentStart(p.peek()) {
			switch w := p.word(); w {
			case "Linear", "Constant", "EdgeElem":
				def.Interpolation = w
			default:
				return p.errorf("unknown interpolation method %q", w)
			}
		}
		p.skipSpace()
		if p.peek() == '(' {
			p.pos++
		}
		p.skipSpace()
		if p.peek() != '@' {
			return p.errorf("expected stream index")
		}
		p.pos++
		v, ok := p.number()
		if !ok {
			return p.errorf("expected stream index digits")
		}
		def.Index = int(v)
		p.skipSpace()
		if p.peek() == ')' {
			p.pos++
		}
		p.skipSpace()
		if p.peek() == '(' {
			p.pos++
			switch w := p.word(); w {
			case "HxByteRLE", "HxZip":
				def.Format = w
			default:
				return p.errorf("unknown stream format %q", w)
			}
			p.skipSpace()
			if p.peek() == ',' {
				p.pos++
				n, ok := p.number()
				if !ok {
					return p.errorf("expected encoded stream length")
				}
				def.Length = int64(n)
			}
			if err := p.expect(')'); err != nil {
				return err
			}
		}
		h.DataDefinitions = append(h.DataDefinitions, def)
	}
}
