package amira

import (
	"fmt"
	"strings"

	"github.com/amiratools/go-amira/internal/cursor"
	"github.com/amiratools/go-amira/internal/delim"
	"github.com/amiratools/go-amira/internal/dtype"
	"github.com/amiratools/go-amira/internal/hxsurface"
)

// groupState tracks the walker's position within a counted HyperSurface
// group. Level 0 is top level; level 1 is inside a group. Deeper nesting
// is not part of the format.
type groupState struct {
	level    int
	keyword  string // group keyword, e.g. "Patches"
	base     string // per-item base name, e.g. "Patch"
	name     string // current item array name, e.g. "Patch2"
	maxItems int
	item     int
}

// hxWalker walks the data streams of a HyperSurface file, appending array
// declarations and data definitions to the parsed header as it goes.
type hxWalker struct {
	cur    *cursor.Cursor
	set    *delim.Set
	hdr    *Header
	cfg    *config
	binary bool
	gs     groupState
}

// walkHyperSurface scans everything after the header. cur must be
// positioned at the first byte following the header text.
func walkHyperSurface(cur *cursor.Cursor, hdr *Header, cfg *config) error {
	enc := hdr.Designation.Encoding
	if !strings.HasPrefix(enc, "BINARY") && !strings.HasPrefix(enc, "ASCII") {
		return streamErrorf("", "unsupported data encoding %q", enc)
	}
	w := &hxWalker{
		cur:    cur,
		set:    delims,
		hdr:    hdr,
		cfg:    cfg,
		binary: hdr.Designation.Binary(),
	}
	return w.run()
}

func (w *hxWalker) run() error {
	ov := w.set.RescanOverlap()
	from := 0
	force := false
	for {
		if w.cur.Len() < ov || force {
			if _, err := w.cur.Fill(w.cfg.streamBytes); err != nil {
				return err
			}
			if w.cur.Exhausted() && w.cur.Len() == 0 {
				break
			}
		}
		force = false

		m := w.set.HyperSurfaceMarker(w.cur.Bytes(), from)
		if m == nil {
			if w.cur.Exhausted() {
				break
			}
			from = w.cur.Len() - ov
			if from < 0 {
				from = 0
			}
			force = true
			continue
		}
		if err := w.step(m); err != nil {
			return err
		}
		from = 0
	}
	if w.gs.level > 0 && w.gs.item < w.gs.maxItems {
		return streamErrorf(w.gs.keyword, "%d items of %q group missing",
			w.gs.maxItems-w.gs.item, w.gs.keyword)
	}
	return nil
}

// step processes one stream or group marker.
func (w *hxWalker) step(m *delim.Match) error {
	// A close brace between the previous stream and this marker ends the
	// current group item.
	if w.gs.level > 0 && w.set.HasCloseBrace(w.cur.Bytes()[:m.Start]) {
		w.gs.item++
		if w.gs.item > w.gs.maxItems {
			w.gs = groupState{}
		} else {
			w.gs.name = fmt.Sprintf("%s%d", w.gs.base, w.gs.item)
			w.hdr.ArrayDeclarations = append(w.hdr.ArrayDeclarations, ArrayDeclaration{
				Name:   w.gs.name,
				Parent: w.gs.keyword,
				ItemID: w.gs.item,
			})
			w.cfg.logger.Debug("group item", "group", w.gs.keyword, "item", w.gs.item)
		}
	}

	desc, ok := hxsurface.Lookup(m.Stream, w.gs.level)
	if !ok {
		// The delimiter patterns are built from the descriptor table;
		// a keyword resolving here but not there is a defect, not a
		// user-data error.
		return streamErrorf(m.Stream, "unknown HyperSurface stream")
	}
	if desc.Kind == dtype.Group {
		return w.enterGroup(m, desc)
	}
	return w.readStream(m, desc)
}

// enterGroup handles a counted group marker such as "Patches 2".
func (w *hxWalker) enterGroup(m *delim.Match, desc hxsurface.Descriptor) error {
	if w.gs.maxItems-w.gs.item > 0 {
		return streamErrorf(w.gs.keyword, "%d items of %q group missing",
			w.gs.maxItems-w.gs.item, w.gs.keyword)
	}
	if w.gs.level > 0 || desc.Owner != "" {
		return streamErrorf(m.Stream, "nested groups not supported")
	}
	if !m.HasCount {
		return streamErrorf(m.Stream, "item count not readable")
	}
	if m.Count == 0 {
		if !desc.Optional {
			return streamErrorf(m.Stream, "%q group is mandatory", desc.Block)
		}
		w.cur.Discard(m.End)
		return nil
	}

	w.gs = groupState{
		level:    1,
		keyword:  m.Stream,
		base:     desc.Block,
		name:     desc.Block + "1",
		maxItems: int(m.Count),
		item:     1,
	}
	w.hdr.ArrayDeclarations = append(w.hdr.ArrayDeclarations,
		ArrayDeclaration{Name: m.Stream, Dimensions: []int64{m.Count + 1}, IsList: true},
		ArrayDeclaration{Name: w.gs.name, Parent: m.Stream, ItemID: 1},
	)
	w.cur.Discard(m.End)
	w.cfg.logger.Debug("group opened", "group", m.Stream, "items", m.Count)
	return nil
}

// readStream extracts one stream's payload or value and records it.
func (w *hxWalker) readStream(m *delim.Match, desc hxsurface.Descriptor) error {
	def := DataDefinition{
		Name:      desc.Block,
		Type:      desc.Kind.String(),
		Dimension: desc.Items,
		Index:     -1,
	}

	fixed := desc.HasItems
	switch {
	case fixed:
		if !m.HasCount {
			return streamErrorf(m.Stream, "item count required but absent")
		}
		size := m.Count * int64(desc.Items) * int64(desc.Kind.Size())
		def.StreamOffset = w.cur.Offset(m.End)
		def.Count = m.Count
		def.HasCount = true
		w.cur.Discard(m.End)

		var data []byte
		var err error
		if w.binary {
			data, err = w.cur.Take(int(size))
		} else {
			data, err = w.collectASCII(m.Stream)
		}
		if err != nil {
			return err
		}
		def.StreamData = data
		w.cfg.logger.Debug("stream extracted", "stream", m.Stream,
			"offset", def.StreamOffset, "bytes", len(data))

	case m.HasCount:
		// No fixed size: the count itself is the stream's value.
		def.StreamOffset = w.cur.Offset(m.CountEnd)
		def.Count = m.Count
		def.HasCount = true
		w.cur.Discard(m.End)

	case m.Str != "":
		def.StreamOffset = w.cur.Offset(m.StrEnd)
		def.Value = m.Str
		w.cur.Discard(m.End)

	default:
		return streamErrorf(m.Stream, "stream carries neither count nor value")
	}

	return w.emit(m.Stream, desc, def, fixed)
}

// emit routes an extracted stream record to the parsed header.
func (w *hxWalker) emit(stream string, desc hxsurface.Descriptor, def DataDefinition, fixed bool) error {
	if w.gs.level == 0 {
		if desc.Owner != "" {
			return streamErrorf(stream, "stream not expected outside %q group", desc.Owner)
		}
		if fixed {
			// Top-level array stream (Vertices): declare the array and
			// attach the data definition to it.
			w.hdr.ArrayDeclarations = append(w.hdr.ArrayDeclarations, ArrayDeclaration{
				Name:       stream,
				Dimensions: []int64{def.Count},
			})
			def.ArrayRef = stream
			w.hdr.DataDefinitions = append(w.hdr.DataDefinitions, def)
			return nil
		}
		// Parameter-like scalar or token stream.
		w.hdr.ArrayDeclarations = append(w.hdr.ArrayDeclarations, ArrayDeclaration{
			Name:       desc.Block,
			Count:      def.Count,
			HasCount:   def.HasCount,
			Value:      def.Value,
			StreamType: desc.Kind,
		})
		return nil
	}
	if desc.Owner != w.gs.base {
		return streamErrorf(stream, "stream not expected on %q group", w.gs.name)
	}
	def.ArrayRef = w.gs.name
	w.hdr.DataDefinitions = append(w.hdr.DataDefinitions, def)
	return nil
}

// collectASCII gathers an ASCII stream payload up to the next genuine
// terminator (a close brace or the next stream keyword), stripping
// comment lines. Delimiter-like text inside comments never terminates
// the payload. The terminator itself is left unconsumed.
func (w *hxWalker) collectASCII(stream string) ([]byte, error) {
	ov := w.set.RescanOverlap()

	// work holds the payload candidate with comments spliced out;
	// removed counts the spliced bytes so the cursor can be advanced by
	// the true source length when the terminator is found.
	work := append([]byte(nil), w.cur.Bytes()...)
	removed := 0
	searchAt := 0

	refill := func() error {
		if _, err := w.cur.Fill(w.cfg.streamBytes); err != nil {
			return err
		}
		work = append(work, w.cur.Bytes()[len(work)+removed:]...)
		return nil
	}

	for {
		m := w.set.StopOrComment(work, searchAt)
		if m == nil {
			if w.cur.Exhausted() {
				return nil, streamErrorf(stream, "stream terminator not found")
			}
			searchAt = len(work) - ov
			if searchAt < 0 {
				searchAt = 0
			}
			if err := refill(); err != nil {
				return nil, err
			}
			continue
		}
		if !m.Stop {
			// Comment: it may extend beyond the bytes read so far.
			if m.End >= len(work) && !w.cur.Exhausted() {
				searchAt = m.Start
				if err := refill(); err != nil {
					return nil, err
				}
				continue
			}
			removed += m.End - m.Start
			work = append(work[:m.Start], work[m.End:]...)
			searchAt = m.Start
			if len(work)-searchAt < ov && !w.cur.Exhausted() {
				if err := refill(); err != nil {
					return nil, err
				}
			}
			continue
		}
		payload := append([]byte(nil), work[:m.Start]...)
		w.cur.Discard(m.Start + removed)
		return payload, nil
	}
}
