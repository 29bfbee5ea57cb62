package amira

import (
	"io"
	"strconv"

	"github.com/amiratools/go-amira/internal/cursor"
	"github.com/amiratools/go-amira/internal/delim"
)

// StreamReader iterates over the data streams of an AmiraMesh file. Each
// stream begins at an "@<n>" marker line and runs to the next marker or
// end of file. In ASCII mode comment lines are stripped from the payload;
// in binary mode payloads are returned verbatim.
type StreamReader struct {
	cur     *cursor.Cursor
	set     *delim.Set
	cfg     *config
	binary  bool
	started bool
	index   int
	done    bool
}

// NewStreamReader returns a reader over the AmiraMesh streams that follow
// a header. remainder holds the bytes already consumed from r past the
// header boundary, and offset is the file offset of remainder[0]. binary
// selects verbatim payloads over comment-stripped ASCII ones.
func NewStreamReader(r io.Reader, remainder []byte, offset int64, binary bool, opts ...Option) *StreamReader {
	return &StreamReader{
		cur:    cursor.NewAt(r, remainder, offset),
		set:    delims,
		cfg:    newConfig(opts),
		binary: binary,
	}
}

// Next returns the next stream's payload, its "@<n>" index, and the file
// offset where the payload begins. After the last stream it returns a nil
// payload with index -1 and a nil error.
func (r *StreamReader) Next() (data []byte, index int, offset int64, err error) {
	if r.done {
		return nil, -1, r.cur.Base(), nil
	}
	if !r.started {
		if err := r.start(); err != nil {
			return nil, -1, 0, err
		}
		if r.done {
			return nil, -1, r.cur.Base(), nil
		}
	}

	index = r.index
	offset = r.cur.Base()
	if r.binary {
		data, err = r.nextBinary()
	} else {
		data, err = r.nextASCII()
	}
	if err != nil {
		return nil, -1, 0, err
	}
	r.cfg.logger.Debug("stream read", "index", index, "offset", offset, "bytes", len(data))
	return data, index, offset, nil
}

// start positions the cursor just past the first "@<n>" marker.
func (r *StreamReader) start() error {
	ov := r.set.RescanOverlap()
	from := 0
	for {
		if _, err := r.cur.Fill(r.cfg.streamBytes); err != nil {
			return err
		}
		if m := r.set.AmiraMeshStart(r.cur.Bytes(), from); m != nil {
			r.index = markerIndex(m)
			r.cur.Discard(m.End)
			r.started = true
			return nil
		}
		if r.cur.Exhausted() {
			r.cur.Discard(r.cur.Len())
			r.done = true
			return nil
		}
		from = r.cur.Len() - ov
		if from < 0 {
			from = 0
		}
	}
}

func (r *StreamReader) nextBinary() ([]byte, error) {
	ov := r.set.RescanOverlap()
	from := 0
	for {
		if m := r.set.AmiraMeshStart(r.cur.Bytes(), from); m != nil {
			data := append([]byte(nil), r.cur.Bytes()[:m.Start]...)
			r.index = markerIndex(m)
			r.cur.Discard(m.End)
			return data, nil
		}
		if r.cur.Exhausted() {
			data := append([]byte(nil), r.cur.Bytes()...)
			r.cur.Discard(r.cur.Len())
			r.done = true
			return data, nil
		}
		from = r.cur.Len() - ov
		if from < 0 {
			from = 0
		}
		if _, err := r.cur.Fill(r.cfg.streamBytes); err != nil {
			return nil, err
		}
	}
}

// nextASCII collects payload bytes up to the next marker, splicing out
// comment lines. removed counts spliced bytes so the marker's position in
// the source can be recovered when advancing the cursor.
func (r *StreamReader) nextASCII() ([]byte, error) {
	ov := r.set.RescanOverlap()
	work := append([]byte(nil), r.cur.Bytes()...)
	removed := 0
	searchAt := 0

	refill := func() error {
		if _, err := r.cur.Fill(r.cfg.streamBytes); err != nil {
			return err
		}
		work = append(work, r.cur.Bytes()[len(work)+removed:]...)
		return nil
	}

	for {
		m := r.set.AmiraMeshStartOrComment(work, searchAt)
		if m == nil {
			if r.cur.Exhausted() {
				data := append([]byte(nil), work...)
				r.cur.Discard(r.cur.Len())
				r.done = true
				return data, nil
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
		if m.IsComment() {
			if m.End >= len(work) && !r.cur.Exhausted() {
				searchAt = m.Start
				if err := refill(); err != nil {
					return nil, err
				}
				continue
			}
			removed += m.End - m.Start
			work = append(work[:m.Start], work[m.End:]...)
			searchAt = m.Start
			if len(work)-searchAt < ov && !r.cur.Exhausted() {
				if err := refill(); err != nil {
					return nil, err
				}
			}
			continue
		}
		data := append([]byte(nil), work[:m.Start]...)
		r.index = markerIndex(m)
		r.cur.Discard(m.End + removed)
		return data, nil
	}
}

func markerIndex(m *delim.Match) int {
	n, err := strconv.Atoi(m.Stream)
	if err != nil {
		return -1
	}
	return n
}
