package cursor

import "io"

// Cursor is a chunked reader over a byte source. It owns a growable buffer
// of not-yet-consumed bytes and the absolute file offset of the buffer
// head. Slices returned by Bytes and Take alias or copy the internal
// buffer as documented; slices obtained from Bytes are invalidated by the
// next Fill, Discard, or Take.
type Cursor struct {
	src       io.Reader
	buf       []byte
	base      int64
	exhausted bool
}

// New returns a cursor reading from src starting at file offset 0.
func New(src io.Reader) *Cursor {
	return NewAt(src, nil, 0)
}

// NewAt returns a cursor whose buffer is seeded with bytes already read
// from the source. offset is the file offset of seed[0]; the source is
// assumed to be positioned immediately after the seed bytes.
func NewAt(src io.Reader, seed []byte, offset int64) *Cursor {
	c := &Cursor{src: src, base: offset}
	if len(seed) > 0 {
		c.buf = append(c.buf, seed...)
	}
	return c
}

// Bytes returns the buffered, not-yet-consumed bytes. The slice is only
// valid until the cursor is next mutated.
func (c *Cursor) Bytes() []byte {
	return c.buf
}

// Len returns the number of buffered bytes.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Base returns the file offset of the first buffered byte.
func (c *Cursor) Base() int64 {
	return c.base
}

// Offset returns the file offset of buffered byte i.
func (c *Cursor) Offset(i int) int64 {
	return c.base + int64(i)
}

// Exhausted reports whether the source has signaled end-of-file. Buffered
// bytes may still remain after exhaustion.
func (c *Cursor) Exhausted() bool {
	return c.exhausted
}

// Fill reads up to n new bytes from the source and appends them to the
// buffer. It returns the number of bytes read. A short count with a nil
// error means the source is exhausted; read errors other than end-of-file
// are returned unchanged.
func (c *Cursor) Fill(n int) (int, error) {
	if n <= 0 || c.exhausted {
		return 0, nil
	}
	start := len(c.buf)
	c.buf = append(c.buf, make([]byte, n)...)
	m, err := io.ReadFull(c.src, c.buf[start:])
	c.buf = c.buf[:start+m]
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		c.exhausted = true
		return m, nil
	}
	return m, err
}

// Ensure refills the buffer until at least n bytes are available or the
// source is exhausted.
func (c *Cursor) Ensure(n int) error {
	for len(c.buf) < n && !c.exhausted {
		if _, err := c.Fill(n - len(c.buf)); err != nil {
			return err
		}
	}
	return nil
}

// Discard drops the first n buffered bytes and advances the base offset.
// It panics if n exceeds the buffer length.
func (c *Cursor) Discard(n int) {
	if n < 0 || n > len(c.buf) {
		panic("cursor: discard beyond buffer")
	}
	rest := copy(c.buf, c.buf[n:])
	c.buf = c.buf[:rest]
	c.base += int64(n)
}

// Take consumes exactly n bytes, refilling from the source as needed, and
// returns them as a fresh slice. If the source is exhausted first, the
// result is shorter than n.
func (c *Cursor) Take(n int) ([]byte, error) {
	if err := c.Ensure(n); err != nil {
		return nil, err
	}
	k := n
	if k > len(c.buf) {
		k = len(c.buf)
	}
	out := append([]byte(nil), c.buf[:k]...)
	c.Discard(k)
	return out, nil
}
