package i2s

// cursor walks the bits of one word, most significant bit first.
// Invariant: 0 <= offset <= width.
type cursor struct {
	word   uint32
	width  int
	offset int
}

func newCursor(word int32, width Width) cursor {
	w := int(width)
	return cursor{word: uint32(word) & width.mask(), width: w}
}

// next returns the next bit, false for ok once all bits are emitted.
func (c *cursor) next() (bit, ok bool) {
	if c.offset >= c.width {
		return false, false
	}
	c.offset++
	return (c.word>>uint(c.width-c.offset))&1 != 0, true
}

func (c *cursor) remaining() int {
	return c.width - c.offset
}
