package i2s

// Word is a sample type accepted by the driver.
type Word interface {
	~int8 | ~int16 | ~int32
}

// Source produces words for one channel. Next reports false once exhausted.
type Source interface {
	Next() (int32, bool)
}

// SourceFunc is the func form of Source.
type SourceFunc func() (int32, bool)

// Next implements Source.
func (f SourceFunc) Next() (int32, bool) {
	return f()
}

type sliceSource[W Word] struct {
	words []W
}

func (s *sliceSource[W]) Next() (int32, bool) {
	if len(s.words) == 0 {
		return 0, false
	}
	w := s.words[0]
	s.words = s.words[1:]
	return int32(w), true
}

// Slice returns a Source producing words in order.
func Slice[W Word](words []W) Source {
	return &sliceSource[W]{words: words}
}

// Chan returns a Source receiving words from ch until it is closed.
func Chan[W Word](ch <-chan W) Source {
	return SourceFunc(func() (int32, bool) {
		w, ok := <-ch
		return int32(w), ok
	})
}
