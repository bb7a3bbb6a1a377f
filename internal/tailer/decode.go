package tailer

import (
	"fmt"
	"unicode/utf8"
)

// DecodeError reports bytes in the followed file that are not valid UTF-8.
type DecodeError struct {
	// Offset is the file position of the first invalid byte.
	Offset int64
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid UTF-8 at offset %d", e.Offset)
}

// decode validates data read at offset base and returns the prefix that can
// be emitted.  An incomplete rune at the very end is left out so it is read
// again once the writer finishes it.
func decode(data []byte, base int64) ([]byte, error) {
	end := len(data) - partialTail(data)
	for i := 0; i < end; {
		r, size := utf8.DecodeRune(data[i:end])
		if r == utf8.RuneError && size == 1 {
			return nil, &DecodeError{Offset: base + int64(i)}
		}
		i += size
	}
	return data[:end], nil
}

// partialTail returns the length of a trailing sequence that starts a valid
// multi-byte rune but is cut short.
func partialTail(data []byte) int {
	for n := 1; n < utf8.UTFMax && n <= len(data); n++ {
		c := data[len(data)-n]
		if utf8.RuneStart(c) {
			if c >= utf8.RuneSelf && !utf8.FullRune(data[len(data)-n:]) {
				return n
			}
			return 0
		}
	}
	return 0
}
