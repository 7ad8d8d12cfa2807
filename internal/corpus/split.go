package corpus

import (
	"bytes"
	"strings"
	"unicode"
)

// scanLines is a bufio.SplitFunc that ends a line at "\n", "\r\n" or a lone
// "\r". A trailing terminator does not produce an extra empty line.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// A "\r" at the end of the buffer may be the first half of "\r\n".
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// IsSpace reports whether r is white space for line trimming and query
// splitting. Besides Unicode white space this includes the ASCII information
// separators 0x1C-0x1F.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func strip(line string) string {
	return strings.TrimFunc(line, IsSpace)
}
