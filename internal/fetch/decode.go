package fetch

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/thoreinstein/rsscheck/internal/errors"
)

// DecodeUTF8 validates raw as UTF-8 and strips a leading byte order mark.
func DecodeUTF8(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", errors.Wrapf(errors.ErrInvalidUTF8, "invalid byte at offset %d", firstInvalid(raw))
	}

	text, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		return "", errors.Wrap(err, "decoding UTF-8")
	}
	return string(text), nil
}

func firstInvalid(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
