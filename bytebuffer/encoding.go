package bytebuffer

import (
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding selects how strings are turned into bytes and back
type Encoding int

// supported encodings
const (
	UTF8 Encoding = iota
	UTF16LE
	Latin1
	ASCII
	Hex
	Base64
)

// aliases
const (
	UCS2   = UTF16LE
	Binary = Latin1
)

var encodingNames = map[string]Encoding{
	"utf8":     UTF8,
	"utf-8":    UTF8,
	"ucs2":     UTF16LE,
	"ucs-2":    UTF16LE,
	"utf16le":  UTF16LE,
	"utf-16le": UTF16LE,
	"latin1":   Latin1,
	"binary":   Latin1,
	"ascii":    ASCII,
	"hex":      Hex,
	"base64":   Base64,
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// ParseEncoding returns the Encoding for one of its common names
func ParseEncoding(name string) (Encoding, error) {
	if e, ok := encodingNames[strings.ToLower(name)]; ok {
		return e, nil
	}
	return 0, errors.Wrapf(ErrUnknownEncoding, "%q", name)
}

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf8"
	case UTF16LE:
		return "utf16le"
	case Latin1:
		return "latin1"
	case ASCII:
		return "ascii"
	case Hex:
		return "hex"
	case Base64:
		return "base64"
	}
	return "Encoding(" + strconv.Itoa(int(e)) + ")"
}

func (e Encoding) unknown() error {
	return errors.Wrapf(ErrUnknownEncoding, "encoding %d", int(e))
}

// Decode turns raw bytes into a string. Invalid UTF-8 and UTF-16 sequences
// decode to U+FFFD, a trailing odd byte of UTF-16 input is dropped
func (e Encoding) Decode(p []byte) (string, error) {
	switch e {
	case UTF8:
		if utf8.Valid(p) {
			return string(p), nil
		}
		s, err := unicode.UTF8.NewDecoder().Bytes(p)
		return string(s), err
	case UTF16LE:
		s, err := utf16le.NewDecoder().Bytes(p[:len(p)&^1])
		return string(s), err
	case Latin1:
		s, err := charmap.ISO8859_1.NewDecoder().Bytes(p)
		return string(s), err
	case ASCII:
		s := make([]byte, len(p))
		for i, c := range p {
			s[i] = c & 0x7f
		}
		return string(s), nil
	case Hex:
		return hex.EncodeToString(p), nil
	case Base64:
		return base64.StdEncoding.EncodeToString(p), nil
	}
	return "", e.unknown()
}

// Encode turns a string into raw bytes. Latin1 and ASCII keep the low byte of
// every UTF-16 code unit, Hex stops at the first invalid digit pair
func (e Encoding) Encode(s string) ([]byte, error) {
	switch e {
	case UTF8:
		return []byte(s), nil
	case UTF16LE:
		return utf16le.NewEncoder().Bytes([]byte(s))
	case Latin1, ASCII:
		units := utf16.Encode([]rune(s))
		p := make([]byte, len(units))
		for i, u := range units {
			p[i] = byte(u)
		}
		return p, nil
	case Hex:
		src := []byte(s[:len(s)&^1])
		p := make([]byte, hex.DecodedLen(len(src)))
		n, _ := hex.Decode(p, src)
		return p[:n], nil
	case Base64:
		s = strings.TrimRight(s, "=")
		enc := base64.RawStdEncoding
		if strings.ContainsAny(s, "-_") {
			enc = base64.RawURLEncoding
		}
		p, err := enc.DecodeString(s)
		return p, errors.Wrap(err, "decoding base64")
	}
	return nil, e.unknown()
}

// ByteLength returns the number of bytes s takes in this encoding
func (e Encoding) ByteLength(s string) (int, error) {
	p, err := e.Encode(s)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// fit returns how many leading bytes of p can be written into room bytes
// without splitting a character
func (e Encoding) fit(p []byte, room int) int {
	if len(p) <= room {
		return len(p)
	}

	switch e {
	case UTF8:
		n := room
		for n > 0 && !utf8.RuneStart(p[n]) {
			n--
		}
		return n
	case UTF16LE:
		return room &^ 1
	}
	return room
}
