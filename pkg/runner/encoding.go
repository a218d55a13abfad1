package runner

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Supported output encodings.
const (
	EncodingUTF8    = "utf8"
	EncodingCP1252  = "cp1252"
	EncodingUTF16LE = "utf16le"
	EncodingUTF16BE = "utf16be"
	EncodingAuto    = "auto"
)

// resolveEncoding maps a user-facing encoding name to a golang.org/x/text Encoding.
// UTF-8 resolves to a replacing decoder so invalid byte sequences become U+FFFD
// instead of failing the stream.
func resolveEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case EncodingUTF8, "utf-8", "":
		return unicode.UTF8, nil
	case EncodingCP1252, "windows-1252", "latin1", "iso-8859-1":
		return charmap.Windows1252, nil
	case EncodingUTF16LE, "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case EncodingUTF16BE, "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %q (supported: utf8, cp1252, utf16le, utf16be, auto)", name)
	}
}

// ValidateEncoding reports whether name is an encoding NewDecodingReader accepts.
func ValidateEncoding(name string) error {
	if strings.EqualFold(strings.TrimSpace(name), EncodingAuto) {
		return nil
	}
	_, err := resolveEncoding(name)
	return err
}

// bomEncoding returns the encoding announced by a byte order mark, or UTF-8.
func bomEncoding(head []byte) encoding.Encoding {
	switch {
	case len(head) >= 2 && head[0] == 0xFF && head[1] == 0xFE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case len(head) >= 2 && head[0] == 0xFE && head[1] == 0xFF:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		return unicode.UTF8BOM
	}
}

// NewDecodingReader wraps r so that it yields valid UTF-8 decoded from enc.
// Undecodable input is replaced, never reported as an error.
// With "auto" the first bytes are sniffed for a byte order mark.
func NewDecodingReader(r io.Reader, enc string) (io.Reader, error) {
	if strings.EqualFold(strings.TrimSpace(enc), EncodingAuto) {
		br := bufio.NewReader(r)
		// Peek blocks until two bytes arrive or the stream ends; a short
		// peek simply means no BOM.
		head, _ := br.Peek(2)
		return transform.NewReader(br, bomEncoding(head).NewDecoder()), nil
	}

	e, err := resolveEncoding(enc)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, e.NewDecoder()), nil
}
