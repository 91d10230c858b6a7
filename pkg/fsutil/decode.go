package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// ErrUndecodable is returned when no supported encoding decodes a file cleanly.
var ErrUndecodable = errors.New("unsupported text encoding")

// Encoding names a text encoding a document was read with.
type Encoding string

const (
	EncodingUTF8    Encoding = "utf-8"
	EncodingUTF8BOM Encoding = "utf-8-sig"
	EncodingGBK     Encoding = "gbk"
	EncodingBig5    Encoding = "cp950"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// candidates lists the encodings tried in order after plain UTF-8.
//
//nolint:gochecknoglobals // Read-only lookup table.
var candidates = []struct {
	name  Encoding
	codec encoding.Encoding
}{
	{EncodingUTF8BOM, unicode.UTF8BOM},
	{EncodingGBK, simplifiedchinese.GBK},
	{EncodingBig5, traditionalchinese.Big5},
}

// Document is a decoded Markdown file.
type Document struct {
	// Text is the decoded content, converted to LF when CRLF is set.
	Text string

	// Encoding is the encoding the file was decoded with.
	Encoding Encoding

	// CRLF is set when every line ending in the raw content was CRLF. Files
	// with mixed endings keep their text as read.
	CRLF bool

	// Info is the on-disk state at read time.
	Info *FileInfo
}

// ReadDocument reads and decodes the file at path.
func ReadDocument(ctx context.Context, path string) (*Document, error) {
	raw, info, err := ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	text, enc, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	doc := &Document{
		Text:     text,
		Encoding: enc,
		CRLF:     allCRLF(text),
		Info:     info,
	}
	if doc.CRLF {
		doc.Text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	return doc, nil
}

// allCRLF reports whether text has line endings and all of them are CRLF.
func allCRLF(text string) bool {
	n := strings.Count(text, "\n")
	return n > 0 && strings.Count(text, "\r\n") == n
}

// Decode converts raw bytes to text, trying UTF-8, UTF-8 with a byte order
// mark, GBK and Big5 in that order. A decoding that yields replacement
// characters absent from the input is rejected.
func Decode(raw []byte) (string, Encoding, error) {
	if utf8.Valid(raw) && !bytes.HasPrefix(raw, utf8BOM) {
		return string(raw), EncodingUTF8, nil
	}

	for _, c := range candidates {
		out, err := c.codec.NewDecoder().Bytes(raw)
		if err != nil || !utf8.Valid(out) || bytes.ContainsRune(out, utf8.RuneError) {
			continue
		}
		return string(out), c.name, nil
	}

	return "", "", ErrUndecodable
}

// Encode converts text back to bytes in the given encoding, restoring CRLF
// line endings when crlf is set.
func Encode(text string, enc Encoding, crlf bool) ([]byte, error) {
	if crlf {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}

	if enc == EncodingUTF8 || enc == "" {
		return []byte(text), nil
	}

	for _, c := range candidates {
		if c.name != enc {
			continue
		}
		out, err := c.codec.NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", enc, err)
		}
		return out, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUndecodable, enc)
}

// Bytes encodes the document text for writing.
func (d *Document) Bytes() ([]byte, error) {
	return Encode(d.Text, d.Encoding, d.CRLF)
}
