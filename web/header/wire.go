package header

import (
	"io"
	"strings"

	iolib "httpkit/lib/io"

	"github.com/pkg/errors"
	"github.com/tidwall/sjson"
)

// String renders the store as RFC 7230 field lines, one "Name: value" per
// field, each terminated with CRLF, in sorted name order. Set-Cookie renders
// one line per cookie.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc7230#section-3.2
func (s *Store) String() string {
	var b strings.Builder
	for _, pair := range s.Entries() {
		b.WriteString(pair[0])
		b.WriteString(": ")
		b.WriteString(pair[1])
		b.WriteString("\r\n")
	}
	return b.String()
}

// JSON renders the store as a JSON object keyed by canonical field name:
// Set-Cookie as an array of its lines, every other field as its joined
// value. The output parses back through FromJSON.
func (s *Store) JSON() string {
	out := []byte("{}")
	for _, name := range s.Names() {
		var err error
		if lowerName(name) == cookieKey {
			out, err = sjson.SetBytes(out, escapePath(name), s.SetCookies())
		} else {
			e := s.entries[lowerName(name)]
			out, err = sjson.SetBytes(out, escapePath(e.name), e.value)
		}
		if err != nil {
			s.log.Warn("field not rendered", "name", name, "reason", err.Error())
		}
	}
	return string(out)
}

// escapePath neutralizes sjson path syntax so a field name addresses one
// literal key. Token names may legally contain "." and "|".
func escapePath(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '\\', '.', '*', '?', '|', '#', '@':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FromWire parses a raw header block: one "Name: value" field per line,
// CRLF-terminated (bare LF tolerated). Lines starting with whitespace
// continue the previous field's value (obs-fold). Malformed lines follow the
// store's validation policy.
func FromWire(raw string, opts *Options) (*Store, error) {
	s := New(opts)

	var name string
	var value strings.Builder
	flush := func() error {
		if name == "" {
			return nil
		}
		err := s.Append(name, value.String())
		name = ""
		value.Reset()
		return err
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		if line[0] == ' ' || line[0] == '\t' {
			// Continuation of the previous field.
			if name != "" {
				value.WriteByte(' ')
				value.WriteString(strings.TrimSpace(line))
			}
			continue
		}

		if err := flush(); err != nil {
			return nil, err
		}

		fieldName, fieldValue, err := parseFieldLine(line)
		if err != nil {
			if err := s.reject(err, line); err != nil {
				return nil, err
			}
			continue
		}
		name = fieldName
		value.WriteString(fieldValue)
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return s, nil
}

// How far past the store's own cap a wire read may go before giving up on
// finding the block terminator.
const maxWireRead = 4 * MaxTotalSize

// FromReader reads one wire-format block from r, up to and including the
// blank line that ends it, and parses what it read. Pass an
// *iolib.UntilReader to keep bytes past the blank line buffered for the
// caller; with a plain reader the remainder is dropped. A stream that ends
// before the blank line is parsed as-is.
func FromReader(r io.Reader, opts *Options) (*Store, error) {
	ur, ok := r.(*iolib.UntilReader)
	if !ok {
		ur = iolib.NewUntilReader(r)
	}

	raw, err := ur.ReadUntilLimit([]byte("\r\n\r\n"), maxWireRead)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "reading field block")
	}
	return FromWire(string(raw), opts)
}

func parseFieldLine(line string) (name, value string, err error) {
	name, value, found := strings.Cut(line, ":")
	if !found {
		return "", "", errors.Errorf("colon separator not found on field line: %q", line)
	}

	// No whitespace is allowed between field name and colon.
	// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-5.1-2
	if strings.TrimRight(name, " \t") != name {
		return "", "", errors.Errorf("field name has trailing whitespace: %q", line)
	}

	return name, strings.Trim(value, " \t"), nil
}
