package header

import (
	"strings"

	"httpkit/web/catalog"
)

const cookieKey = "set-cookie"

// SetCookies returns the stored Set-Cookie values, one entry per cookie.
// Unlike every other field, cookies are never comma-joined: cookie contents
// (Expires dates in particular) legitimately contain commas.
func (s *Store) SetCookies() []string {
	if len(s.cookies) == 0 {
		return nil
	}
	cookies := make([]string, len(s.cookies))
	copy(cookies, s.cookies)
	return cookies
}

func (s *Store) appendCookies(name any, combined string) error {
	cookies := SplitSetCookie(combined)

	delta := 0
	for _, c := range cookies {
		delta += fieldSize(catalog.SetCookie, c)
	}
	if err := s.fits(delta); err != nil {
		return s.reject(err, name)
	}

	s.cookies = append(s.cookies, cookies...)
	return nil
}

func (s *Store) setCookies(name any, combined string) error {
	cookies := SplitSetCookie(combined)

	delta := 0
	for _, c := range cookies {
		delta += fieldSize(catalog.SetCookie, c)
	}
	for _, c := range s.cookies {
		delta -= fieldSize(catalog.SetCookie, c)
	}
	if err := s.fits(delta); err != nil {
		return s.reject(err, name)
	}

	s.cookies = cookies
	return nil
}

// SplitSetCookie splits a combined Set-Cookie value into individual cookies.
// A comma only separates cookies when what follows looks like the start of a
// new cookie-pair (a token followed by "="); commas inside attribute values,
// like Expires dates, never match that shape.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc6265#section-4.1.1
func SplitSetCookie(combined string) []string {
	var cookies []string

	start := 0
	for i := 0; i < len(combined); i++ {
		if combined[i] != ',' {
			continue
		}
		if !startsCookiePair(combined[i+1:]) {
			continue
		}

		if c := strings.TrimSpace(combined[start:i]); c != "" {
			cookies = append(cookies, c)
		}
		start = i + 1
	}

	if c := strings.TrimSpace(combined[start:]); c != "" {
		cookies = append(cookies, c)
	}
	return cookies
}

func startsCookiePair(rest string) bool {
	rest = strings.TrimLeft(rest, " ")
	eq := strings.IndexByte(rest, '=')
	if eq <= 0 {
		return false
	}
	return catalog.IsToken(rest[:eq])
}
