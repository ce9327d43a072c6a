package catalog

import "strings"

// Common media types.
//
// Reference: https://www.iana.org/assignments/media-types/media-types.xhtml
const (
	MIMETextPlain       = "text/plain"
	MIMETextHTML        = "text/html"
	MIMETextCSS         = "text/css"
	MIMETextCSV         = "text/csv"
	MIMETextJavaScript  = "text/javascript"
	MIMETextEventStream = "text/event-stream"

	MIMEApplicationJSON        = "application/json"
	MIMEApplicationProblemJSON = "application/problem+json"
	MIMEApplicationNDJSON      = "application/x-ndjson"
	MIMEApplicationXML         = "application/xml"
	MIMEApplicationForm        = "application/x-www-form-urlencoded"
	MIMEApplicationOctetStream = "application/octet-stream"
	MIMEApplicationPDF         = "application/pdf"
	MIMEApplicationZip         = "application/zip"
	MIMEApplicationGZip        = "application/gzip"

	MIMEMultipartForm = "multipart/form-data"

	MIMEImagePNG  = "image/png"
	MIMEImageJPEG = "image/jpeg"
	MIMEImageGIF  = "image/gif"
	MIMEImageWebP = "image/webp"
	MIMEImageSVG  = "image/svg+xml"
)

func ContentTypes() []string {
	return []string{
		MIMETextPlain, MIMETextHTML, MIMETextCSS, MIMETextCSV,
		MIMETextJavaScript, MIMETextEventStream,
		MIMEApplicationJSON, MIMEApplicationProblemJSON, MIMEApplicationNDJSON,
		MIMEApplicationXML, MIMEApplicationForm, MIMEApplicationOctetStream,
		MIMEApplicationPDF, MIMEApplicationZip, MIMEApplicationGZip,
		MIMEMultipartForm,
		MIMEImagePNG, MIMEImageJPEG, MIMEImageGIF, MIMEImageWebP, MIMEImageSVG,
	}
}

var contentTypeSet = func() map[string]bool {
	set := make(map[string]bool)
	for _, ct := range ContentTypes() {
		set[ct] = true
	}
	return set
}()

// IsContentType reports whether v names a media type: one of the known types
// or anything shaped "type/subtype" with token halves. Parameters after ";"
// are ignored. It never panics.
func IsContentType(v any) bool {
	var s string
	switch ct := v.(type) {
	case string:
		s = ct
	case []byte:
		s = string(ct)
	default:
		return false
	}

	if semi := strings.IndexByte(s, ';'); semi >= 0 {
		s = s[:semi]
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if contentTypeSet[s] {
		return true
	}

	kind, subtype, ok := strings.Cut(s, "/")
	if !ok {
		return false
	}
	return IsToken(kind) && IsToken(subtype)
}
