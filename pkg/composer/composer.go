package composer

import "strings"

// DefaultTitle is the display title of a freshly opened editor session.
const DefaultTitle = "Untitled"

// SourceBuffers holds the three user-edited source fragments plus the
// display title of one editable project. The zero value is a valid empty
// project: every field is always defined, never "unset".
type SourceBuffers struct {
	Markup string `json:"html"`
	Style  string `json:"css"`
	Script string `json:"js"`
	Title  string `json:"title"`
}

// NewSourceBuffers returns an empty buffer set with the default title.
func NewSourceBuffers() SourceBuffers {
	return SourceBuffers{Title: DefaultTitle}
}

// Fixed document shell. The style block sits in the head, the markup in
// the body, the script after the markup. Content is embedded verbatim;
// the composer trusts its caller (isolation happens at the preview
// surface, not here).
const (
	stylePrefix  = "\n      <html>\n        <head>\n          <style>"
	styleSuffix  = "</style>\n        </head>\n        <body>\n          "
	scriptPrefix = "\n        <script>"
	scriptSuffix = "</script>\n        </body>\n      </html>\n    "
)

// Compose derives the composite document from the buffers. Pure and
// total: any input, including all-empty, yields a valid document, and
// equal inputs yield byte-identical output.
func Compose(b SourceBuffers) string {
	var sb strings.Builder
	sb.Grow(len(stylePrefix) + len(styleSuffix) + len(scriptPrefix) + len(scriptSuffix) +
		len(b.Style) + len(b.Markup) + len(b.Script))
	sb.WriteString(stylePrefix)
	sb.WriteString(b.Style)
	sb.WriteString(styleSuffix)
	sb.WriteString(b.Markup)
	sb.WriteString(scriptPrefix)
	sb.WriteString(b.Script)
	sb.WriteString(scriptSuffix)
	return sb.String()
}

// Regions are the three source fragments recovered from a composite
// document.
type Regions struct {
	Style  string
	Markup string
	Script string
}

// ExtractRegions is the inverse of Compose for documents produced by it:
// the recovered regions equal the original inputs as long as no input
// itself contains one of the shell delimiters.
func ExtractRegions(doc string) (Regions, bool) {
	rest, ok := strings.CutPrefix(doc, stylePrefix)
	if !ok {
		return Regions{}, false
	}

	i := strings.Index(rest, styleSuffix)
	if i < 0 {
		return Regions{}, false
	}
	style := rest[:i]
	rest = rest[i+len(styleSuffix):]

	rest, ok = strings.CutSuffix(rest, scriptSuffix)
	if !ok {
		return Regions{}, false
	}

	j := strings.LastIndex(rest, scriptPrefix)
	if j < 0 {
		return Regions{}, false
	}

	return Regions{
		Style:  style,
		Markup: rest[:j],
		Script: rest[j+len(scriptPrefix):],
	}, true
}
