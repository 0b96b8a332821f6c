package documents

import (
	"strings"

	"golang.org/x/net/html"
)

// Segment is a run of text sharing one weight.
type Segment struct {
	Text string
	Bold bool
}

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&nbsp;", " ",
	"&#39;", "'",
	"&apos;", "'",
	"&quot;", `"`,
)

var typographyReplacer = strings.NewReplacer(
	"‘", "'", "’", "'", "‚", "'", "′", "'",
	"“", `"`, "”", `"`, "„", `"`, "″", `"`,
	"–", "-", "—", "-", "−", "-",
	"…", "...",
	"\u00a0", " ", "\u202f", " ", "\u2009", " ",
)

// ParseRichText turns an HTML fragment into styled segments. Only <strong> and <b>
// change the style; every other tag is removed. Output is restricted to Latin-1.
// Text is taken raw from the tokenizer so that only the entities above are decoded.
func ParseRichText(fragment string) []Segment {
	var (
		segments []Segment
		bold     bool
		skip     bool
		text     strings.Builder
	)

	flush := func() {
		if s := sanitizeLatin1(entityReplacer.Replace(text.String())); strings.TrimSpace(s) != "" {
			segments = append(segments, Segment{Text: s, Bold: bold})
		}
		text.Reset()
	}

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF, or a read error on the in-memory reader which cannot happen
			flush()
			return segments
		case html.TextToken:
			if !skip {
				text.Write(z.Raw())
			}
		case html.StartTagToken, html.EndTagToken:
			name, _ := z.TagName()
			closing := tt == html.EndTagToken
			switch string(name) {
			case "script", "style":
				skip = !closing
			case "strong", "b":
				if bold != !closing {
					flush()
					bold = !closing
				}
			}
		}
	}
}

// sanitizeLatin1 maps typographic punctuation to ASCII and drops what
// the standard PDF fonts cannot encode.
func sanitizeLatin1(s string) string {
	s = typographyReplacer.Replace(s)
	return strings.Map(func(r rune) rune {
		if r > 0xFF || (r >= 0x80 && r < 0xA0) {
			return -1
		}
		return r
	}, s)
}
