package text

import (
	"regexp"
	"strings"
)

// DefaultPlaceholderWidth is the number of blanks reserved for an inline icon.
const DefaultPlaceholderWidth = 5

// Token kinds.
const (
	KindText = "text"
	KindIcon = "icon"
)

var placeholderRe = regexp.MustCompile(`\{\{(text|icon):([^}]+?)\}\}`)

// Table is the read-only lookup a Resolver substitutes from.
type Table interface {
	LookupText(key string) (string, bool)
	LookupIcon(key string) (string, bool)
}

// Token is one placeholder occurrence in raw text. Start and End are byte offsets.
type Token struct {
	Kind  string
	Key   string
	Start int
	End   int
}

// Raw returns the placeholder as it appears in source text.
func (t Token) Raw() string {
	return "{{" + t.Kind + ":" + t.Key + "}}"
}

// IconPlacement records an icon asset and the byte offset of its blank run.
type IconPlacement struct {
	Asset  string
	Offset int
}

// Run is resolved text plus the icons to draw inside it.
type Run struct {
	Text       string
	Icons      []IconPlacement
	Unresolved []Token
}

// Tokens returns the placeholders found in raw, in order of appearance.
func Tokens(raw string) []Token {
	matches := placeholderRe.FindAllStringSubmatchIndex(raw, -1)
	out := make([]Token, 0, len(matches))
	for _, m := range matches {
		out = append(out, Token{
			Kind:  raw[m[2]:m[3]],
			Key:   raw[m[4]:m[5]],
			Start: m[0],
			End:   m[1],
		})
	}
	return out
}

// Resolver substitutes {{text:key}} and {{icon:key}} placeholders.
type Resolver struct {
	Table Table
	// PlaceholderWidth is the blank run length per icon; zero means DefaultPlaceholderWidth.
	PlaceholderWidth int
}

// NewResolver returns a resolver over table using the default placeholder width.
func NewResolver(table Table) *Resolver {
	return &Resolver{Table: table, PlaceholderWidth: DefaultPlaceholderWidth}
}

// Resolve scans raw left to right. Unknown keys are left verbatim and produce no icon.
func (r *Resolver) Resolve(raw string) Run {
	tokens := Tokens(raw)
	if len(tokens) == 0 {
		return Run{Text: raw}
	}

	blank := strings.Repeat(" ", r.placeholderWidth())

	var run Run
	var b strings.Builder
	b.Grow(len(raw))
	last := 0
	for _, tok := range tokens {
		b.WriteString(raw[last:tok.Start])
		last = tok.End

		switch tok.Kind {
		case KindText:
			if v, ok := r.lookupText(tok.Key); ok {
				b.WriteString(v)
				continue
			}
		case KindIcon:
			if asset, ok := r.lookupIcon(tok.Key); ok {
				// b.Len() is the cursor in the substituted text
				run.Icons = append(run.Icons, IconPlacement{Asset: asset, Offset: b.Len()})
				b.WriteString(blank)
				continue
			}
		}
		run.Unresolved = append(run.Unresolved, tok)
		b.WriteString(raw[tok.Start:tok.End])
	}
	b.WriteString(raw[last:])
	run.Text = b.String()
	return run
}

func (r *Resolver) placeholderWidth() int {
	if r.PlaceholderWidth <= 0 {
		return DefaultPlaceholderWidth
	}
	return r.PlaceholderWidth
}

func (r *Resolver) lookupText(key string) (string, bool) {
	if r.Table == nil {
		return "", false
	}
	return r.Table.LookupText(key)
}

func (r *Resolver) lookupIcon(key string) (string, bool) {
	if r.Table == nil {
		return "", false
	}
	return r.Table.LookupIcon(key)
}
