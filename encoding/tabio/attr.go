package tabio

import "strings"

// Attrs is an ordered string-to-string mapping for the key/value attribute
// sub-languages of GFF3 ("ID=gene1;Name=BRCA1") and BED track lines
// (`name="My Track" visibility=2`).  Insertion order is preserved; setting
// an existing key overwrites the value in place.
type Attrs struct {
	keys []string
	m    map[string]string
}

// NewAttrs returns an empty attribute map.
func NewAttrs() *Attrs {
	return &Attrs{m: make(map[string]string)}
}

// Set inserts or overwrites a key.
func (a *Attrs) Set(key, value string) {
	if _, ok := a.m[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.m[key] = value
}

// Get returns the value for key and whether it is present.
func (a *Attrs) Get(key string) (string, bool) {
	v, ok := a.m[key]
	return v, ok
}

// Keys returns the keys in insertion order.  The returned slice is owned by
// the Attrs and must not be modified.
func (a *Attrs) Keys() []string { return a.keys }

// Len returns the number of keys.
func (a *Attrs) Len() int { return len(a.keys) }

// Encode renders the map as key=value pairs joined by pairSep, in insertion
// order.  Values are emitted as stored; no quoting is applied.
func (a *Attrs) Encode(pairSep, kvSep byte) string {
	var sb strings.Builder
	for i, k := range a.keys {
		if i > 0 {
			sb.WriteByte(pairSep)
		}
		sb.WriteString(k)
		sb.WriteByte(kvSep)
		sb.WriteString(a.m[k])
	}
	return sb.String()
}

// ParsePairs parses attribute text into an ordered map.  The text is split
// on pairSep; each non-empty segment is split on the first kvSep.  A segment
// with no kvSep is tolerated as a key with an empty value, and reported as
// MalformedAttribute when defects is non-nil.  When unquote is set,
// surrounding double or single quotes are stripped from values (BED track
// lines) and a pairSep inside quotes does not split; GFF attribute values
// are never unquoted.
func ParsePairs(text string, pairSep, kvSep byte, unquote bool, defects *DefectList, line int) *Attrs {
	attrs := NewAttrs()
	var segments []string
	if unquote {
		segments = splitOutsideQuotes(text, pairSep)
	} else {
		segments = strings.Split(text, string(pairSep))
	}
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		idx := strings.IndexByte(seg, kvSep)
		if idx < 0 {
			if defects != nil {
				defects.Add(line, MalformedAttribute, "", seg)
			}
			attrs.Set(seg, "")
			continue
		}
		key := strings.TrimSpace(seg[:idx])
		value := strings.TrimSpace(seg[idx+1:])
		if unquote {
			value = stripQuotes(value)
		}
		attrs.Set(key, value)
	}
	return attrs
}

func splitOutsideQuotes(text string, sep byte) []string {
	var out []string
	var quote byte
	start := 0
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == sep:
			out = append(out, text[start:i])
			start = i + 1
		}
	}
	return append(out, text[start:])
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
