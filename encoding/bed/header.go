package bed

import (
	"strings"

	"github.com/grailbio/featfmt/encoding/tabio"
)

// HeaderLine is one retained metadata line ("track ...", "browser ...", or
// "#...").  Header lines never become records; they are carried alongside
// the record stream and re-emitted verbatim, in order, ahead of data rows on
// save.
type HeaderLine struct {
	Raw   string
	Class tabio.LineClass

	attrs *tabio.Attrs
}

// IsTrack reports whether the line is a "track" metadata line.
func (h *HeaderLine) IsTrack() bool { return h.Class == tabio.TrackHeader }

// Attrs decomposes a track line into its ordered key/value attributes,
// with quoted values unquoted.  The parse is lazy and cached; non-track
// lines yield an empty map.
func (h *HeaderLine) Attrs() *tabio.Attrs {
	if h.attrs == nil {
		if h.Class == tabio.TrackHeader {
			body := strings.TrimPrefix(h.Raw, "track")
			h.attrs = tabio.ParsePairs(body, ' ', '=', true, nil, 0)
		} else {
			h.attrs = tabio.NewAttrs()
		}
	}
	return h.attrs
}
