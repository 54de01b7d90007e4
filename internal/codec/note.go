package codec

import (
	"strings"

	"github.com/MKhiriev/go-pim-sync/models"
)

// Note encodes notes as plain text: the title on the first line and the
// text below it. Notes carry no categories and no timestamp.
type Note struct{}

func (Note) Decode(payload []byte) (models.Item, error) {
	summary, body, _ := strings.Cut(string(payload), "\n")
	return models.Item{
		Kind:    models.KindNote,
		Summary: summary,
		Body:    body,
		Payload: payload,
	}, nil
}

func (Note) Encode(item models.Item) ([]byte, error) {
	return []byte(item.Summary + "\n" + StripHTML(item.Body)), nil
}

// StripHTML drops everything between '<' and '>' (inclusive) and trims
// surrounding whitespace. Notes edited in rich-text mode are stored as
// HTML.
func StripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
