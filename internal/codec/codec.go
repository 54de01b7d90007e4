// Package codec converts store items to and from the record formats peers
// exchange: vCard for contacts, iCalendar for events and to-dos, and plain
// text for notes.
//
// Encoding starts from the payload the store keeps for an item, so
// properties the item model does not carry (phone numbers, alarms, ...)
// survive a round trip.
package codec

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pim-sync/models"
)

// ErrMalformedPayload is returned by Decode for payloads that are not a
// valid record of the codec's format.
var ErrMalformedPayload = errors.New("malformed payload")

// ErrUnsupportedKind is returned by [ForKind] for kinds without a codec.
var ErrUnsupportedKind = errors.New("no codec for item kind")

// Codec converts items of one kind.
type Codec interface {
	Decode(payload []byte) (models.Item, error)
	Encode(item models.Item) ([]byte, error)
}

// ForKind returns the codec for items of kind.
func ForKind(kind models.Kind) (Codec, error) {
	switch kind {
	case models.KindContact:
		return VCard{}, nil
	case models.KindEvent, models.KindTodo:
		return NewICal(kind), nil
	case models.KindNote:
		return Note{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
}

func splitCategories(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, c := range splitList(v) {
			if c != "" && !contains(out, c) {
				out = append(out, c)
			}
		}
	}
	return out
}

// splitList splits a comma separated property value, honoring backslash
// escaped commas.
func splitList(v string) []string {
	var (
		parts []string
		cur   []rune
		esc   bool
	)
	for _, r := range v {
		switch {
		case esc:
			cur = append(cur, r)
			esc = false
		case r == '\\':
			esc = true
		case r == ',':
			parts = append(parts, string(cur))
			cur = cur[:0]
		default:
			cur = append(cur, r)
		}
	}
	return append(parts, string(cur))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
