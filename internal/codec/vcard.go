package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-vcard"

	"github.com/MKhiriev/go-pim-sync/models"
)

const vcardTimestampLayout = "20060102T150405Z"

// VCard encodes contacts as vCard 3.0.
type VCard struct{}

func (VCard) Decode(payload []byte) (models.Item, error) {
	card, err := vcard.NewDecoder(bytes.NewReader(payload)).Decode()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return models.Item{}, fmt.Errorf("%w: empty vcard", ErrMalformedPayload)
		}
		return models.Item{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	item := models.Item{
		ID:      card.Value(vcard.FieldUID),
		Kind:    models.KindContact,
		Summary: card.Value(vcard.FieldFormattedName),
		Body:    card.Value(vcard.FieldNote),
		Payload: payload,
	}

	var categories []string
	for _, f := range card[vcard.FieldCategories] {
		categories = append(categories, f.Value)
	}
	item.Categories = splitCategories(categories...)

	if rev := card.Value(vcard.FieldRevision); rev != "" {
		if ts, err := time.Parse(vcardTimestampLayout, rev); err == nil {
			item.LastModified = ts
		}
	}

	return item, nil
}

func (VCard) Encode(item models.Item) ([]byte, error) {
	card := make(vcard.Card)
	if len(item.Payload) > 0 {
		base, err := vcard.NewDecoder(bytes.NewReader(item.Payload)).Decode()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		card = base
	}

	if card.Value(vcard.FieldVersion) == "" {
		card.SetValue(vcard.FieldVersion, "3.0")
	}
	if item.ID != "" {
		card.SetValue(vcard.FieldUID, item.ID)
	}
	card.SetValue(vcard.FieldFormattedName, item.Summary)
	setOrDelete(card, vcard.FieldNote, item.Body)
	setOrDelete(card, vcard.FieldCategories, strings.Join(escapeList(item.Categories), ","))
	setOrDelete(card, vcard.FieldRevision, formatTimestamp(item.LastModified, vcardTimestampLayout))

	var buf bytes.Buffer
	if err := vcard.NewEncoder(&buf).Encode(card); err != nil {
		return nil, fmt.Errorf("encode vcard: %w", err)
	}
	return buf.Bytes(), nil
}

func setOrDelete(card vcard.Card, field, value string) {
	if value == "" {
		delete(card, field)
		return
	}
	card.SetValue(field, value)
}

func formatTimestamp(ts time.Time, layout string) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(layout)
}
