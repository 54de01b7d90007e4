package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/MKhiriev/go-pim-sync/models"
)

const productID = "-//go-pim-sync//EN"

// ICal encodes events or to-dos as a VCALENDAR holding one component.
type ICal struct {
	kind      models.Kind
	component string
}

func NewICal(kind models.Kind) ICal {
	component := ical.CompEvent
	if kind == models.KindTodo {
		component = ical.CompToDo
	}
	return ICal{kind: kind, component: component}
}

func (c ICal) Decode(payload []byte) (models.Item, error) {
	cal, err := ical.NewDecoder(bytes.NewReader(payload)).Decode()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return models.Item{}, fmt.Errorf("%w: empty calendar", ErrMalformedPayload)
		}
		return models.Item{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	comp := c.find(cal)
	if comp == nil {
		return models.Item{}, fmt.Errorf("%w: no %s component", ErrMalformedPayload, c.component)
	}

	item := models.Item{
		Kind:    c.kind,
		Payload: payload,
	}
	item.ID, _ = comp.Props.Text(ical.PropUID)
	item.Summary, _ = comp.Props.Text(ical.PropSummary)
	item.Body, _ = comp.Props.Text(ical.PropDescription)

	var categories []string
	for _, p := range comp.Props[ical.PropCategories] {
		categories = append(categories, p.Value)
	}
	item.Categories = splitCategories(categories...)

	if comp.Props.Get(ical.PropLastModified) != nil {
		if ts, err := comp.Props.DateTime(ical.PropLastModified, time.UTC); err == nil {
			item.LastModified = ts.UTC()
		}
	}

	return item, nil
}

func (c ICal) Encode(item models.Item) ([]byte, error) {
	var (
		cal  *ical.Calendar
		comp *ical.Component
	)
	if len(item.Payload) > 0 {
		base, err := ical.NewDecoder(bytes.NewReader(item.Payload)).Decode()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		cal = base
		comp = c.find(cal)
	} else {
		cal = ical.NewCalendar()
	}
	if comp == nil {
		comp = ical.NewComponent(c.component)
		cal.Children = append(cal.Children, comp)
	}

	if cal.Props.Get(ical.PropProductID) == nil {
		cal.Props.SetText(ical.PropProductID, productID)
	}
	if cal.Props.Get(ical.PropVersion) == nil {
		cal.Props.SetText(ical.PropVersion, "2.0")
	}

	if item.ID != "" {
		comp.Props.SetText(ical.PropUID, item.ID)
	}
	setTextOrDelete(comp.Props, ical.PropSummary, item.Summary)
	setTextOrDelete(comp.Props, ical.PropDescription, item.Body)

	delete(comp.Props, ical.PropCategories)
	if len(item.Categories) > 0 {
		prop := ical.NewProp(ical.PropCategories)
		prop.Value = strings.Join(escapeList(item.Categories), ",")
		comp.Props.Set(prop)
	}

	if item.LastModified.IsZero() {
		delete(comp.Props, ical.PropLastModified)
	} else {
		comp.Props.SetDateTime(ical.PropLastModified, item.LastModified.UTC())
	}
	if comp.Props.Get(ical.PropDateTimeStamp) == nil {
		comp.Props.SetDateTime(ical.PropDateTimeStamp, item.LastModified.UTC())
	}
	if c.component == ical.CompEvent && comp.Props.Get(ical.PropDateTimeStart) == nil {
		comp.Props.SetDateTime(ical.PropDateTimeStart, item.LastModified.UTC())
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode icalendar: %w", err)
	}
	return buf.Bytes(), nil
}

// find returns the first component of the codec's type.
func (c ICal) find(cal *ical.Calendar) *ical.Component {
	for _, child := range cal.Children {
		if child.Name == c.component {
			return child
		}
	}
	return nil
}

func setTextOrDelete(props ical.Props, name, value string) {
	if value == "" {
		delete(props, name)
		return
	}
	props.SetText(name, value)
}

func escapeList(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ReplaceAll(strings.ReplaceAll(v, `\`, `\\`), ",", `\,`)
	}
	return out
}
