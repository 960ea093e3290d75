package guestbook

import (
	"encoding/json"
	"strings"
	"time"
)

// TimeFormat is the layout used for Entry.CreatedAt.
const TimeFormat = time.RFC3339

// Entry is one guestbook submission.
type Entry struct {
	ID        string `json:"id" bson:"id" yaml:"id"`
	Name      string `json:"name" bson:"name" yaml:"name"`
	Text      string `json:"text" bson:"text" yaml:"text"`
	CreatedAt string `json:"createdAt" bson:"createdAt" yaml:"createdAt"`
}

// Document is the persisted aggregate. Entries are kept oldest first.
type Document struct {
	Entries []Entry `json:"entries" bson:"entries" yaml:"entries"`
}

// Empty returns a Document with a non-nil, empty entries slice so it
// encodes as `{"entries":[]}`.
func Empty() Document {
	return Document{Entries: []Entry{}}
}

// Clone returns a copy whose entries slice does not alias d's.
func (d Document) Clone() Document {
	out := make([]Entry, len(d.Entries))
	copy(out, d.Entries)
	return Document{Entries: out}
}

// legacyEntry is the shape written by the first version of the site.
type legacyEntry struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Message   string `json:"message"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

type rawDocument struct {
	Entries  *[]json.RawMessage `json:"entries"`
	Messages *[]legacyEntry     `json:"messages"`
}

// Decode parses a persisted Document. Both the current `{"entries": [...]}`
// shape and the legacy `{"messages": [...]}` shape are accepted. Entries
// missing a name or text are dropped.
func Decode(data []byte) (Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return Empty(), err
	}
	doc := Empty()
	switch {
	case raw.Entries != nil:
		for _, m := range *raw.Entries {
			var le legacyEntry
			var e Entry
			if err := json.Unmarshal(m, &e); err != nil {
				continue
			}
			// tolerate "_id"/"message" keys inside an entries list
			if e.ID == "" || e.Text == "" {
				if err := json.Unmarshal(m, &le); err == nil {
					if e.ID == "" {
						e.ID = le.ID
					}
					if e.Text == "" {
						e.Text = le.Message
					}
				}
			}
			if valid(e) {
				doc.Entries = append(doc.Entries, e)
			}
		}
	case raw.Messages != nil:
		for _, le := range *raw.Messages {
			text := le.Message
			if text == "" {
				text = le.Text
			}
			e := Entry{ID: le.ID, Name: le.Name, Text: text, CreatedAt: le.CreatedAt}
			if valid(e) {
				doc.Entries = append(doc.Entries, e)
			}
		}
	}
	return doc, nil
}

// Encode serializes d as indented JSON in the current shape.
func Encode(d Document) ([]byte, error) {
	if d.Entries == nil {
		d = Empty()
	}
	return json.MarshalIndent(d, "", "  ")
}

func valid(e Entry) bool {
	return strings.TrimSpace(e.Name) != "" && strings.TrimSpace(e.Text) != ""
}

// Normalize drops entries without a name or text and guarantees a non-nil
// entries slice.
func Normalize(d Document) Document {
	out := Empty()
	for _, e := range d.Entries {
		if valid(e) {
			out.Entries = append(out.Entries, e)
		}
	}
	return out
}
