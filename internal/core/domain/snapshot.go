package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Snapshot is the complete persisted state: every identity with its
// credential, session token and record collections.
type Snapshot struct {
	Users []UserSnapshot `json:"users"`
}

// UserSnapshot is one entry of Snapshot.Users. The profile fields are
// flattened into the same JSON object.
type UserSnapshot struct {
	UserProfile
	Password   string           `json:"password"`
	Token      string           `json:"token,omitempty"`
	Waters     []WaterRecord    `json:"waters"`
	Sleeps     []SleepRecord    `json:"sleeps"`
	Activities []ActivityRecord `json:"activities"`
	Categories Categories       `json:"categories"`
}

// Category is a named, ordered list of items.
type Category struct {
	Name  string
	Items []CategoryItem
}

// Categories encodes as a JSON object keyed by category name. Key order on
// the wire follows slice order, so creation order survives a round trip.
type Categories []Category

func (c Categories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		items := cat.Items
		if items == nil {
			items = []CategoryItem{}
		}
		val, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Categories) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("categories: expected object, got %v", tok)
	}

	out := Categories{}
	seen := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("categories: unexpected key %v", keyTok)
		}
		var items []CategoryItem
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("categories %q: %w", name, err)
		}
		if i, dup := seen[name]; dup {
			out[i].Items = items
			continue
		}
		seen[name] = len(out)
		out = append(out, Category{Name: name, Items: items})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = out
	return nil
}
