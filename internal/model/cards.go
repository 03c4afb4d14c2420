package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Cards maps card id to card and remembers insertion order. The JSON form
// is an object whose keys appear in that order.
type Cards struct {
	order []string
	byID  map[string]Card
}

func (c *Cards) Len() int { return len(c.order) }

func (c *Cards) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

func (c *Cards) Get(id string) (Card, bool) {
	card, ok := c.byID[id]
	if !ok {
		return Card{}, false
	}
	return card.clone(), true
}

// Put stores card under card.ID. New ids are appended; existing ids keep
// their position.
func (c *Cards) Put(card Card) {
	if c.byID == nil {
		c.byID = make(map[string]Card)
	}
	if _, ok := c.byID[card.ID]; !ok {
		c.order = append(c.order, card.ID)
	}
	c.byID[card.ID] = card.clone()
}

// Update applies fn to the stored card in place.
func (c *Cards) Update(id string, fn func(*Card)) bool {
	card, ok := c.byID[id]
	if !ok {
		return false
	}
	fn(&card)
	card.ID = id
	c.byID[id] = card
	return true
}

func (c *Cards) Delete(id string) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *Cards) IDs() []string {
	return append([]string(nil), c.order...)
}

// All returns copies of every card in insertion order.
func (c *Cards) All() []Card {
	out := make([]Card, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id].clone())
	}
	return out
}

func (c Cards) Clone() Cards {
	out := Cards{order: append([]string(nil), c.order...)}
	if c.byID != nil {
		out.byID = make(map[string]Card, len(c.byID))
		for id, card := range c.byID {
			out.byID[id] = card.clone()
		}
	}
	return out
}

func (c Cards) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.byID[id])
		if err != nil {
			return nil, fmt.Errorf("marshal card %s: %w", id, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Cards) UnmarshalJSON(data []byte) error {
	*c = Cards{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: cards must be an object", ErrInvalidCard)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: unexpected token %v", ErrInvalidCard, tok)
		}
		var card Card
		if err := dec.Decode(&card); err != nil {
			return fmt.Errorf("decode card %s: %w", key, err)
		}
		if card.Labels == nil {
			card.Labels = []string{}
		}
		if c.Has(key) {
			return fmt.Errorf("%w: duplicate card key %q", ErrInvalidCard, key)
		}
		c.putRaw(key, card)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func (c *Cards) putRaw(key string, card Card) {
	if c.byID == nil {
		c.byID = make(map[string]Card)
	}
	c.order = append(c.order, key)
	c.byID[key] = card
}
