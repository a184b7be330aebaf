package domain

import (
	"encoding/json"
	"errors"
)

// Index validation errors. These are distinct from "not found": the deck
// document exists, but the requested coordinate does not.
var (
	// ErrCardIndexOutOfRange is returned when a card index does not exist in the deck.
	ErrCardIndexOutOfRange = errors.New("card index out of range")

	// ErrDefinitionIndexOutOfRange is returned when a definition index does not
	// exist in the card.
	ErrDefinitionIndexOutOfRange = errors.New("definition index out of range")

	// ErrNoDefinitions is returned when a card carries no definitions list at all.
	ErrNoDefinitions = errors.New("card has no definitions")
)

// Definition is a single meaning of a card, optionally cross-referenced to a
// generated or uploaded image. ImagePath is nil when no image exists.
type Definition struct {
	ImagePath *string

	// extra holds fields we do not model (meaning text, examples, ...) so a
	// whole-document rewrite never drops them.
	extra map[string]json.RawMessage
}

// Card is one flashcard in a deck. Its identity is purely positional: the
// offset in the deck's ordered card list.
type Card struct {
	Learned     bool
	Definitions []Definition

	extra map[string]json.RawMessage
}

// UnmarshalJSON parses the known fields and keeps everything else raw.
func (d *Definition) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields["imagePath"]; ok {
		if err := json.Unmarshal(raw, &d.ImagePath); err != nil {
			return err
		}
		delete(fields, "imagePath")
	}

	d.extra = fields
	return nil
}

// MarshalJSON re-emits the preserved fields alongside the modeled ones.
// imagePath is always present, serialized as null when unset, matching the
// authored document shape.
func (d Definition) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(d.extra)+1)
	for k, v := range d.extra {
		fields[k] = v
	}

	raw, err := json.Marshal(d.ImagePath)
	if err != nil {
		return nil, err
	}
	fields["imagePath"] = raw

	return json.Marshal(fields)
}

// UnmarshalJSON parses learned and definitions, keeping all other fields raw.
func (c *Card) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields["learned"]; ok {
		if err := json.Unmarshal(raw, &c.Learned); err != nil {
			return err
		}
		delete(fields, "learned")
	}

	if raw, ok := fields["definitions"]; ok {
		if err := json.Unmarshal(raw, &c.Definitions); err != nil {
			return err
		}
		delete(fields, "definitions")
	}

	c.extra = fields
	return nil
}

// MarshalJSON re-emits the preserved fields alongside the modeled ones.
func (c Card) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(c.extra)+2)
	for k, v := range c.extra {
		fields[k] = v
	}

	learned, err := json.Marshal(c.Learned)
	if err != nil {
		return nil, err
	}
	fields["learned"] = learned

	if c.Definitions != nil {
		defs, err := json.Marshal(c.Definitions)
		if err != nil {
			return nil, err
		}
		fields["definitions"] = defs
	}

	return json.Marshal(fields)
}

// SetImagePath updates the image reference at the given (card, definition)
// coordinate of the deck, validating both indices. A nil path clears the
// reference.
func SetImagePath(cards []Card, cardIndex, defIndex int, path *string) error {
	if cardIndex < 0 || cardIndex >= len(cards) {
		return ErrCardIndexOutOfRange
	}

	card := &cards[cardIndex]
	if card.Definitions == nil {
		return ErrNoDefinitions
	}

	if defIndex < 0 || defIndex >= len(card.Definitions) {
		return ErrDefinitionIndexOutOfRange
	}

	card.Definitions[defIndex].ImagePath = path
	return nil
}
