package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/okian/squadmaker/internal/domain/dedupe"
	"github.com/okian/squadmaker/internal/domain/model"
)

// Document is the wire format shared by the file and REST sources.
type Document struct {
	Players *[]PlayerJSON `json:"players"`
}

// PlayerJSON is one player entry.
type PlayerJSON struct {
	ID        any         `json:"_id"`
	FirstName string      `json:"firstName,omitempty"`
	LastName  string      `json:"lastName,omitempty"`
	Skills    []SkillJSON `json:"skills"`
}

// SkillJSON is one rated skill. Rating may be a number or a decimal string.
type SkillJSON struct {
	Type   string `json:"type"`
	Rating any    `json:"rating"`
}

// ParsePlayers decodes a player document. Entries repeating an earlier _id are
// dropped; the first occurrence wins and input order is kept.
func ParsePlayers(r io.Reader) ([]*model.Player, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode players: %w", ErrMalformedSource, err)
	}
	if doc.Players == nil {
		return nil, fmt.Errorf("%w: missing 'players' key", ErrMalformedSource)
	}

	entries := *doc.Players
	seen := dedupe.NewInMemoryDeduper(dedupe.WithCapacity(len(entries)))
	players := make([]*model.Player, 0, len(entries))
	for i, entry := range entries {
		id, err := entryID(entry.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: player %d: %w", ErrMalformedSource, i, err)
		}
		if seen.SeenAndRecord(context.Background(), id) {
			continue
		}
		p, err := entry.toPlayer(id)
		if err != nil {
			return nil, fmt.Errorf("%w: player '%s': %w", ErrMalformedSource, id, err)
		}
		players = append(players, p)
	}
	return players, nil
}

// EncodePlayers writes players in the document format.
func EncodePlayers(w io.Writer, players []*model.Player) error {
	entries := make([]PlayerJSON, len(players))
	for i, p := range players {
		entries[i] = FromPlayer(p)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document{Players: &entries})
}

// FromPlayer converts a player to its wire form.
func FromPlayer(p *model.Player) PlayerJSON {
	skills := make([]SkillJSON, 0, model.SkillCount)
	for _, s := range model.Skills() {
		skills = append(skills, SkillJSON{Type: s.String(), Rating: p.Rating(s).Float64()})
	}
	return PlayerJSON{
		ID:        p.ID(),
		FirstName: p.FirstName(),
		LastName:  p.LastName(),
		Skills:    skills,
	}
}

func entryID(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return "", errors.New("empty '_id'")
		}
		return v, nil
	case json.Number:
		return v.String(), nil
	case nil:
		return "", errors.New("missing '_id'")
	default:
		return "", fmt.Errorf("unsupported '_id' type %T", raw)
	}
}

func (e PlayerJSON) toPlayer(id string) (*model.Player, error) {
	var (
		raw   [model.SkillCount]any
		found [model.SkillCount]bool
	)
	for _, s := range e.Skills {
		skill, ok := model.SkillByName(s.Type)
		if !ok {
			continue
		}
		// later entries for the same skill replace earlier ones
		raw[skill] = s.Rating
		found[skill] = true
	}
	for _, s := range model.Skills() {
		if !found[s] {
			return nil, fmt.Errorf("missing '%s' skill", s)
		}
	}

	ratings, err := model.NewRatings(raw[model.Skating], raw[model.Shooting], raw[model.Checking])
	if err != nil {
		return nil, err
	}
	return model.NewPlayer(id, e.FirstName, e.LastName, ratings), nil
}
