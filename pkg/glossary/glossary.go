// Package glossary translates single words between Malagasy and French.
package glossary

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/mg-fr.yaml
var defaultGlossary []byte

// Direction selects the source and target language.
type Direction string

const (
	MalagasyToFrench Direction = "mg-fr"
	FrenchToMalagasy Direction = "fr-mg"
)

var ErrUnknownDirection = errors.New("unknown translation direction")

// ParseDirection accepts "mg-fr" and "fr-mg". An empty string means mg-fr.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", MalagasyToFrench:
		return MalagasyToFrench, nil
	case FrenchToMalagasy:
		return FrenchToMalagasy, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Entry is one glossary line.
type Entry struct {
	Malagasy string `json:"mg" msgpack:"mg"`
	French   string `json:"fr" msgpack:"fr"`
	Group    string `json:"group" msgpack:"g"`
}

// Translation is the result of one lookup. Found is false for unknown words.
type Translation struct {
	Word        string    `json:"word" msgpack:"w"`
	Translation string    `json:"translation,omitempty" msgpack:"t,omitempty"`
	Direction   Direction `json:"direction" msgpack:"d"`
	Found       bool      `json:"found" msgpack:"f"`
}

// Glossary is an immutable two-way word table.
type Glossary struct {
	entries []Entry
	mgFr    map[string]string
	frMg    map[string]string
}

// New parses a YAML document of groups, each a mapping from Malagasy to French.
// Group and entry order is kept.
func New(data []byte) (*Glossary, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse glossary: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse glossary: top level must be a mapping of groups")
	}

	g := &Glossary{mgFr: make(map[string]string), frMg: make(map[string]string)}
	groups := doc.Content[0].Content
	for i := 0; i+1 < len(groups); i += 2 {
		name, words := groups[i].Value, groups[i+1]
		if words.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("parse glossary: group %q must be a mapping", name)
		}
		for j := 0; j+1 < len(words.Content); j += 2 {
			g.add(Entry{
				Malagasy: strings.ToLower(strings.TrimSpace(words.Content[j].Value)),
				French:   strings.TrimSpace(words.Content[j+1].Value),
				Group:    name,
			})
		}
	}
	return g, nil
}

// Default returns the embedded glossary.
func Default() (*Glossary, error) {
	return New(defaultGlossary)
}

func (g *Glossary) add(e Entry) {
	if e.Malagasy == "" || e.French == "" {
		return
	}
	g.entries = append(g.entries, e)
	g.mgFr[e.Malagasy] = e.French

	fr := strings.ToLower(e.French)
	g.reverse(fr, e.Malagasy)
	// "aller/partir" also answers for "aller" and "partir"
	if strings.Contains(fr, "/") {
		for _, part := range strings.Split(fr, "/") {
			g.reverse(strings.TrimSpace(part), e.Malagasy)
		}
	}
}

// reverse keeps the first Malagasy word seen for a French key.
func (g *Glossary) reverse(fr, mg string) {
	if fr == "" {
		return
	}
	if _, ok := g.frMg[fr]; !ok {
		g.frMg[fr] = mg
	}
}

// Translate looks word up in the given direction, ignoring case and surrounding space.
func (g *Glossary) Translate(word string, dir Direction) Translation {
	w := strings.ToLower(strings.TrimSpace(word))
	out := Translation{Word: w, Direction: dir}

	table := g.mgFr
	if dir == FrenchToMalagasy {
		table = g.frMg
	}
	if t, ok := table[w]; ok {
		out.Translation = t
		out.Found = true
	}
	return out
}

// Entries returns every entry in file order.
func (g *Glossary) Entries() []Entry {
	return append([]Entry(nil), g.entries...)
}

// Len returns the number of entries.
func (g *Glossary) Len() int {
	return len(g.entries)
}
