// Package catalog names monsters for humans. Nothing in the recommenders
// depends on it.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/tidwall/gjson"

	"swarm/draft"
)

var ErrInvalidCatalog = errors.New("invalid monster catalog")

const (
	defaultElement = "Wind"
	defaultStars   = 5
)

type Monster struct {
	ID        draft.MonsterID
	Name      string
	Slug      string
	Element   string
	Stars     int
	Archetype string
	Awakened  bool
}

// Category is the natural star grade, e.g. "Nat5".
func (m Monster) Category() string {
	return fmt.Sprintf("Nat%d", m.Stars)
}

type Catalog struct {
	monsters map[draft.MonsterID]Monster
	order    []draft.MonsterID
}

func New(monsters ...Monster) *Catalog {
	c := &Catalog{monsters: make(map[draft.MonsterID]Monster, len(monsters))}
	for _, m := range monsters {
		if _, ok := c.monsters[m.ID]; !ok {
			c.order = append(c.order, m.ID)
		}
		c.monsters[m.ID] = m
	}
	return c
}

// Load reads either a bare array of monsters or an object holding them under
// "monstres". Entries without an id are numbered by position, starting at 1.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidCatalog)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		doc = doc.Get("monstres")
	}
	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: no monster list", ErrInvalidCatalog)
	}

	var monsters []Monster
	for i, entry := range doc.Array() {
		id := draft.MonsterID(entry.Get("id").Int())
		if !id.IsPick() {
			id = draft.MonsterID(i + 1)
		}
		monsters = append(monsters, Monster{
			ID:        id,
			Name:      first(entry, "Unknown", "name", "nom", "slug"),
			Slug:      entry.Get("slug").String(),
			Element:   first(entry, defaultElement, "element"),
			Stars:     stars(entry),
			Archetype: entry.Get("archetype").String(),
			Awakened:  entry.Get("is_awakened").Bool() || entry.Get("isAwakened").Bool(),
		})
	}
	return New(monsters...), nil
}

func first(entry gjson.Result, fallback string, keys ...string) string {
	for _, key := range keys {
		if v := entry.Get(key).String(); v != "" {
			return v
		}
	}
	return fallback
}

func stars(entry gjson.Result) int {
	for _, key := range []string{"natural_stars", "naturalStars", "etoiles"} {
		if v := entry.Get(key).Int(); v > 0 {
			return int(v)
		}
	}
	return defaultStars
}

func (c *Catalog) Len() int {
	return len(c.order)
}

func (c *Catalog) Get(id draft.MonsterID) (Monster, bool) {
	m, ok := c.monsters[id]
	return m, ok
}

// Name falls back to the token form for ids the catalog does not know.
func (c *Catalog) Name(id draft.MonsterID) string {
	if m, ok := c.monsters[id]; ok {
		return m.Name
	}
	return id.Token()
}

// IDs lists every monster in load order.
func (c *Catalog) IDs() []draft.MonsterID {
	return append([]draft.MonsterID(nil), c.order...)
}

// Pool builds a candidate pool of every catalogued monster that is not in
// excluded, sorted by id.
func (c *Catalog) Pool(excluded ...draft.MonsterID) draft.Pool {
	skip := make(map[draft.MonsterID]bool, len(excluded))
	for _, id := range excluded {
		skip[id] = true
	}
	ids := make([]draft.MonsterID, 0, len(c.order))
	for _, id := range c.order {
		if !skip[id] {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return draft.NewPool(ids...)
}
