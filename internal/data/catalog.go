package data

import "log/slog"

// Catalog is the read-only spell table. Built once at load time and
// shared; Lookup is pure and safe for concurrent use.
type Catalog struct {
	spells map[string]*Spell
	order  []string
}

// NewCatalog builds a catalog from already-constructed spells.
func NewCatalog(spells []*Spell) *Catalog {
	c := &Catalog{spells: make(map[string]*Spell, len(spells))}
	for _, s := range spells {
		if _, dup := c.spells[s.ID]; !dup {
			c.order = append(c.order, s.ID)
		}
		c.spells[s.ID] = s
	}
	slog.Info("spell catalog built", "spells", len(c.spells))
	return c
}

// Lookup returns the spell with the given ID, nil if absent.
func (c *Catalog) Lookup(id string) *Spell {
	return c.spells[id]
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.spells)
}

// IDs returns spell IDs in catalog order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
