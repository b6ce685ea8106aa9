package persona

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPersonaNotFound = errors.New("persona not found")
	ErrInvalidCatalog  = errors.New("invalid persona catalog")
)

// Store exposes read access to the persona catalog.
type Store interface {
	List() []Persona
	FindByID(id string) (Persona, error)
}

// Catalog is an immutable, ordered set of personas. It is safe for
// concurrent use because nothing writes to it after NewCatalog returns.
type Catalog struct {
	items []Persona
	index map[string]int
}

// NewCatalog validates the supplied personas and freezes them into a Catalog.
func NewCatalog(items []Persona) (*Catalog, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no personas defined", ErrInvalidCatalog)
	}

	c := &Catalog{
		items: make([]Persona, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for i, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			return nil, fmt.Errorf("%w: persona #%d has an empty id", ErrInvalidCatalog, i)
		}
		if _, dup := c.index[item.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate persona id %q", ErrInvalidCatalog, item.ID)
		}
		if strings.TrimSpace(item.Name) == "" {
			return nil, fmt.Errorf("%w: persona %q has an empty name", ErrInvalidCatalog, item.ID)
		}
		if strings.TrimSpace(item.Catchphrase) == "" {
			return nil, fmt.Errorf("%w: persona %q has an empty catchphrase", ErrInvalidCatalog, item.ID)
		}

		c.index[item.ID] = len(c.items)
		c.items = append(c.items, item.clone())
	}
	return c, nil
}

// MustCatalog is like NewCatalog but panics on an invalid catalog.
// Intended for the built-in Seed data.
func MustCatalog(items []Persona) *Catalog {
	c, err := NewCatalog(items)
	if err != nil {
		panic(err)
	}
	return c
}

// List returns every persona in definition order.
func (c *Catalog) List() []Persona {
	out := make([]Persona, len(c.items))
	for i, item := range c.items {
		out[i] = item.clone()
	}
	return out
}

// FindByID looks up a persona by exact identifier.
func (c *Catalog) FindByID(id string) (Persona, error) {
	i, ok := c.index[id]
	if !ok {
		return Persona{}, fmt.Errorf("%w: %s", ErrPersonaNotFound, id)
	}
	return c.items[i].clone(), nil
}

// Len reports the number of personas in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}
