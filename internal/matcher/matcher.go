// Package matcher decides whether a found item corresponds to an earlier lost report.
//
// An item matches when it is LOST, shares the exact category of the found item and
// carries the same secret details, compared case-insensitively.
// Only the first match in pool order is returned; candidates are not ranked.
package matcher

import (
	"strings"

	"github.com/lostandfound/lostandfound/internal/model"
	"github.com/pkg/errors"
)

// A Finder returns the lost item matching the candidate, or nil.
type Finder interface {
	Find(candidate *model.Item, pool []*model.Item) *model.Item
}

// FinderFunc adapts a function to the Finder interface.
type FinderFunc func(candidate *model.Item, pool []*model.Item) *model.Item

// Find implements Finder.
func (f FinderFunc) Find(candidate *model.Item, pool []*model.Item) *model.Item {
	return f(candidate, pool)
}

const (
	// StrategyScan compares the candidate against every item of the pool.
	StrategyScan = "scan"
	// StrategyIndex builds a lookup table of the pool's lost items first.
	StrategyIndex = "index"
)

// New returns the Finder for the given strategy name. An empty name selects StrategyScan.
func New(strategy string) (Finder, error) {
	switch strategy {
	case "", StrategyScan:
		return FinderFunc(Find), nil
	case StrategyIndex:
		return FinderFunc(func(candidate *model.Item, pool []*model.Item) *model.Item {
			return NewIndex(pool).Find(candidate)
		}), nil
	default:
		return nil, errors.Errorf("unknown match strategy: %s", strategy)
	}
}

// Find returns the first item of pool, in pool order, matching candidate.
// Malformed entries are skipped.
func Find(candidate *model.Item, pool []*model.Item) *model.Item {
	if candidate == nil {
		return nil
	}

	secret := strings.ToLower(candidate.SecretDetails)
	for _, item := range pool {
		if !lost(item) || item.ID == candidate.ID {
			continue
		}

		if item.Category == candidate.Category && strings.ToLower(item.SecretDetails) == secret {
			return item
		}
	}
	return nil
}

func lost(item *model.Item) bool {
	return item != nil && item.Status == model.StatusLost
}

type key struct {
	category string
	secret   string
}

func keyOf(item *model.Item) key {
	return key{category: item.Category, secret: strings.ToLower(item.SecretDetails)}
}

// An Index is a lookup table of the lost items of a pool, keyed by category and
// lower-cased secret details. Entries keep pool order so it decides like Find.
type Index struct {
	entries map[key][]*model.Item
}

// NewIndex indexes the lost items of pool.
func NewIndex(pool []*model.Item) *Index {
	idx := &Index{entries: map[key][]*model.Item{}}
	for _, item := range pool {
		idx.Add(item)
	}
	return idx
}

// Add appends item to the index if it is a lost report.
func (idx *Index) Add(item *model.Item) {
	if !lost(item) {
		return
	}

	k := keyOf(item)
	idx.entries[k] = append(idx.entries[k], item)
}

// Len returns the number of indexed items.
func (idx *Index) Len() int {
	var n int
	for _, items := range idx.entries {
		n += len(items)
	}
	return n
}

// Find returns the first indexed item matching candidate.
func (idx *Index) Find(candidate *model.Item) *model.Item {
	if candidate == nil {
		return nil
	}

	for _, item := range idx.entries[keyOf(candidate)] {
		if item.ID != candidate.ID {
			return item
		}
	}
	return nil
}
