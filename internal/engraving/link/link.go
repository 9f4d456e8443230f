// Package link tracks linked copies of score elements.
//
// Elements that appear in several parts of a score (transclusions) are kept
// in a link set so that an edit to one can be repeated on every copy.
// Members are stored as uuid identifiers and resolved through the Registry;
// elements never hold pointers to each other.
package link

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Linkable is an element that can take part in a link set.
type Linkable interface {
	LinkID() uuid.UUID
}

// Set is one group of linked elements.
type Set struct {
	id      uuid.UUID
	members []uuid.UUID
}

// ID returns the set identifier.
func (s *Set) ID() uuid.UUID { return s.id }

// Len returns the number of members.
func (s *Set) Len() int { return len(s.members) }

func (s *Set) index(id uuid.UUID) int {
	for i, m := range s.members {
		if m == id {
			return i
		}
	}
	return -1
}

// Registry resolves element ids and owns all link sets of a document.
type Registry struct {
	mu       sync.RWMutex
	elements map[uuid.UUID]Linkable
	sets     map[uuid.UUID]*Set
	memberOf map[uuid.UUID]uuid.UUID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		elements: make(map[uuid.UUID]Linkable),
		sets:     make(map[uuid.UUID]*Set),
		memberOf: make(map[uuid.UUID]uuid.UUID),
	}
}

// NewID returns a fresh element identifier.
func NewID() uuid.UUID {
	return uuid.New()
}

// Register makes e resolvable by its id.
func (r *Registry) Register(e Linkable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.elements[e.LinkID()] = e
}

// Unregister removes e from the registry and from its link set.
func (r *Registry) Unregister(e Linkable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unlinkLocked(e.LinkID())
	delete(r.elements, e.LinkID())
}

// Lookup resolves an element id.
func (r *Registry) Lookup(id uuid.UUID) (Linkable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.elements[id]
	return e, ok
}

// Link puts clone into the link set of orig, creating the set if orig is
// not linked yet. Both elements are registered.
func (r *Registry) Link(clone, orig Linkable) error {
	if clone.LinkID() == orig.LinkID() {
		return fmt.Errorf("%w: %s", ErrSelfLink, clone.LinkID())
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.elements[clone.LinkID()] = clone
	r.elements[orig.LinkID()] = orig

	if _, linked := r.memberOf[clone.LinkID()]; linked {
		return fmt.Errorf("%w: %s", ErrAlreadyLinked, clone.LinkID())
	}

	setID, ok := r.memberOf[orig.LinkID()]
	if !ok {
		set := &Set{id: uuid.New(), members: []uuid.UUID{orig.LinkID()}}
		r.sets[set.id] = set
		r.memberOf[orig.LinkID()] = set.id
		setID = set.id
	}
	set := r.sets[setID]
	set.members = append(set.members, clone.LinkID())
	r.memberOf[clone.LinkID()] = setID
	return nil
}

// Unlink removes e from its link set. A set left with one member dissolves.
func (r *Registry) Unlink(e Linkable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unlinkLocked(e.LinkID())
}

func (r *Registry) unlinkLocked(id uuid.UUID) {
	setID, ok := r.memberOf[id]
	if !ok {
		return
	}
	delete(r.memberOf, id)
	set := r.sets[setID]
	if i := set.index(id); i >= 0 {
		set.members = append(set.members[:i], set.members[i+1:]...)
	}
	if len(set.members) <= 1 {
		for _, m := range set.members {
			delete(r.memberOf, m)
		}
		delete(r.sets, setID)
	}
}

// IsLinked reports whether e shares a link set with another element.
func (r *Registry) IsLinked(e Linkable) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.memberOf[e.LinkID()]
	return ok
}

// SetOf returns the link set containing e.
func (r *Registry) SetOf(e Linkable) (*Set, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	setID, ok := r.memberOf[e.LinkID()]
	if !ok {
		return nil, false
	}
	return r.sets[setID], true
}

// LinkList returns every resolvable member of e's link set in link order.
// An unlinked element yields a list holding only itself.
func (r *Registry) LinkList(e Linkable) []Linkable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	setID, ok := r.memberOf[e.LinkID()]
	if !ok {
		return []Linkable{e}
	}
	set := r.sets[setID]
	out := make([]Linkable, 0, len(set.members))
	for _, id := range set.members {
		if m, ok := r.elements[id]; ok {
			out = append(out, m)
		}
	}
	return out
}
