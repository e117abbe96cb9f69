package gestures

import "iter"

// CollectionAction describes a mutation of a Recognizers collection.
type CollectionAction int

const (
	CollectionAdd CollectionAction = iota
	CollectionRemove
	CollectionReplace
	CollectionReset
)

func (a CollectionAction) String() string {
	switch a {
	case CollectionAdd:
		return "add"
	case CollectionRemove:
		return "remove"
	case CollectionReplace:
		return "replace"
	case CollectionReset:
		return "reset"
	default:
		return "unknown"
	}
}

// CollectionChange is delivered to collection listeners after a mutation.
type CollectionChange struct {
	Action CollectionAction
	// Index is the affected position, or -1 for CollectionReset.
	Index int
	// New is the added or replacing recognizer.
	New Recognizer
	// Old is the removed or replaced recognizer.
	Old Recognizer
}

// Recognizers is the ordered recognizer list of a view. Insertion order is
// preserved and observable. It is not safe for concurrent use; like the rest
// of the view tree it is mutated on the UI thread only.
type Recognizers struct {
	items     []Recognizer
	listeners listenerList[CollectionChange]
}

// NewRecognizers returns a collection holding items in order.
func NewRecognizers(items ...Recognizer) *Recognizers {
	r := &Recognizers{}
	for _, item := range items {
		if item != nil {
			r.items = append(r.items, item)
		}
	}
	return r
}

// Len returns the number of recognizers.
func (r *Recognizers) Len() int {
	if r == nil {
		return 0
	}
	return len(r.items)
}

// At returns the recognizer at index i.
func (r *Recognizers) At(i int) Recognizer {
	return r.items[i]
}

// All iterates the recognizers in insertion order.
func (r *Recognizers) All() iter.Seq2[int, Recognizer] {
	return func(yield func(int, Recognizer) bool) {
		if r == nil {
			return
		}
		for i, item := range r.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// HasKind reports whether any recognizer is of kind k.
func (r *Recognizers) HasKind(k Kind) bool {
	for _, item := range r.All() {
		if item.Kind() == k {
			return true
		}
	}
	return false
}

// IndexOf returns the index of rec, or -1.
func (r *Recognizers) IndexOf(rec Recognizer) int {
	for i, item := range r.All() {
		if item == rec {
			return i
		}
	}
	return -1
}

// Add appends rec. Nil recognizers are ignored.
func (r *Recognizers) Add(rec Recognizer) {
	r.Insert(len(r.items), rec)
}

// Insert places rec at index i, shifting later recognizers.
func (r *Recognizers) Insert(i int, rec Recognizer) {
	if rec == nil {
		return
	}
	if i < 0 || i > len(r.items) {
		i = len(r.items)
	}
	r.items = append(r.items, nil)
	copy(r.items[i+1:], r.items[i:])
	r.items[i] = rec
	r.listeners.notify(CollectionChange{Action: CollectionAdd, Index: i, New: rec})
}

// Remove deletes the first occurrence of rec and reports whether it was found.
func (r *Recognizers) Remove(rec Recognizer) bool {
	i := r.IndexOf(rec)
	if i < 0 {
		return false
	}
	r.RemoveAt(i)
	return true
}

// RemoveAt deletes the recognizer at index i.
func (r *Recognizers) RemoveAt(i int) {
	old := r.items[i]
	r.items = append(r.items[:i], r.items[i+1:]...)
	r.listeners.notify(CollectionChange{Action: CollectionRemove, Index: i, Old: old})
}

// Set replaces the recognizer at index i.
func (r *Recognizers) Set(i int, rec Recognizer) {
	if rec == nil {
		r.RemoveAt(i)
		return
	}
	old := r.items[i]
	r.items[i] = rec
	r.listeners.notify(CollectionChange{Action: CollectionReplace, Index: i, New: rec, Old: old})
}

// Clear removes every recognizer with a single reset notification.
func (r *Recognizers) Clear() {
	if len(r.items) == 0 {
		return
	}
	r.items = nil
	r.listeners.notify(CollectionChange{Action: CollectionReset, Index: -1})
}

// OnChanged registers fn to run after every mutation.
func (r *Recognizers) OnChanged(fn func(CollectionChange)) *Subscription {
	return r.listeners.add(fn)
}

// ListenerCount returns the number of active change listeners.
func (r *Recognizers) ListenerCount() int {
	return r.listeners.len()
}
