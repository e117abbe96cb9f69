package gestures

// Subscription is a scoped listener registration. Cancel removes the
// listener; calling it more than once is a no-op.
type Subscription struct {
	cancel   func()
	canceled bool
}

// NewSubscription wraps a removal function in a Subscription.
func NewSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// Cancel stops delivery to the listener.
func (s *Subscription) Cancel() {
	if s == nil || s.canceled {
		return
	}
	s.canceled = true
	if s.cancel != nil {
		s.cancel()
	}
}

// IsCanceled returns true if the subscription has been canceled.
func (s *Subscription) IsCanceled() bool {
	return s == nil || s.canceled
}

// listenerList is an ordered set of callbacks that tolerates removal during
// notification.
type listenerList[T any] struct {
	entries []*listenerEntry[T]
}

type listenerEntry[T any] struct {
	fn      func(T)
	removed bool
}

func (l *listenerList[T]) add(fn func(T)) *Subscription {
	entry := &listenerEntry[T]{fn: fn}
	l.entries = append(l.entries, entry)
	return NewSubscription(func() {
		entry.removed = true
		for i, e := range l.entries {
			if e == entry {
				l.entries = append(l.entries[:i], l.entries[i+1:]...)
				break
			}
		}
	})
}

func (l *listenerList[T]) len() int {
	return len(l.entries)
}

func (l *listenerList[T]) notify(v T) {
	snapshot := make([]*listenerEntry[T], len(l.entries))
	copy(snapshot, l.entries)
	for _, e := range snapshot {
		if !e.removed {
			e.fn(v)
		}
	}
}

// Listeners is an exported listener list for packages that publish their own
// change streams (views, controls).
type Listeners[T any] struct {
	list listenerList[T]
}

// Add registers fn and returns its subscription.
func (l *Listeners[T]) Add(fn func(T)) *Subscription {
	return l.list.add(fn)
}

// Notify calls every registered listener in registration order.
func (l *Listeners[T]) Notify(v T) {
	l.list.notify(v)
}

// Len returns the number of registered listeners.
func (l *Listeners[T]) Len() int {
	return l.list.len()
}
