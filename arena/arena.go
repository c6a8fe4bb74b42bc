// Package arena provides a generation-free, index-stable object store.
//
// An Arena hands out Handles that stay valid for the lifetime of the value
// they address and are safe to compare and hash. Removing a value frees its
// slot for reuse by a later Insert, the same trade zeonica's port and buffer
// registries make in favor of dense, cache-friendly storage over pointer
// chasing.
package arena

// Handle addresses a slot inside an Arena. Handles are slot indices starting
// at 0, so the zero Handle addresses the first inserted value; callers must
// not assume a Handle's validity from its numeric value alone.
type Handle uint32

// Invalid is returned by lookups that found nothing to address.
const Invalid Handle = ^Handle(0)

type slot[T any] struct {
	occupied bool
	next     Handle // free-list link when !occupied
	value    T
}

// Arena is a dense store of values of type T with O(1) amortised insert and
// remove. It is not safe for concurrent use; callers that need concurrency
// must add their own synchronization, as zeonica's graph and port types do.
type Arena[T any] struct {
	slots    []slot[T]
	freeHead Handle
	len      int
}

// New creates an empty Arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{freeHead: Invalid}
}

// Insert stores value and returns a Handle that addresses it.
func (a *Arena[T]) Insert(value T) Handle {
	return a.InsertWith(func(Handle) T { return value })
}

// InsertWith lets value learn its own Handle before storage completes. build
// is invoked with the Handle the value will be stored under; the returned
// value is what ends up in the slot. This is how self-referential records
// (a graph node that needs to know its own NodeHandle) get constructed
// without a second mutation pass.
func (a *Arena[T]) InsertWith(build func(Handle) T) Handle {
	if a.freeHead == Invalid {
		h := Handle(len(a.slots))
		a.slots = append(a.slots, slot[T]{})
		a.slots[h].value = build(h)
		a.slots[h].occupied = true
		a.len++

		return h
	}

	h := a.freeHead
	a.freeHead = a.slots[h].next
	a.slots[h].value = build(h)
	a.slots[h].occupied = true
	a.len++

	return h
}

// Get returns the value at h and whether it is currently occupied.
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	if int(h) >= len(a.slots) || !a.slots[h].occupied {
		return nil, false
	}

	return &a.slots[h].value, true
}

// GetMut is an alias of Get kept to mirror the spec's insert/get/get_mut
// vocabulary; Go's pointer return already grants mutable access.
func (a *Arena[T]) GetMut(h Handle) (*T, bool) {
	return a.Get(h)
}

// Remove frees the slot at h, returning the removed value. Removing an
// already-free or out-of-range handle is a no-op that returns (zero, false),
// matching the spec's idempotent-remove guarantee.
func (a *Arena[T]) Remove(h Handle) (T, bool) {
	var zero T
	if int(h) >= len(a.slots) || !a.slots[h].occupied {
		return zero, false
	}

	v := a.slots[h].value
	a.slots[h] = slot[T]{next: a.freeHead}
	a.freeHead = h
	a.len--

	return v, true
}

// Len reports the number of currently occupied slots.
func (a *Arena[T]) Len() int {
	return a.len
}

// Iter calls fn for every occupied slot in ascending Handle order. fn may
// read freely; mutating the arena from within fn is not supported.
func (a *Arena[T]) Iter(fn func(Handle, *T)) {
	for i := range a.slots {
		if a.slots[i].occupied {
			fn(Handle(i), &a.slots[i].value)
		}
	}
}
