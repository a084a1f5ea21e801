package state

// EntityState is an ordered collection keyed by id. IDs holds insertion
// order and never contains duplicates; every id has an entry in Entities.
//
// Values are treated as immutable: adapter operations return a fresh
// EntityState and never modify the one they were given.
type EntityState[T any] struct {
	IDs      []string     `json:"ids"`
	Entities map[string]T `json:"entities"`
}

// Adapter implements the collection operations for entities of type T.
type Adapter[T any] struct {
	id func(T) string
}

func NewAdapter[T any](id func(T) string) Adapter[T] {
	return Adapter[T]{id: id}
}

// Initial returns an empty collection.
func (a Adapter[T]) Initial() EntityState[T] {
	return EntityState[T]{IDs: []string{}, Entities: map[string]T{}}
}

// SetAll replaces the collection with items. Later duplicates overwrite
// the value but keep the position of the first occurrence.
func (a Adapter[T]) SetAll(_ EntityState[T], items []T) EntityState[T] {
	out := EntityState[T]{
		IDs:      make([]string, 0, len(items)),
		Entities: make(map[string]T, len(items)),
	}
	for _, item := range items {
		id := a.id(item)
		if _, ok := out.Entities[id]; !ok {
			out.IDs = append(out.IDs, id)
		}
		out.Entities[id] = item
	}
	return out
}

// AddOne appends item unless its id is already present.
func (a Adapter[T]) AddOne(s EntityState[T], item T) EntityState[T] {
	id := a.id(item)
	if _, ok := s.Entities[id]; ok {
		return s
	}
	out := a.clone(s, 1)
	out.IDs = append(out.IDs, id)
	out.Entities[id] = item
	return out
}

// UpsertOne replaces the entry in place, or appends it when missing.
func (a Adapter[T]) UpsertOne(s EntityState[T], item T) EntityState[T] {
	id := a.id(item)
	_, exists := s.Entities[id]
	out := a.clone(s, 1)
	if !exists {
		out.IDs = append(out.IDs, id)
	}
	out.Entities[id] = item
	return out
}

// RemoveOne drops id. Unknown ids leave s untouched.
func (a Adapter[T]) RemoveOne(s EntityState[T], id string) EntityState[T] {
	if _, ok := s.Entities[id]; !ok {
		return s
	}
	out := EntityState[T]{
		IDs:      make([]string, 0, len(s.IDs)),
		Entities: make(map[string]T, len(s.Entities)),
	}
	for _, existing := range s.IDs {
		if existing == id {
			continue
		}
		out.IDs = append(out.IDs, existing)
		out.Entities[existing] = s.Entities[existing]
	}
	return out
}

// UpdateOne applies fn to the entry with id. Unknown ids leave s untouched.
func (a Adapter[T]) UpdateOne(s EntityState[T], id string, fn func(T) T) EntityState[T] {
	current, ok := s.Entities[id]
	if !ok {
		return s
	}
	out := a.clone(s, 0)
	out.Entities[id] = fn(current)
	return out
}

// All returns the entities in id order.
func (a Adapter[T]) All(s EntityState[T]) []T {
	items := make([]T, 0, len(s.IDs))
	for _, id := range s.IDs {
		items = append(items, s.Entities[id])
	}
	return items
}

func (a Adapter[T]) clone(s EntityState[T], extra int) EntityState[T] {
	out := EntityState[T]{
		IDs:      make([]string, len(s.IDs), len(s.IDs)+extra),
		Entities: make(map[string]T, len(s.Entities)+extra),
	}
	copy(out.IDs, s.IDs)
	for k, v := range s.Entities {
		out.Entities[k] = v
	}
	return out
}
