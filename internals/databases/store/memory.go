package store

import (
	"context"
	"sync"
)

// MemoryStore menyimpan tree di memori proses. Dipakai untuk STORE_DRIVER=memory
// dan untuk test.
type MemoryStore struct {
	mu   sync.RWMutex
	root map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{root: map[string]any{}}
}

func (s *MemoryStore) Get(ctx context.Context, path string) (Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m, ok := lookup(s.root, Split(path)).(map[string]any); ok {
		return Node(deepCopy(m).(map[string]any)), nil
	}
	return Node{}, nil
}

func (s *MemoryStore) Value(ctx context.Context, path string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deepCopy(lookup(s.root, Split(path))), nil
}

func (s *MemoryStore) Set(ctx context.Context, path string, value any) error {
	return s.Apply(ctx, map[string]any{path: value})
}

func (s *MemoryStore) Update(ctx context.Context, path string, fields map[string]any) error {
	ops := make(map[string]any, len(fields))
	for k, v := range fields {
		ops[Join(path, k)] = v
	}
	return s.Apply(ctx, ops)
}

func (s *MemoryStore) Delete(ctx context.Context, path string) error {
	return s.Apply(ctx, map[string]any{path: nil})
}

func (s *MemoryStore) Apply(ctx context.Context, ops map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// normalisasi di luar lock; kalau satu gagal, tidak ada yang ditulis
	normalized := make(map[string]any, len(ops))
	for p, v := range ops {
		nv, err := normalize(v)
		if err != nil {
			return err
		}
		normalized[p] = compact(nv)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range sortedKeys(normalized) {
		s.write(Split(p), normalized[p])
	}
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

// Snapshot mengembalikan salinan seluruh tree.
func (s *MemoryStore) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deepCopy(s.root).(map[string]any)
}

func (s *MemoryStore) write(segments []string, v any) {
	if len(segments) == 0 {
		if m, ok := v.(map[string]any); ok {
			s.root = m
		} else {
			s.root = map[string]any{}
		}
		return
	}
	if isEmpty(v) {
		removeAt(s.root, segments)
		return
	}

	cur := s.root
	for _, seg := range segments[:len(segments)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[seg] = next
		}
		cur = next
	}
	cur[segments[len(segments)-1]] = v
}

// removeAt menghapus node lalu memangkas parent yang jadi kosong.
func removeAt(m map[string]any, segments []string) bool {
	head := segments[0]
	if len(segments) == 1 {
		delete(m, head)
		return len(m) == 0
	}
	child, ok := m[head].(map[string]any)
	if !ok {
		return false
	}
	if removeAt(child, segments[1:]) {
		delete(m, head)
	}
	return len(m) == 0
}

func lookup(root map[string]any, segments []string) any {
	var cur any = root
	for _, seg := range segments {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		if cur, ok = m[seg]; !ok {
			return nil
		}
	}
	return cur
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = deepCopy(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = deepCopy(child)
		}
		return out
	default:
		return t
	}
}
