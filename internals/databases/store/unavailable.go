package store

import (
	"context"
	"fmt"
)

// unavailableStore dipakai kalau koneksi awal ke database gagal. Proses tetap
// hidup, semua operasi mengembalikan ErrUnavailable.
type unavailableStore struct {
	cause error
}

// Unavailable membuat Store dalam mode degraded.
func Unavailable(cause error) Store {
	return &unavailableStore{cause: cause}
}

func (s *unavailableStore) err(op string) error {
	return fmt.Errorf("store %s: %w: %v", op, ErrUnavailable, s.cause)
}

func (s *unavailableStore) Get(context.Context, string) (Node, error) { return nil, s.err("get") }
func (s *unavailableStore) Value(context.Context, string) (any, error) {
	return nil, s.err("value")
}
func (s *unavailableStore) Set(context.Context, string, any) error { return s.err("set") }
func (s *unavailableStore) Update(context.Context, string, map[string]any) error {
	return s.err("update")
}
func (s *unavailableStore) Delete(context.Context, string) error        { return s.err("delete") }
func (s *unavailableStore) Apply(context.Context, map[string]any) error { return s.err("apply") }
func (s *unavailableStore) Ping(context.Context) error                  { return s.err("ping") }
