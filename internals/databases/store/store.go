// Package store menyimpan data dalam bentuk pohon key-value hierarkis.
//
// Path adalah segmen yang digabung dengan "/", misalnya
// "siaran/Jawa Barat/Bandung-Kota/MUX 1". Path kosong berarti root.
// Object (map) selalu dipecah per child; array, string, angka dan bool
// adalah leaf.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
)

// Namespace di root.
const (
	RootSiaran         = "siaran"
	RootProvinsi       = "provinsi"
	RootUsers          = "users"
	RootPendingUsers   = "pending_users"
	RootOTP            = "otp"
	RootTokenBlacklist = "token_blacklist"
)

var (
	// ErrUnavailable dikembalikan kalau backend penyimpanan tidak bisa dihubungi.
	ErrUnavailable = errors.New("store unavailable")
	// ErrInvalidPath untuk segmen path yang tidak valid.
	ErrInvalidPath = errors.New("invalid store path")
)

// Node adalah subtree hasil Get. Tidak pernah nil.
type Node map[string]any

// Keys mengembalikan child key yang terurut.
func (n Node) Keys() []string {
	out := make([]string, 0, len(n))
	for k := range n {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Child mengembalikan child berupa object; kosong kalau tidak ada atau bukan object.
func (n Node) Child(key string) Node {
	if m, ok := n[key].(map[string]any); ok {
		return Node(m)
	}
	return Node{}
}

// Store adalah kontrak penyimpanan hierarkis.
type Store interface {
	// Get mengembalikan subtree di path; path yang tidak ada menghasilkan Node kosong.
	Get(ctx context.Context, path string) (Node, error)
	// Value mengembalikan nilai mentah di path (leaf atau subtree); nil kalau tidak ada.
	Value(ctx context.Context, path string) (any, error)
	// Set mengganti seluruh subtree di path.
	Set(ctx context.Context, path string, value any) error
	// Update menggabungkan fields sebagai child langsung dari path.
	Update(ctx context.Context, path string, fields map[string]any) error
	// Delete menghapus subtree. Path yang tidak ada bukan error.
	Delete(ctx context.Context, path string) error
	// Apply menulis beberapa path sekaligus secara atomik; nilai nil berarti hapus.
	Apply(ctx context.Context, ops map[string]any) error
	Ping(ctx context.Context) error
}

// Join menggabungkan segmen menjadi path.
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

// Split memecah path menjadi segmen, segmen kosong dibuang.
func Split(path string) []string {
	raw := strings.Split(path, "/")
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ValidSegment memastikan satu segmen bisa dipakai sebagai key.
func ValidSegment(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: segmen kosong", ErrInvalidPath)
	}
	if strings.Contains(s, "/") {
		return fmt.Errorf("%w: segmen %q mengandung '/'", ErrInvalidPath, s)
	}
	return nil
}

// Decode memetakan nilai dari store (map/array generik) ke struct.
func Decode(v any, out any) error {
	raw, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(raw, out)
}

// normalize mengubah struct/map apa pun ke bentuk generik JSON
// (map[string]any, []any, string, float64, bool, nil).
func normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := sonic.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	var out any
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}
	return out, nil
}

// isEmpty: nil dan object kosong sama dengan hapus.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	m, ok := v.(map[string]any)
	return ok && len(m) == 0
}

// flatten memecah object menjadi leaf per path relatif terhadap prefix.
func flatten(prefix string, v any, out map[string]any) {
	m, ok := v.(map[string]any)
	if !ok {
		if v != nil {
			out[prefix] = v
		}
		return
	}
	for k, child := range m {
		flatten(Join(prefix, k), child, out)
	}
}

// insertLeaf memasang leaf ke tree hasil rekonstruksi.
func insertLeaf(root map[string]any, segments []string, v any) {
	cur := root
	for i, seg := range segments {
		if i == len(segments)-1 {
			cur[seg] = v
			return
		}
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[seg] = next
		}
		cur = next
	}
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// compact membuang object kosong di dalam nilai, sama seperti yang terjadi
// ketika nilai dipecah menjadi leaf.
func compact(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(m))
	for k, child := range m {
		c := compact(child)
		if !isEmpty(c) {
			out[k] = c
		}
	}
	return out
}
