package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tvdigital_backend/internals/databases/store"
	"tvdigital_backend/internals/features/siaran/model"
	authModel "tvdigital_backend/internals/features/users/auth/model"
	"tvdigital_backend/internals/helpers/dbtime"
)

// RecordInput adalah input mentah dari form/JSON sebelum dibersihkan.
type RecordInput struct {
	Provinsi string
	Wilayah  string
	Mux      string
	Siaran   string
}

type SiaranService struct {
	Store store.Store
	Loc   *time.Location
	Now   func() time.Time
}

func NewSiaranService(s store.Store) *SiaranService {
	return &SiaranService{
		Store: s,
		Loc:   dbtime.AppLocation(),
		Now:   time.Now,
	}
}

func recordPath(provinsi, wilayah, mux string) string {
	return store.Join(store.RootSiaran, provinsi, wilayah, mux)
}

func (s *SiaranService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

/* ===============================
   Tulis (wajib login)
=================================*/

// AddRecord menulis ulang seluruh record di provinsi/wilayah/mux (last-write-wins).
func (s *SiaranService) AddRecord(ctx context.Context, actor *authModel.ActingUser, in RecordInput) (*model.BroadcastRecord, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthorized
	}

	provinsi := strings.TrimSpace(in.Provinsi)
	wilayah := NormalizeWilayah(in.Wilayah)
	mux := strings.TrimSpace(in.Mux)
	if err := validateSegments(provinsi, wilayah, mux); err != nil {
		return nil, err
	}
	channels := ParseChannels(in.Siaran)
	if len(channels) == 0 {
		return nil, invalid("siaran", "Daftar siaran wajib diisi.")
	}

	rec := &model.BroadcastRecord{
		Siaran:          channels,
		LastUpdatedBy:   actor.Username,
		LastUpdatedDate: dbtime.FormatTanggal(s.now(), s.Loc),
	}
	if err := s.Store.Set(ctx, recordPath(provinsi, wilayah, mux), rec.ToMap()); err != nil {
		return nil, fmt.Errorf("tambah siaran: %w", err)
	}
	return rec, nil
}

// EditRecord meng-update sebagian field record yang sudah ada. Field lain tetap.
func (s *SiaranService) EditRecord(ctx context.Context, actor *authModel.ActingUser, in RecordInput) (*model.BroadcastRecord, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthorized
	}

	provinsi, wilayah, mux, err := decodePath(in.Provinsi, in.Wilayah, in.Mux)
	if err != nil {
		return nil, err
	}
	channels := ParseChannels(in.Siaran)
	if len(channels) == 0 {
		return nil, invalid("siaran", "Daftar siaran wajib diisi.")
	}

	p := recordPath(provinsi, wilayah, mux)
	existing, err := s.Store.Get(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("baca siaran: %w", err)
	}
	if len(existing) == 0 {
		return nil, ErrRecordNotFound
	}

	now := s.now()
	fields := map[string]any{
		model.FieldSiaran:            channels,
		model.FieldLastUpdatedBy:     actor.Username,
		model.FieldLastUpdatedByName: actor.Name(),
		model.FieldLastUpdatedDate:   dbtime.FormatTanggal(now, s.Loc),
		model.FieldLastUpdatedTime:   dbtime.FormatJam(now, s.Loc),
	}
	if err := s.Store.Update(ctx, p, fields); err != nil {
		return nil, fmt.Errorf("update siaran: %w", err)
	}

	updated, err := s.Store.Get(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("baca siaran: %w", err)
	}
	return model.FromNode(updated), nil
}

// DeleteRecord menghapus record beserta isinya. Path yang tidak ada tetap sukses.
func (s *SiaranService) DeleteRecord(ctx context.Context, actor *authModel.ActingUser, provinsi, wilayah, mux string) error {
	if !actor.IsAuthenticated() {
		return ErrUnauthorized
	}
	provinsi, wilayah, mux, err := decodePath(provinsi, wilayah, mux)
	if err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, recordPath(provinsi, wilayah, mux)); err != nil {
		return fmt.Errorf("hapus siaran: %w", err)
	}
	return nil
}

/* ===============================
   Baca (path tidak ada = hasil kosong)
=================================*/

// ListProvinces membaca daftar provinsi untuk pilihan di form.
func (s *SiaranService) ListProvinces(ctx context.Context) ([]string, error) {
	v, err := s.Store.Value(ctx, store.RootProvinsi)
	if err != nil {
		return nil, fmt.Errorf("baca provinsi: %w", err)
	}
	out := []string{}
	switch t := v.(type) {
	case []any:
		for _, x := range t {
			if name, ok := x.(string); ok && strings.TrimSpace(name) != "" {
				out = append(out, name)
			}
		}
	case map[string]any:
		// bentuk lama: {"<key>": "<nama>"}
		for _, k := range store.Node(t).Keys() {
			if name, ok := t[k].(string); ok && strings.TrimSpace(name) != "" {
				out = append(out, name)
			}
		}
	}
	return out, nil
}

func (s *SiaranService) ListRegions(ctx context.Context, provinsi string) ([]string, error) {
	p, ok := decodeQuery(provinsi)
	if !ok {
		return []string{}, nil
	}
	node, err := s.Store.Get(ctx, store.Join(store.RootSiaran, p))
	if err != nil {
		return nil, fmt.Errorf("baca wilayah: %w", err)
	}
	return node.Keys(), nil
}

func (s *SiaranService) ListMultiplexes(ctx context.Context, provinsi, wilayah string) ([]string, error) {
	p, okP := decodeQuery(provinsi)
	w, okW := decodeQuery(wilayah)
	if !okP || !okW {
		return []string{}, nil
	}
	node, err := s.Store.Get(ctx, store.Join(store.RootSiaran, p, w))
	if err != nil {
		return nil, fmt.Errorf("baca mux: %w", err)
	}
	return node.Keys(), nil
}

// GetRecord mengembalikan record kosong (IsEmpty) kalau path tidak ada.
func (s *SiaranService) GetRecord(ctx context.Context, provinsi, wilayah, mux string) (*model.BroadcastRecord, error) {
	p, okP := decodeQuery(provinsi)
	w, okW := decodeQuery(wilayah)
	m, okM := decodeQuery(mux)
	if !okP || !okW || !okM {
		return &model.BroadcastRecord{Siaran: []string{}}, nil
	}
	node, err := s.Store.Get(ctx, recordPath(p, w, m))
	if err != nil {
		return nil, fmt.Errorf("baca siaran: %w", err)
	}
	return model.FromNode(node), nil
}

// RecordTree: wilayah → mux → record untuk satu provinsi.
func (s *SiaranService) RecordTree(ctx context.Context, provinsi string) (map[string]map[string]*model.BroadcastRecord, error) {
	out := map[string]map[string]*model.BroadcastRecord{}
	p, ok := decodeQuery(provinsi)
	if !ok {
		return out, nil
	}
	node, err := s.Store.Get(ctx, store.Join(store.RootSiaran, p))
	if err != nil {
		return nil, fmt.Errorf("baca siaran: %w", err)
	}
	for _, w := range node.Keys() {
		muxes := node.Child(w)
		if len(muxes) == 0 {
			continue
		}
		out[w] = make(map[string]*model.BroadcastRecord, len(muxes))
		for _, m := range muxes.Keys() {
			out[w][m] = model.FromNode(muxes.Child(m))
		}
	}
	return out, nil
}

// AggregateCounts menelusuri seluruh pohon siaran sekali.
func (s *SiaranService) AggregateCounts(ctx context.Context) (model.Counts, error) {
	var c model.Counts
	root, err := s.Store.Get(ctx, store.RootSiaran)
	if err != nil {
		return c, fmt.Errorf("hitung siaran: %w", err)
	}
	for _, p := range root.Keys() {
		regions := root.Child(p)
		c.Provinces++
		for _, w := range regions.Keys() {
			muxes := regions.Child(w)
			c.Regions++
			for _, m := range muxes.Keys() {
				c.Multiplexes++
				c.Channels += len(model.FromNode(muxes.Child(m)).Siaran)
			}
		}
	}
	return c, nil
}

/* ===============================
   Helpers
=================================*/

func validateSegments(provinsi, wilayah, mux string) error {
	checks := []struct{ field, value, label string }{
		{"provinsi", provinsi, "Provinsi"},
		{"wilayah", wilayah, "Wilayah"},
		{"mux", mux, "Mux"},
	}
	for _, c := range checks {
		if c.value == "" {
			return invalid(c.field, c.label+" wajib diisi.")
		}
		if err := store.ValidSegment(c.value); err != nil {
			return invalid(c.field, c.label+" tidak boleh mengandung '/'.")
		}
	}
	return nil
}

func decodePath(provinsi, wilayah, mux string) (string, string, string, error) {
	raw := [3]string{provinsi, wilayah, mux}
	fields := [3]string{"provinsi", "wilayah", "mux"}
	var out [3]string
	for i := range raw {
		d, err := decodeSegment(raw[i])
		if err != nil {
			return "", "", "", invalid(fields[i], "Format "+fields[i]+" pada URL tidak valid.")
		}
		out[i] = d
	}
	if err := validateSegments(out[0], out[1], out[2]); err != nil {
		return "", "", "", err
	}
	return out[0], out[1], out[2], nil
}

// decodeQuery: segmen yang tidak bisa dipakai diperlakukan sebagai "tidak ada".
func decodeQuery(s string) (string, bool) {
	d, err := decodeSegment(s)
	if err != nil || store.ValidSegment(d) != nil {
		return "", false
	}
	return d, true
}
