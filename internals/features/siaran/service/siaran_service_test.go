package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tvdigital_backend/internals/databases/store"
	"tvdigital_backend/internals/features/siaran/model"
	authModel "tvdigital_backend/internals/features/users/auth/model"
)

var wib = time.FixedZone("WIB", 7*60*60)

func newTestService(t *testing.T) (*SiaranService, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemoryStore()
	svc := &SiaranService{
		Store: mem,
		Loc:   wib,
		Now:   func() time.Time { return time.Date(2024, 3, 10, 7, 15, 30, 0, time.UTC) },
	}
	return svc, mem
}

var budi = &authModel.ActingUser{Username: "budi", DisplayName: "Budi Santoso"}

func TestParseChannels(t *testing.T) {
	cases := map[string][]string{
		"TVRI, , RTV ,TVRI": {"RTV", "TVRI", "TVRI"},
		"":                  {},
		" , ,":              {},
		"Trans7":            {"Trans7"},
		"b,a,c":             {"a", "b", "c"},
	}
	for in, want := range cases {
		got := ParseChannels(in)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ParseChannels(%q) mismatch (-want +got):\n%s", in, diff)
		}
	}
}

func TestNormalizeWilayah(t *testing.T) {
	assert.Equal(t, "Jakarta-Pusat", NormalizeWilayah("Jakarta   -   Pusat"))
	assert.Equal(t, "Jakarta-Pusat", NormalizeWilayah("Jakarta - Pusat"))
	assert.Equal(t, "Jakarta Pusat", NormalizeWilayah("Jakarta Pusat"))
	assert.Equal(t, "Bandung-Kota", NormalizeWilayah("  Bandung -Kota "))

	for _, in := range []string{"Jakarta   -   Pusat", "A - B - C", "x-y", "  -  ", "Jakarta Pusat"} {
		once := NormalizeWilayah(in)
		assert.Equal(t, once, NormalizeWilayah(once), "normalize must be idempotent for %q", in)
	}
}

func TestAddRecord_StoresCleanRecord(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	rec, err := svc.AddRecord(ctx, budi, RecordInput{
		Provinsi: "Jawa Barat",
		Wilayah:  "Bandung - Kota",
		Mux:      "MUX 1",
		Siaran:   "TVRI, RTV",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"RTV", "TVRI"}, rec.Siaran)

	want := map[string]any{
		"siaran": map[string]any{
			"Jawa Barat": map[string]any{
				"Bandung-Kota": map[string]any{
					"MUX 1": map[string]any{
						"siaran":            []any{"RTV", "TVRI"},
						"last_updated_by":   "budi",
						"last_updated_date": "10-03-2024",
					},
				},
			},
		},
	}
	if diff := cmp.Diff(want, mem.Snapshot()); diff != "" {
		t.Fatalf("store mismatch (-want +got):\n%s", diff)
	}
}

func TestAddRecord_KeepsDuplicatesAndOverwrites(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddRecord(ctx, budi, RecordInput{Provinsi: "Aceh", Wilayah: "Banda Aceh", Mux: "MUX 2", Siaran: "TVRI, , RTV ,TVRI"})
	require.NoError(t, err)
	got, err := svc.GetRecord(ctx, "Aceh", "Banda Aceh", "MUX 2")
	require.NoError(t, err)
	assert.Equal(t, []string{"RTV", "TVRI", "TVRI"}, got.Siaran)

	_, err = svc.AddRecord(ctx, budi, RecordInput{Provinsi: "Aceh", Wilayah: "Banda Aceh", Mux: "MUX 2", Siaran: "Kompas TV"})
	require.NoError(t, err)
	got, err = svc.GetRecord(ctx, "Aceh", "Banda Aceh", "MUX 2")
	require.NoError(t, err)
	assert.Equal(t, []string{"Kompas TV"}, got.Siaran)
}

func TestAddRecord_Validation(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		in    RecordInput
		field string
	}{
		{"provinsi kosong", RecordInput{Provinsi: "  ", Wilayah: "A", Mux: "M", Siaran: "TVRI"}, "provinsi"},
		{"wilayah kosong", RecordInput{Provinsi: "P", Wilayah: " ", Mux: "M", Siaran: "TVRI"}, "wilayah"},
		{"mux kosong", RecordInput{Provinsi: "P", Wilayah: "A", Mux: "", Siaran: "TVRI"}, "mux"},
		{"siaran kosong", RecordInput{Provinsi: "P", Wilayah: "A", Mux: "M", Siaran: " , "}, "siaran"},
		{"slash di mux", RecordInput{Provinsi: "P", Wilayah: "A", Mux: "M/1", Siaran: "TVRI"}, "mux"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddRecord(ctx, budi, tc.in)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "want ValidationError, got %v", err)
			assert.Equal(t, tc.field, ve.Field)
			assert.Empty(t, mem.Snapshot())
		})
	}
}

func TestMutations_RequireLogin(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddRecord(ctx, budi, RecordInput{Provinsi: "Bali", Wilayah: "Denpasar", Mux: "MUX 1", Siaran: "TVRI"})
	require.NoError(t, err)
	before := mem.Snapshot()

	for _, actor := range []*authModel.ActingUser{nil, {}, {Username: "  ", DisplayName: "Anon"}} {
		_, err = svc.AddRecord(ctx, actor, RecordInput{Provinsi: "Bali", Wilayah: "Denpasar", Mux: "MUX 9", Siaran: "RTV"})
		assert.ErrorIs(t, err, ErrUnauthorized)

		_, err = svc.EditRecord(ctx, actor, RecordInput{Provinsi: "Bali", Wilayah: "Denpasar", Mux: "MUX 1", Siaran: "RTV"})
		assert.ErrorIs(t, err, ErrUnauthorized)

		err = svc.DeleteRecord(ctx, actor, "Bali", "Denpasar", "MUX 1")
		assert.ErrorIs(t, err, ErrUnauthorized)
	}

	if diff := cmp.Diff(before, mem.Snapshot()); diff != "" {
		t.Fatalf("store changed without login (-before +after):\n%s", diff)
	}
}

func TestMutations_RequireLoginBeforeStoreAccess(t *testing.T) {
	svc := &SiaranService{Store: store.Unavailable(errors.New("down")), Loc: wib}

	_, err := svc.AddRecord(context.Background(), nil, RecordInput{Provinsi: "P", Wilayah: "W", Mux: "M", Siaran: "TVRI"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, store.ErrUnavailable)
}

func TestEditRecord_PartialMergeKeepsExtraFields(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	require.NoError(t, mem.Set(ctx, "siaran/Jawa Barat/Bandung-Kota/MUX 1", map[string]any{
		"siaran":            []string{"TVRI"},
		"last_updated_by":   "lama",
		"last_updated_date": "01-01-2023",
		"foo":               "bar",
	}))

	rec, err := svc.EditRecord(ctx, budi, RecordInput{
		Provinsi: "Jawa%20Barat",
		Wilayah:  "Bandung-Kota",
		Mux:      "MUX%201",
		Siaran:   "Trans7, NET",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"NET", "Trans7"}, rec.Siaran)
	assert.Equal(t, "budi", rec.LastUpdatedBy)
	assert.Equal(t, "Budi Santoso", rec.LastUpdatedByName)
	assert.Equal(t, "10-03-2024", rec.LastUpdatedDate)
	assert.Equal(t, "14:15:30 WIB", rec.LastUpdatedTime)
	assert.Equal(t, map[string]any{"foo": "bar"}, rec.Extra)

	foo, err := mem.Value(ctx, "siaran/Jawa Barat/Bandung-Kota/MUX 1/foo")
	require.NoError(t, err)
	assert.Equal(t, "bar", foo)
}

func TestEditRecord_EmptyChannelsIsValidationError(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddRecord(ctx, budi, RecordInput{Provinsi: "Jawa Barat", Wilayah: "Bandung - Kota", Mux: "MUX 1", Siaran: "TVRI, RTV"})
	require.NoError(t, err)
	before := mem.Snapshot()

	_, err = svc.EditRecord(ctx, budi, RecordInput{Provinsi: "Jawa Barat", Wilayah: "Bandung-Kota", Mux: "MUX 1", Siaran: ""})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "siaran", ve.Field)

	if diff := cmp.Diff(before, mem.Snapshot()); diff != "" {
		t.Fatalf("store changed on invalid edit (-before +after):\n%s", diff)
	}
}

func TestEditRecord_MissingRecord(t *testing.T) {
	svc, mem := newTestService(t)

	_, err := svc.EditRecord(context.Background(), budi, RecordInput{Provinsi: "Papua", Wilayah: "Jayapura", Mux: "MUX 1", Siaran: "TVRI"})
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.Empty(t, mem.Snapshot())
}

func TestEditRecord_BadEscape(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.EditRecord(context.Background(), budi, RecordInput{Provinsi: "Jawa%2", Wilayah: "W", Mux: "M", Siaran: "TVRI"})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "provinsi", ve.Field)
}

func TestDeleteRecord(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddRecord(ctx, budi, RecordInput{Provinsi: "DKI Jakarta", Wilayah: "Jakarta - Pusat", Mux: "MUX 1", Siaran: "TVRI"})
	require.NoError(t, err)
	_, err = svc.AddRecord(ctx, budi, RecordInput{Provinsi: "DKI Jakarta", Wilayah: "Jakarta - Pusat", Mux: "MUX 2", Siaran: "RTV"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecord(ctx, budi, "DKI%20Jakarta", "Jakarta-Pusat", "MUX%201"))
	muxes, err := svc.ListMultiplexes(ctx, "DKI Jakarta", "Jakarta-Pusat")
	require.NoError(t, err)
	assert.Equal(t, []string{"MUX 2"}, muxes)

	// tidak ada lagi, tetap sukses
	require.NoError(t, svc.DeleteRecord(ctx, budi, "DKI Jakarta", "Jakarta-Pusat", "MUX 1"))
	require.NoError(t, svc.DeleteRecord(ctx, budi, "Maluku", "Ambon", "MUX 7"))

	// segmen kosong tidak boleh menghapus satu provinsi
	err = svc.DeleteRecord(ctx, budi, "DKI Jakarta", "Jakarta-Pusat", " ")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	regions, err := svc.ListRegions(ctx, "DKI Jakarta")
	require.NoError(t, err)
	assert.Equal(t, []string{"Jakarta-Pusat"}, regions)
}

func TestQueries_MissingPathsAreEmpty(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	regions, err := svc.ListRegions(ctx, "Tidak Ada")
	require.NoError(t, err)
	assert.NotNil(t, regions)
	assert.Empty(t, regions)

	muxes, err := svc.ListMultiplexes(ctx, "Tidak Ada", "Juga Tidak")
	require.NoError(t, err)
	assert.NotNil(t, muxes)
	assert.Empty(t, muxes)

	rec, err := svc.GetRecord(ctx, "Tidak Ada", "Juga Tidak", "MUX 0")
	require.NoError(t, err)
	assert.True(t, rec.IsEmpty())

	regions, err = svc.ListRegions(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, regions)

	tree, err := svc.RecordTree(ctx, "Tidak Ada")
	require.NoError(t, err)
	assert.Empty(t, tree)
}

func TestQueries_DecodePercentEncoding(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddRecord(ctx, budi, RecordInput{Provinsi: "Jawa Timur", Wilayah: "Surabaya", Mux: "MUX 3", Siaran: "JTV"})
	require.NoError(t, err)

	regions, err := svc.ListRegions(ctx, "Jawa%20Timur")
	require.NoError(t, err)
	assert.Equal(t, []string{"Surabaya"}, regions)

	rec, err := svc.GetRecord(ctx, "Jawa%20Timur", "Surabaya", "MUX%203")
	require.NoError(t, err)
	assert.Equal(t, []string{"JTV"}, rec.Siaran)

	tree, err := svc.RecordTree(ctx, "Jawa%20Timur")
	require.NoError(t, err)
	require.Contains(t, tree, "Surabaya")
	assert.Equal(t, []string{"JTV"}, tree["Surabaya"]["MUX 3"].Siaran)
}

func TestAggregateCounts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	counts, err := svc.AggregateCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Counts{}, counts)

	inputs := []RecordInput{
		{Provinsi: "Jawa Barat", Wilayah: "Bandung - Kota", Mux: "MUX 1", Siaran: "TVRI, RTV"},
		{Provinsi: "Jawa Barat", Wilayah: "Bandung - Kota", Mux: "MUX 2", Siaran: "NET"},
		{Provinsi: "Jawa Barat", Wilayah: "Bogor", Mux: "MUX 1", Siaran: "TVRI, TVRI, Kompas TV"},
		{Provinsi: "Bali", Wilayah: "Denpasar", Mux: "MUX 1", Siaran: "Bali TV"},
	}
	for _, in := range inputs {
		_, err := svc.AddRecord(ctx, budi, in)
		require.NoError(t, err)
	}

	counts, err = svc.AggregateCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Counts{Provinces: 2, Regions: 3, Multiplexes: 4, Channels: 7}, counts)
}

func TestListProvinces(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	got, err := svc.ListProvinces(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, mem.Set(ctx, store.RootProvinsi, []string{"Aceh", "Bali", ""}))
	got, err = svc.ListProvinces(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Aceh", "Bali"}, got)
}

func TestStoreUnavailableIsPropagated(t *testing.T) {
	svc := &SiaranService{Store: store.Unavailable(errors.New("dial tcp: refused")), Loc: wib}
	ctx := context.Background()

	_, err := svc.AddRecord(ctx, budi, RecordInput{Provinsi: "P", Wilayah: "W", Mux: "M", Siaran: "TVRI"})
	assert.ErrorIs(t, err, store.ErrUnavailable)

	_, err = svc.ListRegions(ctx, "P")
	assert.ErrorIs(t, err, store.ErrUnavailable)

	_, err = svc.AggregateCounts(ctx)
	assert.ErrorIs(t, err, store.ErrUnavailable)
}
