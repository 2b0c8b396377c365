package provinsi

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"github.com/bytedance/sonic"

	"tvdigital_backend/internals/databases/store"
)

//go:embed data_provinsi.json
var dataProvinsi []byte

// Default mengembalikan 38 provinsi Indonesia, urut kode wilayah.
func Default() ([]string, error) {
	var list []string
	if err := sonic.Unmarshal(dataProvinsi, &list); err != nil {
		return nil, fmt.Errorf("decode data provinsi: %w", err)
	}
	return list, nil
}

// SeedProvinsi mengisi node provinsi kalau masih kosong. Daftar yang sudah ada
// tidak pernah ditimpa.
func SeedProvinsi(ctx context.Context, s store.Store) error {
	existing, err := s.Value(ctx, store.RootProvinsi)
	if err != nil {
		return fmt.Errorf("baca provinsi: %w", err)
	}
	if existing != nil {
		log.Println("ℹ️ Daftar provinsi sudah ada, dilewati.")
		return nil
	}

	list, err := Default()
	if err != nil {
		return err
	}
	if err := s.Set(ctx, store.RootProvinsi, list); err != nil {
		return fmt.Errorf("simpan provinsi: %w", err)
	}
	log.Printf("✅ %d provinsi berhasil di-seed", len(list))
	return nil
}
