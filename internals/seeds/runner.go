package seeds

import (
	"context"
	"log"
	"time"

	"tvdigital_backend/internals/databases/store"
	"tvdigital_backend/internals/seeds/provinsi"
)

// RunAllSeeds dijalankan sekali saat start. Gagal seed tidak menghentikan server.
func RunAllSeeds(s store.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	//* Provinsi
	if err := provinsi.SeedProvinsi(ctx, s); err != nil {
		log.Printf("[WARN] seed provinsi: %v", err)
	}
}
