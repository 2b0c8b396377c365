package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tvdigital_backend/internals/configs"
	"tvdigital_backend/internals/databases/store"
)

var DB *gorm.DB

func ConnectDB() error {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	// statement_timeout menjaga satu round-trip tetap pendek
	sslmode := getenv("DB_SSLMODE", "require")
	dsn := getenv("DATABASE_URL", "")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=tvdigital&options=-c statement_timeout=3000",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			getenv("DB_PORT", "5432"),
			os.Getenv("DB_NAME"),
			sslmode,
		)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("gagal konek DB: %w", err)
	}
	DB = db
	log.Println("✅ DB connected.")
	return nil
}

func TunePool() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// OpenStore membuat satu handle store untuk seluruh proses sesuai STORE_DRIVER.
// Kalau database tidak bisa dihubungi, yang dikembalikan adalah store degraded
// supaya server tetap bisa melayani /health dan pesan error yang rapi.
func OpenStore() store.Store {
	switch configs.StoreDriver {
	case "memory":
		log.Println("[INFO] STORE_DRIVER=memory, data tidak persisten")
		return store.NewMemoryStore()
	case "postgres", "":
	default:
		log.Printf("[WARN] STORE_DRIVER=%q tidak dikenal, pakai postgres", configs.StoreDriver)
	}

	if err := ConnectDB(); err != nil {
		log.Printf("❌ %v, store berjalan dalam mode tidak tersedia", err)
		return store.Unavailable(err)
	}
	TunePool()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ping(ctx); err != nil {
		log.Printf("❌ ping DB gagal: %v, store berjalan dalam mode tidak tersedia", err)
		return store.Unavailable(err)
	}

	s, err := store.NewGormStore(DB)
	if err != nil {
		log.Printf("❌ migrasi tree_nodes gagal: %v", err)
		return store.Unavailable(err)
	}
	return s
}

// Close menutup pool kalau ada.
func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func ping(ctx context.Context) error {
	if DB == nil {
		return errors.New("db belum terkoneksi")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
