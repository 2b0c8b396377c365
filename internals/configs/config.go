package configs

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret      string
	AccessTokenTTL time.Duration
	StoreDriver    string
	AppTimezone    string
	OTPTTL         time.Duration
	CorsOrigins    []string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	NewsFeedURLs []string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	AccessTokenTTL = time.Duration(GetEnvInt("ACCESS_TOKEN_TTL_HOURS", 24)) * time.Hour
	StoreDriver = strings.ToLower(GetEnv("STORE_DRIVER", "postgres"))
	AppTimezone = GetEnv("APP_TIMEZONE", "Asia/Jakarta")
	OTPTTL = time.Duration(GetEnvInt("OTP_TTL_MINUTES", 10)) * time.Minute
	CorsOrigins = GetEnvList("CORS_ORIGINS", "http://localhost:5173")

	SMTPHost = GetEnv("SMTP_HOST")
	SMTPPort = GetEnvInt("SMTP_PORT", 587)
	SMTPUser = GetEnv("SMTP_USER")
	SMTPPassword = GetEnv("SMTP_PASSWORD")
	SMTPFrom = GetEnv("SMTP_FROM", SMTPUser)

	NewsFeedURLs = GetEnvList("NEWS_FEED_URLS",
		"https://www.antaranews.com/rss/tekno.xml,https://www.kominfo.go.id/rss")

	GeminiAPIKey = GetEnv("GEMINI_API_KEY")
	GeminiModel = GetEnv("GEMINI_MODEL", "gemini-1.5-flash")
	GeminiBaseURL = GetEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}
	if SMTPHost == "" {
		log.Println("⚠️ SMTP_HOST belum diset, email OTP hanya dicatat di log")
	}
	if GeminiAPIKey == "" {
		log.Println("⚠️ GEMINI_API_KEY belum diset, chatbot nonaktif")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[WARN] %s=%q tidak valid, pakai default %d", key, v, def)
		return def
	}
	return n
}

// GetEnvList membaca daftar yang dipisah koma.
func GetEnvList(key, def string) []string {
	raw := GetEnv(key, def)
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Location mengembalikan zona waktu aplikasi (default Asia/Jakarta).
func Location() *time.Location {
	name := AppTimezone
	if name == "" {
		name = "Asia/Jakarta"
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	log.Printf("[WARN] timezone %q tidak ditemukan, pakai WIB (UTC+7)", name)
	return time.FixedZone("WIB", 7*60*60)
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if GetEnv("DB_LOG_QUERIES") == "true" {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
