package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"tvdigital_backend/internals/databases/store"
)

type blacklistEntry struct {
	ExpiresAt int64 `json:"expires_at"`
}

func hmacHex(msg, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}

func blacklistPath(rawAccessToken, jwtSecret string) string {
	return store.Join(store.RootTokenBlacklist, hmacHex(rawAccessToken, jwtSecret))
}

// Add menyimpan HMAC(access_token), bukan token mentahnya.
func Add(ctx context.Context, s store.Store, rawAccessToken, jwtSecret string, expiresAt time.Time) error {
	if s == nil || strings.TrimSpace(rawAccessToken) == "" || strings.TrimSpace(jwtSecret) == "" {
		return nil
	}
	return s.Set(ctx, blacklistPath(rawAccessToken, jwtSecret), blacklistEntry{ExpiresAt: expiresAt.Unix()})
}

// IsBlacklisted: entry ada dan belum expired? Entry yang sudah lewat langsung dibuang.
func IsBlacklisted(ctx context.Context, s store.Store, rawAccessToken, jwtSecret string, now time.Time) (bool, error) {
	if s == nil || strings.TrimSpace(rawAccessToken) == "" || strings.TrimSpace(jwtSecret) == "" {
		return false, nil
	}
	p := blacklistPath(rawAccessToken, jwtSecret)
	node, err := s.Get(ctx, p)
	if err != nil {
		return false, err
	}
	if len(node) == 0 {
		return false, nil
	}
	var e blacklistEntry
	if err := store.Decode(node, &e); err != nil {
		return false, err
	}
	if e.ExpiresAt > now.Unix() {
		return true, nil
	}
	if err := s.Delete(ctx, p); err != nil {
		return false, err
	}
	return false, nil
}
