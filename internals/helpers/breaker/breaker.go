// Package breaker membungkus sony/gobreaker untuk panggilan keluar
// (SMTP, RSS, Gemini). Satu breaker per layanan.
package breaker

import (
	"context"
	"errors"
	"log"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

type Config struct {
	Name             string
	FailureThreshold uint32
	Timeout          time.Duration // lama state open sebelum half-open
	Interval         time.Duration // reset counter di state closed

	// IsSuccessful opsional: error yang bukan salah upstream (mis. 4xx) tidak
	// dihitung sebagai kegagalan.
	IsSuccessful func(err error) bool
}

func (c Config) withDefaults() Config {
	if c.FailureThreshold == 0 {
		c.FailureThreshold = 5
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Interval <= 0 {
		c.Interval = time.Minute
	}
	return c
}

func New[T any](cfg Config) *gobreaker.CircuitBreaker[T] {
	cfg = cfg.withDefaults()
	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[WARN] circuit %s: %s -> %s", name, from, to)
		},
		IsSuccessful: cfg.IsSuccessful,
	})
}

// IsOpen true kalau error berasal dari breaker yang sedang menolak request.
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// Detach melepas panggilan keluar dari deadline request (yang dipakai untuk
// round-trip store) dan memberi batas waktu sendiri.
func Detach(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

// Canceled true kalau panggilan dibatalkan dari sisi kita, bukan gagal di upstream.
func Canceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
