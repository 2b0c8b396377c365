package repository

import (
	"context"
	"errors"
	"sort"
	"strings"

	"tvdigital_backend/internals/databases/store"
	"tvdigital_backend/internals/features/users/auth/model"
)

var ErrNotFound = errors.New("data tidak ditemukan")

/* ====================== USER ====================== */

func userPath(username string) string {
	return store.Join(store.RootUsers, username)
}

func FindUserByUsername(ctx context.Context, s store.Store, username string) (*model.UserAccount, error) {
	if store.ValidSegment(username) != nil {
		return nil, ErrNotFound
	}
	node, err := s.Get(ctx, userPath(username))
	if err != nil {
		return nil, err
	}
	if len(node) == 0 {
		return nil, ErrNotFound
	}
	var u model.UserAccount
	if err := store.Decode(node, &u); err != nil {
		return nil, err
	}
	u.Username = username
	return &u, nil
}

// ListUsers membaca seluruh users, urut berdasarkan username.
func ListUsers(ctx context.Context, s store.Store) ([]model.UserAccount, error) {
	root, err := s.Get(ctx, store.RootUsers)
	if err != nil {
		return nil, err
	}
	out := make([]model.UserAccount, 0, len(root))
	for _, username := range root.Keys() {
		child := root.Child(username)
		if len(child) == 0 {
			continue
		}
		var u model.UserAccount
		if err := store.Decode(child, &u); err != nil {
			return nil, err
		}
		u.Username = username
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// FindUserByEmail memindai seluruh users (email tidak diindeks).
func FindUserByEmail(ctx context.Context, s store.Store, email string) (*model.UserAccount, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrNotFound
	}
	users, err := ListUsers(ctx, s)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(strings.TrimSpace(users[i].Email), email) {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

func FindUserByEmailOrUsername(ctx context.Context, s store.Store, identifier string) (*model.UserAccount, error) {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return FindUserByEmail(ctx, s, identifier)
	}
	return FindUserByUsername(ctx, s, identifier)
}

/* ====================== PENDING REGISTRATION ====================== */

func pendingPath(username string) string {
	return store.Join(store.RootPendingUsers, username)
}

func FindPending(ctx context.Context, s store.Store, username string) (*model.PendingRegistration, error) {
	if store.ValidSegment(username) != nil {
		return nil, ErrNotFound
	}
	node, err := s.Get(ctx, pendingPath(username))
	if err != nil {
		return nil, err
	}
	if len(node) == 0 {
		return nil, ErrNotFound
	}
	var p model.PendingRegistration
	if err := store.Decode(node, &p); err != nil {
		return nil, err
	}
	p.Username = username
	return &p, nil
}

func SavePending(ctx context.Context, s store.Store, p *model.PendingRegistration) error {
	return s.Set(ctx, pendingPath(p.Username), p)
}

func UpdatePendingOTP(ctx context.Context, s store.Store, username, otp string, expiresAt int64) error {
	return s.Update(ctx, pendingPath(username), map[string]any{
		"otp":            otp,
		"otp_expires_at": expiresAt,
	})
}

// ConfirmPending membuat akun dan menghapus pending dalam satu tulis atomik.
func ConfirmPending(ctx context.Context, s store.Store, u *model.UserAccount) error {
	return s.Apply(ctx, map[string]any{
		userPath(u.Username):    u,
		pendingPath(u.Username): nil,
	})
}

/* ====================== RESET TICKET ====================== */

func ticketPath(username string) string {
	return store.Join(store.RootOTP, username)
}

func SaveResetTicket(ctx context.Context, s store.Store, username string, t *model.PasswordResetTicket) error {
	return s.Set(ctx, ticketPath(username), t)
}

func FindResetTicket(ctx context.Context, s store.Store, username string) (*model.PasswordResetTicket, error) {
	if store.ValidSegment(username) != nil {
		return nil, ErrNotFound
	}
	node, err := s.Get(ctx, ticketPath(username))
	if err != nil {
		return nil, err
	}
	if len(node) == 0 {
		return nil, ErrNotFound
	}
	var t model.PasswordResetTicket
	if err := store.Decode(node, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ResetPasswordWithTicket mengganti password dan menghapus tiket dalam satu tulis atomik.
func ResetPasswordWithTicket(ctx context.Context, s store.Store, username, hash string) error {
	return s.Apply(ctx, map[string]any{
		store.Join(userPath(username), "password_hash"): hash,
		ticketPath(username):                            nil,
	})
}
