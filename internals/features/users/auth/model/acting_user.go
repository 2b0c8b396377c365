package model

import "strings"

// ActingUser adalah identitas yang sedang login, dipakai untuk field audit.
type ActingUser struct {
	Username    string `json:"user_name"`
	DisplayName string `json:"full_name"`
}

func (u *ActingUser) IsAuthenticated() bool {
	return u != nil && strings.TrimSpace(u.Username) != ""
}

// Name mengembalikan nama tampilan, fallback ke username.
func (u *ActingUser) Name() string {
	if u == nil {
		return ""
	}
	if n := strings.TrimSpace(u.DisplayName); n != "" {
		return n
	}
	return u.Username
}
