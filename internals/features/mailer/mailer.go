// Package mailer mengirim email OTP lewat SMTP, atau hanya mencatatnya ke log.
package mailer

import (
	"context"
	"fmt"
	"log"
	"strings"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender hanya mencatat email ke log. Dipakai kalau SMTP_HOST kosong.
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	log.Printf("[INFO] email (tidak dikirim) ke %s: %s\n%s", msg.To, msg.Subject, msg.Body)
	return nil
}

func OTPRegistrationMessage(to, name, otp string, ttlMinutes int) Message {
	return Message{
		To:      to,
		Subject: "Kode Verifikasi Pendaftaran TV Digital",
		Body: fmt.Sprintf("Halo %s,\n\nKode OTP pendaftaran kamu: %s\nKode berlaku %d menit.\n\nAbaikan email ini kalau kamu tidak mendaftar.",
			strings.TrimSpace(name), otp, ttlMinutes),
	}
}

func OTPResetMessage(to, name, otp string, ttlMinutes int) Message {
	return Message{
		To:      to,
		Subject: "Kode Reset Password TV Digital",
		Body: fmt.Sprintf("Halo %s,\n\nKode OTP untuk reset password: %s\nKode berlaku %d menit.\n\nAbaikan email ini kalau kamu tidak meminta reset password.",
			strings.TrimSpace(name), otp, ttlMinutes),
	}
}
