package service

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"tvdigital_backend/internals/features/users/auth/model"
)

// CSVHeader: password_hash tidak pernah ikut diekspor.
var CSVHeader = []string{"username", "name", "email", "points"}

func WriteCSV(w io.Writer, accounts []model.UserAccount) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("tulis header csv: %w", err)
	}
	for _, u := range accounts {
		row := []string{
			cell(u.Username),
			cell(u.Name),
			cell(u.Email),
			strconv.Itoa(u.Points),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("tulis baris csv %s: %w", u.Username, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// cell menetralkan nilai yang akan dibaca spreadsheet sebagai formula.
func cell(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}

// WriteSQL menulis satu INSERT per akun, siap di-restore ke tabel users.
func WriteSQL(w io.Writer, accounts []model.UserAccount) error {
	bw := bufio.NewWriter(w)

	cols := make([]string, len(CSVHeader))
	for i, c := range CSVHeader {
		cols[i] = pq.QuoteIdentifier(c)
	}
	prefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES ", pq.QuoteIdentifier("users"), strings.Join(cols, ", "))

	for _, u := range accounts {
		_, err := fmt.Fprintf(bw, "%s(%s, %s, %s, %d);\n",
			prefix,
			pq.QuoteLiteral(u.Username),
			pq.QuoteLiteral(u.Name),
			pq.QuoteLiteral(u.Email),
			u.Points,
		)
		if err != nil {
			return fmt.Errorf("tulis sql %s: %w", u.Username, err)
		}
	}
	return bw.Flush()
}
