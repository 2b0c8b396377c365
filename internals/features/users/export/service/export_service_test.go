package service

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tvdigital_backend/internals/features/users/auth/model"
)

var accounts = []model.UserAccount{
	{Username: "ani", Name: "Ani, S.Kom", Email: "ani@example.com", PasswordHash: "$2a$10$rahasia", Points: 12},
	{Username: "budi", Name: "Budi O'Neil", Email: "budi@example.com", PasswordHash: "$2a$10$rahasia"},
	{Username: "cici", Name: "=HYPERLINK(\"x\")", Email: "cici@example.com"},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, accounts))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	want := [][]string{
		{"username", "name", "email", "points"},
		{"ani", "Ani, S.Kom", "ani@example.com", "12"},
		{"budi", "Budi O'Neil", "budi@example.com", "0"},
		{"cici", "'=HYPERLINK(\"x\")", "cici@example.com", "0"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("csv mismatch (-want +got):\n%s", diff)
	}
	assert.NotContains(t, buf.String(), "$2a$")
}

func TestWriteCSV_EmptyHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "username,name,email,points\n", buf.String())
}

func TestWriteSQL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSQL(&buf, accounts[:2]))

	want := `INSERT INTO "users" ("username", "name", "email", "points") VALUES ('ani', 'Ani, S.Kom', 'ani@example.com', 12);
INSERT INTO "users" ("username", "name", "email", "points") VALUES ('budi', 'Budi O''Neil', 'budi@example.com', 0);
`
	assert.Equal(t, want, buf.String())
	assert.NotContains(t, buf.String(), "password_hash")
}
