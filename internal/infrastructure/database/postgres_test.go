package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDSN(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@h:5432/db", "postgres://u:p@h:5432/db"},
		{"postgresql://u:p@h/db", "postgresql://u:p@h/db"},
		{"postgresql+asyncpg://u:p@h/db", "postgresql://u:p@h/db"},
		{"postgres+asyncpg://u:p@h/db", "postgres://u:p@h/db"},
		{"postgresql+pgx://u:p@h/db", "postgresql://u:p@h/db"},
		{"  postgres://u:p@h/db?sslmode=off  ", "postgres://u:p@h/db?sslmode=off"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeDSN(tc.in), "input %q", tc.in)
	}
}
