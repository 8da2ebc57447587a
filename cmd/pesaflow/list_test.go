package main

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"shorter than limit", "JOHN DOE", 10, "JOHN DOE"},
		{"exactly at limit", "JOHN DOE", 8, "JOHN DOE"},
		{"over limit", "SAFARICOM DATA BUNDLES", 10, "SAFARICOM…"},
		{"multibyte name over limit", "CAFÉ NJðGÙNA LTD", 10, "CAFÉ NJðG…"},
		{"limit of one", "JOHN", 1, "J"},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
			assert.LessOrEqual(t, len([]rune(got)), tt.n)
		})
	}
}
