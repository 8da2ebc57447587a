package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapses whitespace runs",
			input: "Ksh500.00   sent\tto\n JOHN",
			want:  "Ksh500.00 sent to JOHN",
		},
		{
			name:  "strips thousands separators",
			input: "New M-PESA balance is Ksh1,500.00.",
			want:  "New M-PESA balance is Ksh1500.00.",
		},
		{
			name:  "unifies KES spelling",
			input: "You have received KES500.00",
			want:  "You have received Ksh500.00",
		},
		{
			name:  "unifies lowercase ksh",
			input: "ksh200.00 paid to SHOP",
			want:  "Ksh200.00 paid to SHOP",
		},
		{
			name:  "unifies dotted Ksh",
			input: "Ksh. 300.00 sent",
			want:  "Ksh 300.00 sent",
		},
		{
			name:  "trims surrounding whitespace",
			input: "  hello world  ",
			want:  "hello world",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"QAB1X2Y3 Confirmed. You have received Ksh500.00 from JOHN DOE 0712345678 on 11/9/25 at 2:30 PM. New M-PESA balance is Ksh1,500.00.",
		"ksh1,000,000.00   moved",
		"KES42",
		"",
		"no currency here at all",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalize should be idempotent for %q", input)
	}
}
