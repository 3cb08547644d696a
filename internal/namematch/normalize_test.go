package namematch

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
			name:  "title and suffix stripped",
			input: "Mr. John Doe Jr.",
			want:  "john doe",
		},
		{
			name:  "uppercase lowered",
			input: "JANE SMITH",
			want:  "jane smith",
		},
		{
			name:  "roman numeral suffix",
			input: "Dr. Robert Johnson III",
			want:  "robert johnson",
		},
		{
			name:  "whitespace collapsed",
			input: "  Mary   Wilson  ",
			want:  "mary wilson",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  "",
		},
		{
			name:  "title only",
			input: "Mr.",
			want:  "",
		},
		{
			name:  "plain name untouched",
			input: "alice walker",
			want:  "alice walker",
		},
		{
			name:  "title without period kept",
			input: "Dr Robert Johnson",
			want:  "dr robert johnson",
		},
		{
			name:  "only one leading title stripped",
			input: "Mr. Dr. John Doe",
			want:  "dr. john doe",
		},
		{
			name:  "suffix in middle kept",
			input: "John Jr. Doe",
			want:  "john jr. doe",
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
		"Mr. John Doe Jr.",
		"JANE   SMITH",
		"Dr. Robert Johnson III",
		"  Mary   Wilson  ",
		"",
		"Mrs. Amelia Reyes Sr.",
		"prof. k. subramaniam iv",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}
