package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare json untouched",
			in:   `{"JobTitle": "Backend Engineer"}`,
			want: `{"JobTitle": "Backend Engineer"}`,
		},
		{
			name: "json fence",
			in:   "```json\n{\"JobTitle\": \"Backend Engineer\"}\n```",
			want: `{"JobTitle": "Backend Engineer"}`,
		},
		{
			name: "plain fence",
			in:   "```\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "prose around object",
			in:   "Here is the result:\n{\"a\": 1}\nHope that helps!",
			want: `{"a": 1}`,
		},
		{
			name: "surrounding whitespace",
			in:   "  \n {\"a\": 1} \n ",
			want: `{"a": 1}`,
		},
		{
			name: "no object at all",
			in:   "sorry, I cannot do that",
			want: "sorry, I cannot do that",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONResponse(tt.in))
		})
	}
}
