package timetext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHour(t *testing.T) {
	tests := []struct {
		token string
		want  int
		ok    bool
	}{
		{"seven", 7, true},
		{"Twelve", 12, true},
		{" eleven ", 11, true},
		{"5", 5, true},
		{"15", 15, true},
		{"noon", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseHour(tt.token)
		assert.Equal(t, tt.ok, ok, "token %q", tt.token)
		if tt.ok {
			assert.Equal(t, tt.want, got, "token %q", tt.token)
		}
	}
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		token string
		want  int
		ok    bool
	}{
		{"ten", 10, true},
		{"fifteen", 15, true},
		{"twenty-five", 25, true},
		{"Forty-Five", 45, true},
		{"30", 30, true},
		{"gibberish", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseMinutes(tt.token)
		assert.Equal(t, tt.ok, ok, "token %q", tt.token)
		if tt.ok {
			assert.Equal(t, tt.want, got, "token %q", tt.token)
		}
	}
}
