package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExportDate(t *testing.T) {
	cases := []struct {
		input    string
		expected time.Time
		ok       bool
	}{
		{"6/5/2023", time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC), true},
		{"06/05/2023", time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC), true},
		{"6/5/23", time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC), true},
		{"2023-06-05", time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC), true},
		{"  6/5/2023  ", time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"не дата", time.Time{}, false},
	}

	for _, tc := range cases {
		parsed, ok := parseExportDate(tc.input)
		assert.Equal(t, tc.ok, ok, "input=%q", tc.input)
		if tc.ok {
			require.True(t, parsed.Equal(tc.expected), "input=%q: %v != %v", tc.input, parsed, tc.expected)
		}
	}
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "06/05/2023", displayDate(time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "12/31/1999", displayDate(time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)))
}

// Даты в заметках пишутся без ведущих нулей и с двузначным годом - так их
// читает даунстрим на устройствах.
func TestNoteDate(t *testing.T) {
	assert.Equal(t, "6/5/23", noteDate(time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "12/31/99", noteDate(time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)))
}
