package textutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestArgsAsText(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		skip      int
		delimiter string
		want      string
		wantOK    bool
	}{
		{"joins remainder", []string{"!cmd", "a", "b", "c"}, 1, " ", "a b c", true},
		{"custom delimiter", []string{"x", "y", "z"}, 0, ",", "x,y,z", true},
		{"nothing left", []string{"!cmd"}, 1, " ", "", false},
		{"nil args", nil, 0, " ", "", false},
		{"empty delimiter", []string{"a", "b"}, 0, "", "", false},
		{"negative skip", []string{"a"}, -1, " ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ArgsAsText(tt.args, tt.skip, tt.delimiter)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTextAfterArgs(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		skip   int
		want   string
		wantOK bool
	}{
		{"remainder keeps inner spacing", "!say  bot1 hello   world", 2, "hello   world", true},
		{"no skip returns whole text", "  hello world", 0, "hello world", true},
		{"fewer fields than skip", "!say bot1", 5, "bot1", true},
		{"trailing whitespace after last field", "!say bot1   ", 3, "bot1", true},
		{"tabs and newlines separate", "a\tb\nc d", 2, "c d", true},
		{"empty", "", 1, "", false},
		{"whitespace only", "   ", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TextAfterArgs(tt.text, tt.skip)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnixTime(t *testing.T) {
	before := uint32(time.Now().Unix())
	got := UnixTime()
	after := uint32(time.Now().Unix())

	assert.GreaterOrEqual(t, got, before)
	assert.LessOrEqual(t, got, after)
}

func TestSingle(t *testing.T) {
	assert.Equal(t, []string{"only"}, Single("only"))
	assert.Len(t, Single(42), 1)
}
