package fallback

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin(t *testing.T) {
	assert.Equal(t, "a\nb", Join([]string{"a", "b"}))
	assert.Equal(t, "", Join(nil))
}

func TestCollector(t *testing.T) {
	c := &Collector{}
	c.Present([]string{"val a = 1", "val b = 2"})
	c.Present(nil)
	c.Present([]string{"val c = 3"})

	assert.Equal(t, []string{"val a = 1\nval b = 2", "val c = 3"}, c.Blocks())
}

func TestTerminal_Plain(t *testing.T) {
	var out bytes.Buffer
	term := &Terminal{Out: &out, Plain: true}
	term.Present([]string{"val a = 1", "val b = 2"})

	assert.Equal(t, "val a = 1\nval b = 2\n", out.String())
}

func TestTerminal_Styled(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(&out, false)
	term.Present([]string{"val icon = \"out/icon.png\""})

	assert.Contains(t, out.String(), "Generated code")
	assert.Contains(t, out.String(), "val icon = \"out/icon.png\"")
}

func TestTerminal_Clipboard(t *testing.T) {
	var out bytes.Buffer
	var copied string
	term := &Terminal{Out: &out, Clipboard: true, Plain: true}
	term.writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	term.Present([]string{"a", "b"})
	assert.Equal(t, "a\nb", copied)

	out.Reset()
	term.writeClipboard = func(string) error { return errors.New("no display") }
	term.Present([]string{"c"})
	assert.Contains(t, out.String(), "c\n")
	assert.Contains(t, out.String(), "clipboard unavailable: no display")
}

func TestTerminal_EmptyIsSilent(t *testing.T) {
	var out bytes.Buffer
	NewTerminal(&out, true).Present(nil)
	assert.Empty(t, out.String())
}
