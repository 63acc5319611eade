package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	m := Parse("@3x=3.0x\n  @2x = 2.0x  \nnot a mapping\n\n@1.5x=1.5x=extra")

	require.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"@3x", "@2x", "@1.5x"}, m.Suffixes())

	dir, ok := m.Dir("@2x")
	assert.True(t, ok)
	assert.Equal(t, "2.0x", dir)

	dir, ok = m.Dir("@1.5x")
	assert.True(t, ok)
	assert.Equal(t, "1.5x=extra", dir, "split happens at the first '='")
}

func TestParse_DuplicateOverwritesKeepsPosition(t *testing.T) {
	m := Parse("@2x=old\n@3x=3.0x\n@2x=new")

	assert.Equal(t, []string{"@2x", "@3x"}, m.Suffixes())
	dir, _ := m.Dir("@2x")
	assert.Equal(t, "new", dir)
}

func TestParse_Empty(t *testing.T) {
	m := Parse("")
	assert.Equal(t, 0, m.Len())
	_, _, ok := m.MatchSuffix("icon@2x")
	assert.False(t, ok)
	assert.Equal(t, "icon@2x", m.Strip("icon@2x"))
}

func TestMatchSuffix_LongestWins(t *testing.T) {
	m := Parse("@2x=2.0x\n@22x=22.0x")

	suffix, dir, ok := m.MatchSuffix("banner@22x")
	require.True(t, ok)
	assert.Equal(t, "@22x", suffix)
	assert.Equal(t, "22.0x", dir)
	assert.Equal(t, "banner", m.Strip("banner@22x"))

	suffix, _, ok = m.MatchSuffix("banner@2x")
	require.True(t, ok)
	assert.Equal(t, "@2x", suffix)
}

func TestMatchSuffix_DuplicateSuffixUsesLastValue(t *testing.T) {
	// Two distinct suffixes of equal length cannot both end the same
	// basename, so the only possible tie is a repeated key.
	m := Parse("ab=first\nab=again")
	suffix, dir, ok := m.MatchSuffix("xab")
	require.True(t, ok)
	assert.Equal(t, "ab", suffix)
	assert.Equal(t, "again", dir)
}

func TestMatchSuffix_Deterministic(t *testing.T) {
	text := "@1x=1.0x\n@3x=3.0x\n@2x=2.0x\n@1.5x=1.5x"
	for i := 0; i < 20; i++ {
		m := Parse(text)
		s, _, ok := m.MatchSuffix("icon@3x")
		require.True(t, ok)
		assert.Equal(t, "@3x", s)
		assert.Equal(t, []string{"@1.5x", "@1x", "@3x", "@2x"}, m.byLen)
	}
}

func TestString(t *testing.T) {
	m := Parse("@3x = 3.0x\n@2x=2.0x")
	assert.Equal(t, "@3x=3.0x\n@2x=2.0x", m.String())
}

func TestLint(t *testing.T) {
	warnings := Lint("@3x=3.0x\nbroken\n=nodir\n@2x=\n\n")
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "line 2")
	assert.Contains(t, warnings[1], "empty suffix")
	assert.Contains(t, warnings[2], "empty directory")

	assert.Empty(t, Lint("@3x=3.0x\n@2x=2.0x"))
}
