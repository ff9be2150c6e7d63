package selector

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sounddeck/internal/catalog"
)

func sounds(n int) []catalog.Sound {
	out := make([]catalog.Sound, n)
	for i := range out {
		out[i] = catalog.Sound{Name: fmt.Sprintf("sound-%02d", i), Format: catalog.FormatMP3}
	}
	return out
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		n, want int
	}{
		{0, 0},
		{1, 0},
		{20, 0},
		{21, 1},
		{40, 1},
		{41, 2},
	}
	for _, tc := range cases {
		s := New(ModePlay, sounds(tc.n), 0)
		assert.Equal(t, tc.want, s.TotalPages(), "n=%d", tc.n)
	}
}

func TestPageTurnsClampAtBoundaries(t *testing.T) {
	s := New(ModePlay, sounds(45), 0)

	s.PrevPage()
	assert.Equal(t, 0, s.Page, "prev at first page is a no-op")

	s.NextPage()
	s.NextPage()
	assert.Equal(t, 2, s.Page)

	s.NextPage()
	assert.Equal(t, 2, s.Page, "next at last page is a no-op")
}

func TestNewClampsPage(t *testing.T) {
	assert.Equal(t, 1, New(ModePlay, sounds(25), 7).Page)
	assert.Equal(t, 0, New(ModePlay, sounds(25), -3).Page)
	assert.Equal(t, 0, New(ModeDelete, nil, 5).Page)
}

func TestPageItems(t *testing.T) {
	s := New(ModePlay, sounds(45), 2)
	items := s.PageItems()
	require.Len(t, items, 5)
	assert.Equal(t, "sound-40", items[0].Name)
}

func TestComponentsSinglePageHasNoNavRow(t *testing.T) {
	s := New(ModePlay, sounds(5), 0)
	rows := s.Components("soundboard")
	require.Len(t, rows, 1)

	row := rows[0].(discordgo.ActionsRow)
	assert.Len(t, row.Components, 5)
}

func TestComponentsNavRowDisabledAtBoundaries(t *testing.T) {
	s := New(ModePlay, sounds(45), 0)
	rows := s.Components("soundboard")
	require.Len(t, rows, 5) // 4 rows of 5 sounds + nav

	nav := rows[4].(discordgo.ActionsRow)
	require.Len(t, nav.Components, 3)

	prev := nav.Components[0].(discordgo.Button)
	page := nav.Components[1].(discordgo.Button)
	next := nav.Components[2].(discordgo.Button)

	assert.True(t, prev.Disabled, "prev disabled on first page")
	assert.True(t, page.Disabled, "indicator is inert")
	assert.Equal(t, "1/3", page.Label)
	assert.False(t, next.Disabled)

	s.Page = s.TotalPages()
	nav = s.Components("soundboard")[1].(discordgo.ActionsRow)
	assert.False(t, nav.Components[0].(discordgo.Button).Disabled)
	assert.True(t, nav.Components[2].(discordgo.Button).Disabled, "next disabled on last page")
}

func TestComponentsTruncatesLongLabels(t *testing.T) {
	long := catalog.Sound{Name: "a-very-long-sound-name-beyond-the-cap"}
	s := New(ModePlay, []catalog.Sound{long}, 0)

	row := s.Components("soundboard")[0].(discordgo.ActionsRow)
	button := row.Components[0].(discordgo.Button)
	assert.Len(t, button.Label, MaxLabelLen)
	// The CustomID keeps the full name so resolution still works.
	assert.Equal(t, "soundboard:select:0:"+long.Name, button.CustomID)
}

func TestTruncateLabelKeepsMultibyteRunesIntact(t *testing.T) {
	name := strings.Repeat("ü", MaxLabelLen+5)
	label := truncateLabel(name)

	assert.True(t, utf8.ValidString(label))
	assert.Equal(t, MaxLabelLen, utf8.RuneCountInString(label))
	assert.Equal(t, strings.Repeat("ü", MaxLabelLen), label)
}

func TestCustomIDRoundTrip(t *testing.T) {
	id := CustomID("delete", "select", SelectArg(3, "weird:name:with:colons"))
	command, action, arg, err := ParseCustomID(id)
	require.NoError(t, err)
	assert.Equal(t, "delete", command)
	assert.Equal(t, "select", action)

	page, name, err := ParseSelectArg(arg)
	require.NoError(t, err)
	assert.Equal(t, 3, page)
	assert.Equal(t, "weird:name:with:colons", name)
}

func TestParseCustomIDRejectsGarbage(t *testing.T) {
	_, _, _, err := ParseCustomID("justonepart")
	assert.Error(t, err)

	_, _, err = ParseSelectArg("no-page-prefix")
	assert.Error(t, err)
}
