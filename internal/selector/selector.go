// Package selector renders the catalog as a paginated grid of buttons, in
// either play or delete mode. The page state rides in the component
// CustomIDs, so one handler per command serves every button, with no
// per-item callbacks.
package selector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"sounddeck/internal/catalog"
)

const (
	// PageSize is the number of sound buttons per page: four rows of five,
	// leaving the fifth component row free for navigation.
	PageSize = 20

	// MaxLabelLen caps button label length. It happens to equal PageSize but
	// is a separate limit; do not fold the two together.
	MaxLabelLen = 20

	buttonsPerRow = 5
)

// Mode decides what selecting an item does.
type Mode string

const (
	ModePlay   Mode = "play"
	ModeDelete Mode = "delete"
)

// State is one rendered page over a snapshot of the catalog. It is rebuilt
// from a fresh catalog listing on every page turn, so a shrinking catalog
// clamps the page rather than leaving it dangling.
type State struct {
	Mode  Mode
	Page  int
	Items []catalog.Sound
}

func New(mode Mode, items []catalog.Sound, page int) *State {
	s := &State{Mode: mode, Items: items}
	s.Page = clamp(page, 0, s.TotalPages())
	return s
}

// TotalPages is the 0-indexed last page number.
func (s *State) TotalPages() int {
	if len(s.Items) == 0 {
		return 0
	}
	return (len(s.Items) - 1) / PageSize
}

// NextPage advances one page, clamped at the last page. Never wraps.
func (s *State) NextPage() {
	s.Page = clamp(s.Page+1, 0, s.TotalPages())
}

// PrevPage goes back one page, clamped at the first page. Never wraps.
func (s *State) PrevPage() {
	s.Page = clamp(s.Page-1, 0, s.TotalPages())
}

// PageItems slices out the sounds shown on the current page.
func (s *State) PageItems() []catalog.Sound {
	start := s.Page * PageSize
	if start >= len(s.Items) {
		return nil
	}
	end := start + PageSize
	if end > len(s.Items) {
		end = len(s.Items)
	}
	return s.Items[start:end]
}

// Components renders the button grid. command prefixes every CustomID so the
// bot can route the interaction back to the owning command.
func (s *State) Components(command string) []discordgo.MessageComponent {
	style := discordgo.PrimaryButton
	if s.Mode == ModeDelete {
		style = discordgo.DangerButton
	}

	var rows []discordgo.MessageComponent
	var row []discordgo.MessageComponent
	for _, sound := range s.PageItems() {
		row = append(row, discordgo.Button{
			Label:    truncateLabel(sound.Name),
			Style:    style,
			CustomID: CustomID(command, "select", SelectArg(s.Page, sound.Name)),
		})
		if len(row) == buttonsPerRow {
			rows = append(rows, discordgo.ActionsRow{Components: row})
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: row})
	}

	if total := s.TotalPages(); total > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "◀",
				Style:    discordgo.SecondaryButton,
				CustomID: CustomID(command, "prev", strconv.Itoa(s.Page)),
				Disabled: s.Page == 0,
			},
			discordgo.Button{
				Label:    fmt.Sprintf("%d/%d", s.Page+1, total+1),
				Style:    discordgo.SecondaryButton,
				CustomID: CustomID(command, "page", ""),
				Disabled: true,
			},
			discordgo.Button{
				Label:    "▶",
				Style:    discordgo.SecondaryButton,
				CustomID: CustomID(command, "next", strconv.Itoa(s.Page)),
				Disabled: s.Page == total,
			},
		}})
	}

	return rows
}

// CustomID builds "<command>:<action>" or "<command>:<action>:<arg>".
func CustomID(command, action, arg string) string {
	if arg == "" {
		return command + ":" + action
	}
	return command + ":" + action + ":" + arg
}

// ParseCustomID splits a component CustomID produced by CustomID. The arg
// may itself contain colons (sound names are arbitrary filenames).
func ParseCustomID(id string) (command, action, arg string, err error) {
	parts := strings.SplitN(id, ":", 3)
	if len(parts) < 2 {
		return "", "", "", fmt.Errorf("invalid component ID format: %q", id)
	}
	command, action = parts[0], parts[1]
	if len(parts) == 3 {
		arg = parts[2]
	}
	return command, action, arg, nil
}

// SelectArg packs the page a select button was rendered on together with the
// item name, so the handler can re-render the same page afterwards.
func SelectArg(page int, name string) string {
	return strconv.Itoa(page) + ":" + name
}

// ParseSelectArg is the inverse of SelectArg. The name keeps any colons it
// contains; only the leading page number is split off.
func ParseSelectArg(arg string) (page int, name string, err error) {
	parts := strings.SplitN(arg, ":", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("invalid select argument: %q", arg)
	}
	page, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", fmt.Errorf("invalid select page: %q", parts[0])
	}
	return page, parts[1], nil
}

// truncateLabel cuts on runes, not bytes, so multibyte names stay valid
// UTF-8 on the button.
func truncateLabel(name string) string {
	runes := []rune(name)
	if len(runes) > MaxLabelLen {
		return string(runes[:MaxLabelLen])
	}
	return name
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
