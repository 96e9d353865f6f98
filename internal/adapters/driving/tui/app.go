package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/epz-tools/udiscan/internal/core/domain"
	"github.com/epz-tools/udiscan/internal/core/ports/driving"
)

// maxResultLines bounds the scrollback kept on screen.
const maxResultLines = 20

// CatalogReloaded carries a lookup service built over the rewritten
// catalog file. The running app swaps it in atomically: every
// resolution after this message sees the new index, never a partial
// one.
type CatalogReloaded struct {
	Lookup driving.LookupService
}

// ReloadFailed reports that the changed catalog file could not be
// loaded. The app keeps resolving against the previous index.
type ReloadFailed struct {
	Err error
}

// App is the watch model. It implements tea.Model for use with
// Bubbletea.
type App struct {
	input  textinput.Model
	styles *Styles

	decode driving.DecodeService
	lookup driving.LookupService
	path   string

	lines   []string
	reloads int
	err     error

	width    int
	quitting bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the watch model over an initial catalog index.
func NewApp(decode driving.DecodeService, lookup driving.LookupService, path string) *App {
	ti := textinput.New()
	ti.Placeholder = "barcode or reference"
	ti.Focus()
	ti.CharLimit = 128
	ti.Width = 48

	return &App{
		input:  ti,
		styles: DefaultStyles(),
		decode: decode,
		lookup: lookup,
		path:   path,
		width:  80,
	}
}

// Lookup returns the lookup service currently answering resolutions.
func (a *App) Lookup() driving.LookupService {
	return a.lookup
}

// Reloads returns how many catalog reloads the app has applied.
func (a *App) Reloads() int {
	return a.reloads
}

// Lines returns the resolved output lines, oldest first.
func (a *App) Lines() []string {
	return a.lines
}

// Init initialises the app.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case CatalogReloaded:
		a.lookup = msg.Lookup
		a.reloads++
		a.err = nil
		return a, nil

	case ReloadFailed:
		a.err = msg.Err
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			a.quitting = true
			return a, tea.Quit
		case tea.KeyEnter:
			term := strings.TrimSpace(a.input.Value())
			if term != "" {
				a.appendLine(a.resolveTerm(term))
			}
			a.input.SetValue("")
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View renders the app.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		a.styles.Title.Render("udiscan watch "),
		a.styles.Muted.Render(a.path),
	)

	var results string
	if len(a.lines) > 0 {
		results = a.styles.Result.Render(strings.Join(a.lines, "\n"))
	}

	status := a.styles.Muted.Render(fmt.Sprintf("reloads: %d  (esc to quit)", a.reloads))
	if a.err != nil {
		status = a.styles.Error.Render(fmt.Sprintf("reload failed: %v", a.err))
	}

	sections := []string{header, a.input.View()}
	if results != "" {
		sections = append(sections, results)
	}
	sections = append(sections, status)

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (a *App) appendLine(line string) {
	a.lines = append(a.lines, line)
	if len(a.lines) > maxResultLines {
		a.lines = a.lines[len(a.lines)-maxResultLines:]
	}
}

// resolveTerm treats barcode-length input as a barcode and everything
// else as a catalog term, tried in both directions.
func (a *App) resolveTerm(term string) string {
	if len(term) >= domain.MinBarcodeLength {
		if decoded, err := a.decode.Decode(term); err == nil {
			return a.formatDecoded(term, decoded)
		}
	}

	if ref := a.lookup.Reference(term); ref != "" {
		return fmt.Sprintf("%s -> %s", term, ref)
	}
	if gtin := a.lookup.Identifier(term); gtin != "" {
		return fmt.Sprintf("%s -> %s", term, gtin)
	}
	return fmt.Sprintf("%s -> not found", term)
}

func (a *App) formatDecoded(term string, decoded domain.DecodedBarcode) string {
	parts := []string{"GTIN " + decoded.GTIN}
	if decoded.Expiry != "" {
		parts = append(parts, "expiry "+decoded.Expiry)
	}
	if decoded.Serial != "" {
		parts = append(parts, "serial "+decoded.Serial)
	}
	if !decoded.Valid {
		parts = append(parts, "INVALID")
	}
	if ref := a.lookup.Reference(decoded.GTIN); ref != "" {
		parts = append(parts, "ref "+ref)
	}
	return fmt.Sprintf("%s -> %s", term, strings.Join(parts, "  "))
}
