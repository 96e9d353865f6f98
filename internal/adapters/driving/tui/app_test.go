package tui

import (
	"encoding/json"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epz-tools/udiscan/internal/core/domain"
	"github.com/epz-tools/udiscan/internal/core/ports/driving"
	"github.com/epz-tools/udiscan/internal/core/services"
)

// catalogLookup builds a real searcher over a one-record catalog
// mapping the given GTIN to the given reference.
func catalogLookup(t *testing.T, gtin, ref string) driving.LookupService {
	t.Helper()

	raw := fmt.Sprintf(`[
		{
			"Produkt": {
				"DI_Produktkennzeichnung (UDI)": "primary",
				"ARI_Artikelkennzeichen": %q
			},
			"Artikel": {
				"Artikelnummer (REF)": "primary",
				"ARI_Artikelkennzeichen": %q
			}
		}
	]`, gtin, ref)

	var doc any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return services.NewSearcher(services.BuildIndex(doc))
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	lookup := catalogLookup(t, "04006381333931", "REF-100")
	return NewApp(services.NewDecoder(), lookup, "/data/catalog.json")
}

// enter submits the current input value.
func enter(a *App, term string) *App {
	a.input.SetValue(term)
	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return model.(*App)
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)

	require.NotNil(t, app)
	assert.Empty(t, app.Lines())
	assert.Zero(t, app.Reloads())
	assert.True(t, app.input.Focused())
}

func TestApp_ResolvesReference(t *testing.T) {
	app := newTestApp(t)

	app = enter(app, "REF-100")

	require.Len(t, app.Lines(), 1)
	assert.Contains(t, app.Lines()[0], "04006381333931")
	assert.Empty(t, app.input.Value())
}

func TestApp_ResolvesBarcode(t *testing.T) {
	app := newTestApp(t)

	app = enter(app, "0104006381333931")

	require.Len(t, app.Lines(), 1)
	assert.Contains(t, app.Lines()[0], "GTIN 04006381333931")
	assert.Contains(t, app.Lines()[0], "ref REF-100")
}

func TestApp_UnknownTerm(t *testing.T) {
	app := newTestApp(t)

	app = enter(app, "nothing-here")

	require.Len(t, app.Lines(), 1)
	assert.Contains(t, app.Lines()[0], "not found")
}

func TestApp_EmptyInputIgnored(t *testing.T) {
	app := newTestApp(t)

	app = enter(app, "   ")

	assert.Empty(t, app.Lines())
}

func TestApp_CatalogReloadSwapsIndex(t *testing.T) {
	app := newTestApp(t)

	app = enter(app, "REF-100")
	require.Len(t, app.Lines(), 1)
	assert.Contains(t, app.Lines()[0], "04006381333931")

	// The rewritten catalog maps the same reference to a new GTIN.
	fresh := catalogLookup(t, "00888123456786", "REF-100")
	model, _ := app.Update(CatalogReloaded{Lookup: fresh})
	app = model.(*App)

	assert.Equal(t, 1, app.Reloads())
	assert.Same(t, fresh, app.Lookup())

	app = enter(app, "REF-100")
	require.Len(t, app.Lines(), 2)
	assert.Contains(t, app.Lines()[1], "00888123456786")
}

func TestApp_ReloadFailureKeepsIndex(t *testing.T) {
	app := newTestApp(t)
	previous := app.Lookup()

	model, _ := app.Update(ReloadFailed{Err: assert.AnError})
	app = model.(*App)

	assert.Same(t, previous, app.Lookup())
	assert.Zero(t, app.Reloads())

	app = enter(app, "REF-100")
	require.Len(t, app.Lines(), 1)
	assert.Contains(t, app.Lines()[0], "04006381333931")
	assert.Contains(t, app.View(), "reload failed")
}

func TestApp_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		app := newTestApp(t)

		model, cmd := app.Update(tea.KeyMsg{Type: key})
		app = model.(*App)

		require.NotNil(t, cmd, "quit command expected for %v", key)
		assert.Empty(t, app.View())
	}
}

func TestApp_ScrollbackBounded(t *testing.T) {
	app := newTestApp(t)

	for i := 0; i < maxResultLines+5; i++ {
		app = enter(app, fmt.Sprintf("term-%d", i))
	}

	assert.Len(t, app.Lines(), maxResultLines)
	assert.Contains(t, app.Lines()[0], "term-5")
}

func TestApp_ViewShowsPathAndStatus(t *testing.T) {
	app := newTestApp(t)

	view := app.View()

	assert.Contains(t, view, "/data/catalog.json")
	assert.Contains(t, view, "reloads: 0")
}

func TestApp_InvalidBarcodeMarked(t *testing.T) {
	lookup := catalogLookup(t, "04006381333931", "REF-100")
	app := NewApp(services.NewDecoder(), lookup, "/data/catalog.json")

	app = enter(app, "0112345678901230")

	require.Len(t, app.Lines(), 1)
	assert.Contains(t, app.Lines()[0], "INVALID")
}

var _ driving.DecodeService = (*staticDecoder)(nil)

// staticDecoder returns a fixed result, for tests that do not care
// about slicing.
type staticDecoder struct {
	result domain.DecodedBarcode
}

func (d *staticDecoder) Decode(string) (domain.DecodedBarcode, error) {
	return d.result, nil
}

func TestApp_DecodedFieldsRendered(t *testing.T) {
	lookup := catalogLookup(t, "04006381333931", "REF-100")
	decode := &staticDecoder{result: domain.DecodedBarcode{
		GTIN:   "04006381333931",
		Expiry: "2023-02-28",
		Serial: "SER123",
		Valid:  true,
	}}
	app := NewApp(decode, lookup, "/data/catalog.json")

	app = enter(app, "0104006381333931")

	require.Len(t, app.Lines(), 1)
	assert.Contains(t, app.Lines()[0], "expiry 2023-02-28")
	assert.Contains(t, app.Lines()[0], "serial SER123")
	assert.NotContains(t, app.Lines()[0], "INVALID")
}
