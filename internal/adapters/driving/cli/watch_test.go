package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epz-tools/udiscan/internal/adapters/driving/tui"
	"github.com/epz-tools/udiscan/internal/core/domain"
)

func catalogDoc(t *testing.T, gtin, ref string) any {
	t.Helper()

	raw := `[
		{
			"Produkt": {
				"DI_Produktkennzeichnung (UDI)": "primary",
				"ARI_Artikelkennzeichen": "` + gtin + `"
			},
			"Artikel": {
				"Artikelnummer (REF)": "primary",
				"ARI_Artikelkennzeichen": "` + ref + `"
			}
		}
	]`

	var doc any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestWatchCmd_HasCatalogFlag(t *testing.T) {
	flag := watchCmd.Flags().Lookup("catalog")
	require.NotNil(t, flag, "catalog flag should exist")
}

func TestWatchCmd_NoCatalog(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"watch"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrNoCatalog)
}

func TestBuildWatchLookup(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	catalogSource.(*mockCatalogSource).doc = catalogDoc(t, "04006381333931", "REF-100")

	lookup, err := buildWatchLookup(context.Background(), "/data/catalog.json")
	require.NoError(t, err)

	assert.Equal(t, "REF-100", lookup.Reference("04006381333931"))
	assert.Equal(t, "04006381333931", lookup.Identifier("REF-100"))
}

func TestBuildWatchLookup_LoadError(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	catalogSource.(*mockCatalogSource).err = errMockFailure

	_, err := buildWatchLookup(context.Background(), "/data/catalog.json")
	assert.ErrorIs(t, err, errMockFailure)
}

func TestReloadMsg_RewrittenCatalogResolvesNewIndex(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	source := catalogSource.(*mockCatalogSource)
	source.doc = catalogDoc(t, "04006381333931", "REF-100")

	msg := reloadMsg(context.Background(), "/data/catalog.json")
	reloaded, ok := msg.(tui.CatalogReloaded)
	require.True(t, ok, "expected a reload message, got %T", msg)
	assert.Equal(t, "REF-100", reloaded.Lookup.Reference("04006381333931"))

	// The file is rewritten: the same reference now maps to a new GTIN.
	source.doc = catalogDoc(t, "00888123456786", "REF-100")

	msg = reloadMsg(context.Background(), "/data/catalog.json")
	reloaded, ok = msg.(tui.CatalogReloaded)
	require.True(t, ok, "expected a reload message, got %T", msg)
	assert.Equal(t, "00888123456786", reloaded.Lookup.Identifier("REF-100"))
	assert.Empty(t, reloaded.Lookup.Reference("04006381333931"))
}

func TestReloadMsg_LoadFailure(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	catalogSource.(*mockCatalogSource).err = errMockFailure

	msg := reloadMsg(context.Background(), "/data/catalog.json")
	failed, ok := msg.(tui.ReloadFailed)
	require.True(t, ok, "expected a failure message, got %T", msg)
	assert.ErrorIs(t, failed.Err, errMockFailure)
}
