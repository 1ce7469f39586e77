package local

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/firedoors/firedoors-backend/pkg/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(config.FilesConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	return store
}

func TestSaveAndOpen(t *testing.T) {
	store := newTestStore(t)

	handle, err := store.Save(strings.NewReader("workbook bytes"), "бланк заказа.xlsx")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(handle, ".xlsx"))

	f, err := store.Open(handle)
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, "workbook bytes", string(data))
}

func TestPathRejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Path("../etc/passwd")
	require.Error(t, err)

	_, err = store.Path("")
	require.Error(t, err)
}

func TestRemoveMissingIsNoop(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Remove("nope.xlsx"))
}
