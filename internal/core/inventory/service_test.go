package inventory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-matcher/internal/pkg/common"
)

func newLoadedService(t *testing.T, data []byte) (*Service, *MemorySlot) {
	t.Helper()
	slot := NewMemorySlot(data)
	svc := NewService(slot)
	require.NoError(t, svc.Load(context.Background()))
	return svc, slot
}

func TestLoadEmptySlot(t *testing.T) {
	svc, _ := newLoadedService(t, nil)
	assert.Empty(t, svc.List())
}

func TestLoadMalformedBlob(t *testing.T) {
	svc, _ := newLoadedService(t, []byte(`{not json`))
	assert.Empty(t, svc.List())
	assert.Empty(t, svc.IngredientNames())
}

func TestLoadExisting(t *testing.T) {
	svc, _ := newLoadedService(t, []byte(`[
		{"id":"item-1","item":"Garlic","quantity":"2 cloves"},
		{"id":"item-1","item":"Onion"},
		{"id":"item-3","item":"  "}
	]`))

	items := svc.List()
	require.Len(t, items, 2)
	assert.Equal(t, "item-1", items[0].ID)
	assert.NotEqual(t, "item-1", items[1].ID)
	assert.Equal(t, []string{"Garlic", "Onion"}, svc.IngredientNames())
}

func TestAddRemovePersist(t *testing.T) {
	svc, slot := newLoadedService(t, nil)
	ctx := context.Background()

	var notified [][]string
	svc.OnChange(func(names []string) { notified = append(notified, names) })

	added, err := svc.Add(ctx, common.InventoryItem{Item: " Rice ", Quantity: "1 cup"})
	require.NoError(t, err)
	assert.Equal(t, "Rice", added.Item)
	assert.NotEmpty(t, added.ID)

	data, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"item":"Rice"`)

	require.NoError(t, svc.Remove(ctx, added.ID))
	assert.Empty(t, svc.List())
	assert.ErrorIs(t, svc.Remove(ctx, added.ID), ErrItemNotFound)

	assert.Equal(t, [][]string{{"Rice"}, {}}, notified)
}

func TestAddRequiresName(t *testing.T) {
	svc, _ := newLoadedService(t, nil)

	_, err := svc.Add(context.Background(), common.InventoryItem{Item: "  "})
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
}

func TestFailedWriteKeepsState(t *testing.T) {
	svc, slot := newLoadedService(t, []byte(`[{"id":"item-1","item":"Garlic"}]`))
	ctx := context.Background()

	called := false
	svc.OnChange(func([]string) { called = true })

	slot.FailWrites(errors.New("disk full"))

	_, err := svc.Add(ctx, common.InventoryItem{Item: "Onion"})
	require.Error(t, err)
	var customErr *common.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, common.ErrInventoryWrite.Code, customErr.Code)

	assert.Error(t, svc.Remove(ctx, "item-1"))
	_, err = svc.Import(ctx, []common.InventoryItem{{Item: "Tofu"}})
	assert.Error(t, err)

	assert.Equal(t, []string{"Garlic"}, svc.IngredientNames())
	assert.False(t, called)
}

func TestImportReplacesInventory(t *testing.T) {
	svc, _ := newLoadedService(t, []byte(`[{"id":"item-1","item":"Garlic"}]`))

	imported, err := svc.Import(context.Background(), []common.InventoryItem{
		{Item: "Tofu", Brand: "House"},
		{Item: ""},
		{ID: "a", Item: "Soy sauce"},
		{ID: "a", Item: "Ginger"},
	})
	require.NoError(t, err)

	require.Len(t, imported, 3)
	assert.Equal(t, []string{"Tofu", "Soy sauce", "Ginger"}, svc.IngredientNames())
	assert.Equal(t, "a", imported[1].ID)
	assert.NotEqual(t, "a", imported[2].ID)
	assert.NotEmpty(t, imported[0].ID)
}

func TestFileSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kitchen-inventory.json")
	slot := NewFileSlot(path)
	ctx := context.Background()

	_, err := slot.Read(ctx)
	assert.ErrorIs(t, err, ErrSlotEmpty)

	require.NoError(t, slot.Write(ctx, []byte(`[]`)))
	require.NoError(t, slot.Write(ctx, []byte(`[{"id":"1","item":"Milk"}]`)))

	data, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","item":"Milk"}]`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	svc := NewService(slot)
	require.NoError(t, svc.Load(ctx))
	assert.Equal(t, []string{"Milk"}, svc.IngredientNames())
}
