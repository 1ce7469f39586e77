package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/firedoors/firedoors-backend/pkg/db/models"
	"github.com/firedoors/firedoors-backend/pkg/enums"
	"github.com/firedoors/firedoors-backend/pkg/pagination"
	"github.com/firedoors/firedoors-backend/pkg/types"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  number TEXT NOT NULL UNIQUE,
  invoice_id TEXT,
  due_date DATETIME,
  comment TEXT NOT NULL DEFAULT '',
  file_path TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  position_num TEXT NOT NULL,
  name TEXT NOT NULL DEFAULT '',
  kind TEXT,
  fire_type TEXT,
  construction TEXT NOT NULL DEFAULT 'SK',
  width INTEGER NOT NULL DEFAULT 0,
  height INTEGER NOT NULL DEFAULT 0,
  active_trim TEXT NOT NULL DEFAULT '',
  open_side TEXT NOT NULL DEFAULT '',
  platband TEXT NOT NULL DEFAULT '',
  furniture TEXT NOT NULL DEFAULT '',
  door_closer TEXT NOT NULL DEFAULT '',
  step TEXT NOT NULL DEFAULT '',
  ral TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL DEFAULT 0,
  comment TEXT NOT NULL DEFAULT '',
  metal_thickness TEXT NOT NULL DEFAULT '',
  vent_grate TEXT NOT NULL DEFAULT '',
  deflector TEXT NOT NULL DEFAULT '',
  nameplate_range TEXT NOT NULL DEFAULT '',
  firm_plate INTEGER NOT NULL DEFAULT 0,
  mounting_plate TEXT NOT NULL DEFAULT '',
  glass_spec TEXT,
  status TEXT NOT NULL DEFAULT 'queued',
  workshop TEXT NOT NULL DEFAULT 'none',
  created_at DATETIME,
  updated_at DATETIME
);`
	glassInfo := `
CREATE TABLE IF NOT EXISTS glass_info (
  id TEXT PRIMARY KEY,
  order_item_id TEXT NOT NULL,
  height INTEGER NOT NULL,
  width INTEGER NOT NULL,
  depth INTEGER,
  count INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'not_ordered',
  comment TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`
	changeHistory := `
CREATE TABLE IF NOT EXISTS order_change_history (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  previous_file_path TEXT NOT NULL DEFAULT '',
  author TEXT NOT NULL DEFAULT '',
  comment TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	require.NoError(t, db.Exec(glassInfo).Error)
	require.NoError(t, db.Exec(changeHistory).Error)
	return db
}

func newOrder(t *testing.T, db *gorm.DB, created time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:        uuid.New(),
		Number:    fmt.Sprintf("З-%s", uuid.NewString()[:8]),
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func newItem(t *testing.T, db *gorm.DB, orderID uuid.UUID, position string, status enums.ItemStatus) *models.OrderItem {
	t.Helper()

	kind := enums.ItemKindDoor
	item := &models.OrderItem{
		ID:           uuid.New(),
		OrderID:      orderID,
		PositionNum:  position,
		Name:         "Дверь EI-60",
		Kind:         &kind,
		Construction: enums.ConstructionOld,
		Width:        900,
		Height:       2100,
		Quantity:     1,
		Status:       status,
		Workshop:     enums.WorkshopNone,
		GlassSpec:    types.GlassSpec{},
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func newGlass(t *testing.T, db *gorm.DB, itemID uuid.UUID, height, width, count int) *models.GlassInfo {
	t.Helper()

	glass := &models.GlassInfo{
		ID:          uuid.New(),
		OrderItemID: itemID,
		Height:      height,
		Width:       width,
		Count:       count,
		Status:      enums.GlassStatusNotOrdered,
	}
	require.NoError(t, db.Create(glass).Error)
	return glass
}

func TestRepositoryFindOrderDetail_excludesChangedRows(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := newOrder(t, db, time.Now().UTC())
	newItem(t, db, order.ID, "2", enums.ItemStatusQueued)
	newItem(t, db, order.ID, "1", enums.ItemStatusRunning)
	newItem(t, db, order.ID, "3", enums.ItemStatusChanged)

	detail, err := repo.FindOrderDetail(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 2)
	assert.Equal(t, "1", detail.Items[0].PositionNum)
	assert.Equal(t, "2", detail.Items[1].PositionNum)
}

func TestRepositoryFindActiveItems_preloadsGlass(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := newOrder(t, db, time.Now().UTC())
	item := newItem(t, db, order.ID, "1", enums.ItemStatusQueued)
	newGlass(t, db, item.ID, 860, 300, 2)
	newItem(t, db, order.ID, "2", enums.ItemStatusChanged)

	items, err := repo.FindActiveItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Len(t, items[0].Glasses, 1)
	assert.Equal(t, 860, items[0].Glasses[0].Height)
}

func TestRepositoryDeleteItem_cascadesGlass(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := newOrder(t, db, time.Now().UTC())
	item := newItem(t, db, order.ID, "1", enums.ItemStatusQueued)
	newGlass(t, db, item.ID, 860, 300, 2)

	require.NoError(t, repo.DeleteItem(ctx, item.ID))

	var count int64
	require.NoError(t, db.Model(&models.GlassInfo{}).Where("order_item_id = ?", item.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, err := repo.FindItem(ctx, item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryUpdateGlassStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := newOrder(t, db, time.Now().UTC())
	item := newItem(t, db, order.ID, "1", enums.ItemStatusQueued)
	glass := newGlass(t, db, item.ID, 860, 300, 2)

	require.NoError(t, repo.UpdateGlassStatus(ctx, glass.ID, enums.GlassStatusOrdered))

	found, err := repo.FindGlass(ctx, glass.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.GlassStatusOrdered, found.Status)
}

func TestRepositoryListOrders_pagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	first := newOrder(t, db, base)
	second := newOrder(t, db, base.Add(time.Minute))
	third := newOrder(t, db, base.Add(2*time.Minute))

	page1, err := repo.ListOrders(ctx, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1.Orders, 2)
	assert.Equal(t, third.ID, page1.Orders[0].ID)
	assert.Equal(t, second.ID, page1.Orders[1].ID)
	require.NotEmpty(t, page1.NextCursor)

	page2, err := repo.ListOrders(ctx, pagination.Params{Limit: 2, Cursor: page1.NextCursor})
	require.NoError(t, err)
	require.NotEmpty(t, page2.Orders)
	assert.Equal(t, first.ID, page2.Orders[0].ID)
}
