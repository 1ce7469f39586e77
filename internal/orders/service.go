package orders

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/firedoors/firedoors-backend/internal/orderform"
	"github.com/firedoors/firedoors-backend/pkg/db/models"
	"github.com/firedoors/firedoors-backend/pkg/enums"
	pkgerrors "github.com/firedoors/firedoors-backend/pkg/errors"
	"github.com/firedoors/firedoors-backend/pkg/logger"
	"github.com/firedoors/firedoors-backend/pkg/metrics"
	"github.com/firedoors/firedoors-backend/pkg/pagination"
	"github.com/firedoors/firedoors-backend/pkg/storage/local"
	"github.com/firedoors/firedoors-backend/pkg/types"
)

// changelogCell is where the accumulated change text is written back into the
// uploaded workbook.
const changelogCell = "K3"

// Service defines order operations beyond repository reads.
type Service interface {
	Ingest(ctx context.Context, input IngestInput) (*IngestResult, error)
	ApplyWorkshopAction(ctx context.Context, input WorkshopActionInput) error
	EditItem(ctx context.Context, input EditItemInput) error
	SetGlassStatus(ctx context.Context, glassID uuid.UUID, status enums.GlassStatus) error
	GetAggregates(ctx context.Context, orderID uuid.UUID) (*Aggregates, error)
	List(ctx context.Context, params pagination.Params) (*OrderListView, error)
	Detail(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
}

// ItemShipper is consumed by the shipments domain when a shipment completes.
type ItemShipper interface {
	ShipItems(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, actor string) (int, error)
}

type service struct {
	repo        Repository
	tx          txRunner
	files       *local.Store
	lock        ingestLocker
	log         *logger.Logger
	ingest      *metrics.IngestMetrics
	transitions *metrics.TransitionMetrics
}

// NewService builds an order service with the required dependencies. The lock
// and metrics are optional.
func NewService(
	repo Repository,
	tx txRunner,
	files *local.Store,
	lock ingestLocker,
	log *logger.Logger,
	ingest *metrics.IngestMetrics,
	transitions *metrics.TransitionMetrics,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if files == nil {
		return nil, fmt.Errorf("file store required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if lock == nil {
		lock = noopLocker{}
	}
	return &service{
		repo:        repo,
		tx:          tx,
		files:       files,
		lock:        lock,
		log:         log,
		ingest:      ingest,
		transitions: transitions,
	}, nil
}

func (s *service) Ingest(ctx context.Context, input IngestInput) (*IngestResult, error) {
	mode := "create"
	if input.OrderID != nil {
		mode = "reupload"
	}

	start := time.Now()
	result, err := s.ingestLocked(ctx, input)
	s.ingest.ObserveDuration(mode, time.Since(start))
	if err != nil {
		s.ingest.IncFailure(mode)
		return nil, err
	}
	s.ingest.IncSuccess(mode)
	return result, nil
}

func (s *service) ingestLocked(ctx context.Context, input IngestInput) (*IngestResult, error) {
	if input.File == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order form file required")
	}
	if input.OrderID == nil && input.Number == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number required")
	}

	raw, err := io.ReadAll(input.File)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read upload")
	}

	// parse before touching any state so a rejected file never persists
	records, err := orderform.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	candidates := make([]ItemCandidate, 0, len(records))
	for _, rec := range records {
		candidates = append(candidates, candidateFrom(rec))
	}

	if input.OrderID != nil {
		release, ok, err := s.lock.Acquire(ctx, *input.OrderID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire order lock")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "another upload for this order is in progress")
		}
		defer release()
	}

	handle, err := s.files.Save(bytes.NewReader(raw), input.FileName)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store order form")
	}

	result := &IngestResult{ItemCount: len(candidates)}
	var orderID uuid.UUID
	var changelog string

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if input.OrderID == nil {
			id, err := s.createOrder(ctx, repo, input, candidates, handle)
			if err != nil {
				return err
			}
			orderID = id
			result.Created = true
			return nil
		}

		text, err := s.reconcileOrder(ctx, repo, *input.OrderID, input, candidates, handle)
		if err != nil {
			return err
		}
		orderID = *input.OrderID
		changelog = text
		return nil
	})
	if err != nil {
		if rmErr := s.files.Remove(handle); rmErr != nil {
			s.log.Warn(s.log.WithField(ctx, "blob", handle), "orphaned order form blob not removed")
		}
		return nil, err
	}

	if changelog != "" {
		s.writeBackChangelog(ctx, handle, changelog)
	}

	order, err := s.repo.FindOrderDetail(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}
	result.Order = order
	result.Changes = changelog
	return result, nil
}

func (s *service) createOrder(ctx context.Context, repo Repository, input IngestInput, candidates []ItemCandidate, handle string) (uuid.UUID, error) {
	order := &models.Order{
		Number:    input.Number,
		InvoiceID: input.InvoiceID,
		DueDate:   input.DueDate,
		Comment:   input.Comment,
		FilePath:  handle,
	}
	if err := repo.CreateOrder(ctx, order); err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	for _, cand := range candidates {
		if err := insertItem(ctx, repo, order.ID, cand); err != nil {
			return uuid.Nil, err
		}
	}
	return order.ID, nil
}

func (s *service) reconcileOrder(ctx context.Context, repo Repository, orderID uuid.UUID, input IngestInput, candidates []ItemCandidate, handle string) (string, error) {
	order, err := repo.FindOrder(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	items, err := repo.FindActiveItems(ctx, orderID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order items")
	}
	current := make(map[string]*models.OrderItem, len(items))
	for i := range items {
		current[items[i].PositionNum] = &items[i]
	}

	var changes []string
	seen := make(map[string]bool, len(candidates))
	for _, cand := range candidates {
		seen[cand.PositionNum] = true

		existing, ok := current[cand.PositionNum]
		if !ok {
			if err := insertItem(ctx, repo, orderID, cand); err != nil {
				return "", err
			}
			continue
		}

		lines := DiffItem(existing, cand)
		if len(lines) == 0 {
			continue
		}
		// any difference replaces the whole row: position_num is the
		// semantic key, not the row id
		if err := repo.DeleteItem(ctx, existing.ID); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace order item")
		}
		if err := insertItem(ctx, repo, orderID, cand); err != nil {
			return "", err
		}
		changes = append(changes, lines...)
	}

	if input.MissingPolicy == MissingPositionMarkChanged {
		for pos, item := range current {
			if seen[pos] {
				continue
			}
			updates := map[string]any{"status": enums.ItemStatusChanged}
			if err := repo.UpdateItem(ctx, item.ID, updates); err != nil {
				return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "supersede order item")
			}
			changes = append(changes, fmt.Sprintf("поз. %s: позиция удалена из заявки;", pos))
		}
	}

	updates := map[string]any{
		"file_path": handle,
		"comment":   input.Comment,
	}
	if input.Number != "" {
		updates["number"] = input.Number
	}
	if input.InvoiceID != nil {
		updates["invoice_id"] = *input.InvoiceID
	}
	if input.DueDate != nil {
		updates["due_date"] = *input.DueDate
	}
	if err := repo.UpdateOrder(ctx, orderID, updates); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}

	if len(changes) == 0 {
		return "", nil
	}
	text := FormatChangelog(changes)
	entry := &models.OrderChangeHistory{
		OrderID:          orderID,
		PreviousFilePath: order.FilePath,
		Author:           input.Actor,
		Comment:          text,
	}
	if err := repo.CreateChangeHistory(ctx, entry); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record change history")
	}
	return text, nil
}

// writeBackChangelog mirrors the change text into the stored workbook. The
// write is best effort: failures are logged, never raised.
func (s *service) writeBackChangelog(ctx context.Context, handle, text string) {
	path, err := s.files.Path(handle)
	if err != nil {
		s.log.Error(ctx, "resolve workbook for changelog write-back", err)
		return
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		s.log.Error(ctx, "open workbook for changelog write-back", err)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, changelogCell, text); err != nil {
		s.log.Error(ctx, "write changelog cell", err)
		return
	}
	if err := f.Save(); err != nil {
		s.log.Error(ctx, "save workbook after changelog write-back", err)
	}
}

func (s *service) ApplyWorkshopAction(ctx context.Context, input WorkshopActionInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindOrder(ctx, input.OrderID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		items, err := repo.FindActiveItems(ctx, input.OrderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order items")
		}

		target, _ := targetFor(input.Action)
		for i := range items {
			item := &items[i]
			before := item.Status

			applied, err := ApplyBulkAction(item, input.Action)
			if err != nil {
				return err
			}
			if !applied {
				s.transitions.IncRejected(before.String(), target.String())
				continue
			}
			s.transitions.IncApplied(before.String(), item.Status.String())

			updates := map[string]any{
				"status":   item.Status,
				"workshop": item.Workshop,
			}
			if err := repo.UpdateItem(ctx, item.ID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply workshop action")
			}
		}

		entry := &models.OrderChangeHistory{
			OrderID: input.OrderID,
			Author:  input.Actor,
			Comment: actionComment(input.Action),
		}
		if err := repo.CreateChangeHistory(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record workshop action")
		}
		return nil
	})
}

func (s *service) EditItem(ctx context.Context, input EditItemInput) error {
	if input.ItemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if !input.Status.IsValid() || input.Status == enums.ItemStatusChanged {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid item status %q", input.Status))
	}
	if !input.Workshop.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid workshop %q", input.Workshop))
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		item, err := repo.FindItem(ctx, input.ItemID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order item")
		}

		before := item.Status
		switch input.Origin {
		case EditOriginQueue:
			err = EditFromQueueView(item, input.Status, input.Workshop)
		default:
			err = EditFromOrderDetailView(item, input.Status, input.Workshop)
		}
		if err != nil {
			s.transitions.IncRejected(before.String(), input.Status.String())
			return err
		}
		s.transitions.IncApplied(before.String(), item.Status.String())

		updates := map[string]any{
			"status":   item.Status,
			"workshop": item.Workshop,
		}
		if err := repo.UpdateItem(ctx, item.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order item")
		}
		return nil
	})
}

// ShipItems moves every transitionable active item of the order to shipped
// inside the caller's transaction and records one history row. It returns how
// many items were shipped; guard rejections are counted but do not fail the
// call.
func (s *service) ShipItems(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, actor string) (int, error) {
	repo := s.repo.WithTx(tx)
	items, err := repo.FindActiveItems(ctx, orderID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order items")
	}

	shipped := 0
	for i := range items {
		item := &items[i]
		if !CanTransition(item.Status, enums.ItemStatusShipped) {
			s.transitions.IncRejected(item.Status.String(), enums.ItemStatusShipped.String())
			continue
		}
		s.transitions.IncApplied(item.Status.String(), enums.ItemStatusShipped.String())
		updates := map[string]any{"status": enums.ItemStatusShipped}
		if err := repo.UpdateItem(ctx, item.ID, updates); err != nil {
			return shipped, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark item shipped")
		}
		shipped++
	}

	if shipped > 0 {
		entry := &models.OrderChangeHistory{
			OrderID: orderID,
			Author:  actor,
			Comment: fmt.Sprintf("статус заказа изменен на %q", enums.ItemStatusShipped.Label()),
		}
		if err := repo.CreateChangeHistory(ctx, entry); err != nil {
			return shipped, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record shipment")
		}
	}
	return shipped, nil
}

func (s *service) SetGlassStatus(ctx context.Context, glassID uuid.UUID, status enums.GlassStatus) error {
	if glassID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "glass id required")
	}
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid glass status %q", status))
	}
	glass, err := s.repo.FindGlass(ctx, glassID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "glass record not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load glass record")
	}
	if status == enums.GlassStatusNotOrdered && glass.Status != enums.GlassStatusNotOrdered {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "glass status cannot regress to not_ordered")
	}
	if err := s.repo.UpdateGlassStatus(ctx, glassID, status); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update glass status")
	}
	return nil
}

func (s *service) GetAggregates(ctx context.Context, orderID uuid.UUID) (*Aggregates, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if _, err := s.repo.FindOrder(ctx, orderID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	items, err := s.repo.FindActiveItems(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order items")
	}
	agg := ComputeAggregates(items)
	return &agg, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*OrderListView, error) {
	list, err := s.repo.ListOrders(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	view := &OrderListView{
		Orders:     make([]OrderSummary, 0, len(list.Orders)),
		NextCursor: list.NextCursor,
	}
	for i := range list.Orders {
		order := &list.Orders[i]
		agg := ComputeAggregates(order.Items)
		view.Orders = append(view.Orders, OrderSummary{
			ID:           order.ID,
			Number:       order.Number,
			CreatedAt:    order.CreatedAt,
			DueDate:      order.DueDate,
			Status:       agg.Status,
			WorkshopIcon: agg.WorkshopIcon,
			Quantity:     agg.TotalQuantity,
		})
	}
	return view, nil
}

func (s *service) Detail(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindOrderDetail(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// candidateFrom classifies a parsed record into an insertable line candidate.
func candidateFrom(rec orderform.Record) ItemCandidate {
	return ItemCandidate{
		PositionNum:  rec.PositionNum,
		Name:         rec.Name,
		Kind:         orderform.ClassifyKind(rec.Name),
		FireType:     orderform.ClassifyFireType(rec.Name),
		Construction: orderform.ClassifyConstruction(rec.Name),
		Width:        orderform.ParseInt(rec.Width),
		Height:       orderform.ParseInt(rec.Height),
		ActiveTrim:   rec.ActiveTrim,
		OpenSide:     rec.OpenSide,
		Platband:     rec.Platband,
		Furniture:    rec.Furniture,
		DoorCloser:   rec.DoorCloser,
		Step:         rec.Step,
		RAL:          rec.RAL,
		Quantity:     orderform.ParseInt(rec.Quantity),
		Comment:      rec.Comment,
		Glass:        orderform.AggregateGlass(rec.GlassCells),
	}
}

// insertItem persists a candidate as a fresh queued row plus its glass rows.
func insertItem(ctx context.Context, repo Repository, orderID uuid.UUID, cand ItemCandidate) error {
	item := &models.OrderItem{
		OrderID:      orderID,
		PositionNum:  cand.PositionNum,
		Name:         cand.Name,
		Kind:         cand.Kind,
		FireType:     cand.FireType,
		Construction: cand.Construction,
		Width:        cand.Width,
		Height:       cand.Height,
		ActiveTrim:   cand.ActiveTrim,
		OpenSide:     cand.OpenSide,
		Platband:     cand.Platband,
		Furniture:    cand.Furniture,
		DoorCloser:   cand.DoorCloser,
		Step:         cand.Step,
		RAL:          cand.RAL,
		Quantity:     cand.Quantity,
		Comment:      cand.Comment,
		GlassSpec:    cand.Glass,
		Status:       enums.ItemStatusQueued,
		Workshop:     enums.WorkshopNone,
	}
	if err := repo.CreateItem(ctx, item); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order item")
	}
	if err := repo.CreateGlassInfos(ctx, glassRows(item.ID, cand.Glass)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create glass rows")
	}
	return nil
}

// glassRows seeds glass_info rows from the multiset; rows with a missing
// dimension are kept in the spec but never materialized.
func glassRows(itemID uuid.UUID, spec types.GlassSpec) []models.GlassInfo {
	rows := make([]models.GlassInfo, 0, len(spec))
	for _, entry := range spec.Entries() {
		if entry.Height <= 0 || entry.Width <= 0 {
			continue
		}
		rows = append(rows, models.GlassInfo{
			OrderItemID: itemID,
			Height:      entry.Height,
			Width:       entry.Width,
			Count:       entry.Count,
			Status:      enums.GlassStatusNotOrdered,
		})
	}
	return rows
}
