package shipments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/firedoors/firedoors-backend/internal/orders"
	"github.com/firedoors/firedoors-backend/pkg/db/models"
	"github.com/firedoors/firedoors-backend/pkg/enums"
	pkgerrors "github.com/firedoors/firedoors-backend/pkg/errors"
	"github.com/firedoors/firedoors-backend/pkg/logger"
)

// orderSource is the slice of the orders repository the shipments domain reads.
type orderSource interface {
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindActiveItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
}

// Service defines shipment slot operations.
type Service interface {
	Save(ctx context.Context, input SaveInput) (*models.Shipment, error)
	Delete(ctx context.Context, shipmentID uuid.UUID) error
	Complete(ctx context.Context, shipmentID uuid.UUID, actor string) (*CompleteResult, error)
	Day(ctx context.Context, workshop enums.Workshop, day time.Time) ([]models.Shipment, error)
	MonthCalendar(ctx context.Context, year, month int) (*Calendar, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	orders  orderSource
	shipper orders.ItemShipper
	log     *logger.Logger
}

// NewService builds a shipments service with the required dependencies.
func NewService(repo Repository, tx txRunner, src orderSource, shipper orders.ItemShipper, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shipments repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if src == nil {
		return nil, fmt.Errorf("orders source required")
	}
	if shipper == nil {
		return nil, fmt.Errorf("item shipper required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, orders: src, shipper: shipper, log: log}, nil
}

func (s *service) Save(ctx context.Context, input SaveInput) (*models.Shipment, error) {
	if input.Workshop != enums.WorkshopLine1 && input.Workshop != enums.WorkshopLine3 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("shipments are scheduled per production line, got workshop %q", input.Workshop))
	}
	if input.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipment date required")
	}
	if input.TimeSlot == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "time slot required")
	}
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	if _, err := s.orders.FindOrder(ctx, input.OrderID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	items, err := s.orders.FindActiveItems(ctx, input.OrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order items")
	}
	if !hasProducibleItems(items) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order has no items in production or ready")
	}

	if input.ShipmentID != nil {
		return s.update(ctx, *input.ShipmentID, input)
	}

	shipment := &models.Shipment{
		OrderID:      input.OrderID,
		Date:         input.Date,
		TimeSlot:     input.TimeSlot,
		Workshop:     input.Workshop,
		CarBrand:     input.CarBrand,
		CarNumber:    input.CarNumber,
		Comment:      input.Comment,
		ShipmentMark: input.ShipmentMark,
		Address:      input.Address,
		Author:       input.Author,
	}
	if err := s.repo.Create(ctx, shipment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shipment")
	}
	return shipment, nil
}

func (s *service) update(ctx context.Context, shipmentID uuid.UUID, input SaveInput) (*models.Shipment, error) {
	shipment, err := s.repo.Find(ctx, shipmentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shipment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shipment")
	}
	if shipment.Completed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "completed shipment cannot be edited")
	}

	updates := map[string]any{
		"order_id":      input.OrderID,
		"date":          input.Date,
		"time_slot":     input.TimeSlot,
		"workshop":      input.Workshop,
		"car_brand":     input.CarBrand,
		"car_number":    input.CarNumber,
		"comment":       input.Comment,
		"shipment_mark": input.ShipmentMark,
		"address":       input.Address,
	}
	if err := s.repo.Update(ctx, shipmentID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shipment")
	}
	return s.repo.Find(ctx, shipmentID)
}

func (s *service) Delete(ctx context.Context, shipmentID uuid.UUID) error {
	shipment, err := s.repo.Find(ctx, shipmentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "shipment not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shipment")
	}
	if shipment.Completed {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "completed shipment cannot be deleted")
	}
	if err := s.repo.Delete(ctx, shipmentID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete shipment")
	}
	return nil
}

// Complete ships every transitionable item of the shipment's order and marks
// the slot completed. Items whose status guards the transition are reported
// together; the call fails only when nothing could be shipped.
func (s *service) Complete(ctx context.Context, shipmentID uuid.UUID, actor string) (*CompleteResult, error) {
	result := &CompleteResult{}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		shipment, err := repo.Find(ctx, shipmentID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "shipment not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shipment")
		}
		if shipment.Completed {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "shipment already completed")
		}

		items, err := s.orders.FindActiveItems(ctx, shipment.OrderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order items")
		}

		var guardErrs error
		for i := range items {
			if orders.CanTransition(items[i].Status, enums.ItemStatusShipped) {
				continue
			}
			guardErrs = multierr.Append(guardErrs, fmt.Errorf("position %s: %s cannot be shipped", items[i].PositionNum, items[i].Status))
		}

		shipped, err := s.shipper.ShipItems(ctx, tx, shipment.OrderID, actor)
		if err != nil {
			return err
		}
		if shipped == 0 && len(items) > 0 {
			return pkgerrors.Wrap(pkgerrors.CodeStateConflict, guardErrs, "no items could be shipped")
		}
		if guardErrs != nil {
			s.log.Warn(s.log.WithField(ctx, "shipment_id", shipmentID.String()), "shipment completed with unshippable items: "+guardErrs.Error())
		}

		if err := repo.Update(ctx, shipmentID, map[string]any{"completed": true}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark shipment completed")
		}
		result.ShippedItems = shipped
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Day(ctx context.Context, workshop enums.Workshop, day time.Time) ([]models.Shipment, error) {
	if workshop != enums.WorkshopLine1 && workshop != enums.WorkshopLine3 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid shipment workshop %q", workshop))
	}
	shipments, err := s.repo.ListDay(ctx, workshop, day)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shipments")
	}
	return shipments, nil
}

func (s *service) MonthCalendar(ctx context.Context, year, month int) (*Calendar, error) {
	if month < 1 || month > 12 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid month %d", month))
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	line1, err := s.repo.CountByDay(ctx, enums.WorkshopLine1, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count shipments")
	}
	line3, err := s.repo.CountByDay(ctx, enums.WorkshopLine3, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count shipments")
	}

	cal := &Calendar{Year: year, Month: month}
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		c1, c3 := line1[key], line3[key]
		cal.Days = append(cal.Days, CalendarDay{
			Date:         key,
			Line1Count:   c1,
			Line3Count:   c3,
			HasShipments: c1+c3 > 0,
			IsWeekend:    day.Weekday() == time.Saturday || day.Weekday() == time.Sunday,
		})
		cal.Line1Total += c1
		cal.Line3Total += c3
	}
	cal.Total = cal.Line1Total + cal.Line3Total
	return cal, nil
}

// hasProducibleItems reports whether at least one item is in production or
// ready for loading.
func hasProducibleItems(items []models.OrderItem) bool {
	for _, item := range items {
		if item.Status == enums.ItemStatusRunning || item.Status == enums.ItemStatusReady {
			return true
		}
	}
	return false
}
