package shipments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/firedoors/firedoors-backend/pkg/db/models"
	"github.com/firedoors/firedoors-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a shipments repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, shipment *models.Shipment) error {
	if shipment.ID == uuid.Nil {
		shipment.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(shipment).Error
}

func (r *repository) Update(ctx context.Context, shipmentID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Shipment{}).
		Where("id = ?", shipmentID).
		Updates(updates).Error
}

func (r *repository) Find(ctx context.Context, shipmentID uuid.UUID) (*models.Shipment, error) {
	var shipment models.Shipment
	err := r.db.WithContext(ctx).
		Preload("Order").
		Where("id = ?", shipmentID).
		First(&shipment).Error
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (r *repository) Delete(ctx context.Context, shipmentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", shipmentID).
		Delete(&models.Shipment{}).Error
}

func (r *repository) ListDay(ctx context.Context, workshop enums.Workshop, day time.Time) ([]models.Shipment, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	var shipments []models.Shipment
	err := r.db.WithContext(ctx).
		Preload("Order").
		Where("workshop = ? AND date >= ? AND date < ?", workshop, start, end).
		Order("time_slot ASC").
		Find(&shipments).Error
	if err != nil {
		return nil, err
	}
	return shipments, nil
}

func (r *repository) CountByDay(ctx context.Context, workshop enums.Workshop, from, to time.Time) (map[string]int, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&models.Shipment{}).
		Where("workshop = ? AND date >= ? AND date < ?", workshop, from, to).
		Pluck("date", &dates).Error
	if err != nil {
		return nil, err
	}

	// bucketing in Go keeps the query identical across postgres and the
	// sqlite test databases
	counts := make(map[string]int)
	for _, d := range dates {
		counts[d.UTC().Format("2006-01-02")]++
	}
	return counts, nil
}
