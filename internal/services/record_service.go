package services

import (
	"github.com/bridgegate-labs/bridgegate/internal/models"
	"gorm.io/gorm"
)

const defaultRecordLimit = 100

// RecordService is the relayer pull surface over the append-only bridge
// record log. Records are queryable by id, caller and token and are never
// mutated.
type RecordService interface {
	GetByID(id string) (*models.BridgeRecord, error)
	List(limit, offset int) ([]models.BridgeRecord, error)
	ListByCaller(caller string, limit, offset int) ([]models.BridgeRecord, error)
	ListByToken(token string, limit, offset int) ([]models.BridgeRecord, error)
	Count() (int64, error)
}

type recordService struct {
	db *gorm.DB
}

// NewRecordService creates a new RecordService
func NewRecordService(db *gorm.DB) RecordService {
	return &recordService{db: db}
}

func (s *recordService) GetByID(id string) (*models.BridgeRecord, error) {
	var record models.BridgeRecord
	err := s.db.Where("record_id = ?", id).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *recordService) List(limit, offset int) ([]models.BridgeRecord, error) {
	return s.list(s.db, limit, offset)
}

func (s *recordService) ListByCaller(caller string, limit, offset int) ([]models.BridgeRecord, error) {
	return s.list(s.db.Where("caller = ?", caller), limit, offset)
}

func (s *recordService) ListByToken(token string, limit, offset int) ([]models.BridgeRecord, error) {
	return s.list(s.db.Where("token = ?", token), limit, offset)
}

func (s *recordService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.BridgeRecord{}).Count(&count).Error
	return count, err
}

func (s *recordService) list(query *gorm.DB, limit, offset int) ([]models.BridgeRecord, error) {
	if limit <= 0 {
		limit = defaultRecordLimit
	}
	if offset < 0 {
		offset = 0
	}

	var records []models.BridgeRecord
	err := query.
		Order("block_height asc, timestamp asc").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	return records, err
}
