package model

import (
	"time"

	"github.com/seemaakh/bitefinder/domain"
)

type Item struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text;not null"`
	Type        string    `gorm:"type:varchar(10);not null;index"`
	CategoryID  int64     `gorm:"column:category_id;not null;index"`
	Location    string    `gorm:"type:varchar(200);not null"`
	Media       string    `gorm:"type:varchar(255);not null"`
	MediaType   string    `gorm:"column:media_type;type:varchar(10);default:photo"`
	ReporterID  int64     `gorm:"column:reporter_id;not null;index"`
	ClaimerID   int64     `gorm:"column:claimer_id;default:0"`
	IsClaimed   bool      `gorm:"column:is_claimed;default:false"`
	Status      string    `gorm:"type:varchar(10);not null;default:available;index"`
	CreatedAt   time.Time `gorm:"type:datetime"`
	UpdatedAt   time.Time `gorm:"type:datetime"`
}

func (Item) TableName() string {
	return "item"
}

func NewItemFromDomain(it *domain.Item) *Item {
	return &Item{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Type:        it.Type,
		CategoryID:  it.CategoryID,
		Location:    it.Location,
		Media:       it.Media,
		MediaType:   it.MediaType,
		ReporterID:  it.ReporterID,
		ClaimerID:   it.ClaimerID,
		IsClaimed:   it.IsClaimed,
		Status:      it.Status,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func (m *Item) ToDomain() domain.Item {
	return domain.Item{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Type:        m.Type,
		CategoryID:  m.CategoryID,
		Location:    m.Location,
		Media:       m.Media,
		MediaType:   m.MediaType,
		ReporterID:  m.ReporterID,
		ClaimerID:   m.ClaimerID,
		IsClaimed:   m.IsClaimed,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
