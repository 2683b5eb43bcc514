package model

import (
	"time"

	"github.com/seemaakh/bitefinder/domain"
)

type Batch struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status    string    `gorm:"type:varchar(10);not null;default:active"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (Batch) TableName() string {
	return "batch"
}

func NewBatchFromDomain(b *domain.Batch) *Batch {
	return &Batch{
		ID:        b.ID,
		Name:      b.Name,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}
}

func (m *Batch) ToDomain() domain.Batch {
	return domain.Batch{
		ID:        m.ID,
		Name:      m.Name,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
}
