package model

import (
	"time"

	"github.com/seemaakh/bitefinder/domain"
)

type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string    `gorm:"type:varchar(200)"`
	Status      string    `gorm:"type:varchar(10);not null;default:active"`
	CreatedAt   time.Time `gorm:"type:datetime"`
}

func (Category) TableName() string {
	return "category"
}

func NewCategoryFromDomain(c *domain.Category) *Category {
	return &Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
	}
}

func (m *Category) ToDomain() domain.Category {
	return domain.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
	}
}
