package model

import (
	"time"

	"github.com/seemaakh/bitefinder/domain"
)

type Student struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	Name           string    `gorm:"type:varchar(100);not null"`
	Email          string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Username       string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Password       string    `gorm:"type:varchar(100);not null"`
	PhoneNumber    string    `gorm:"column:phone_number;type:varchar(20)"`
	ProfilePicture string    `gorm:"column:profile_picture;type:varchar(255)"`
	CreatedAt      time.Time `gorm:"type:datetime"`
	UpdatedAt      time.Time `gorm:"type:datetime"`
}

func (Student) TableName() string {
	return "student"
}

func NewStudentFromDomain(s *domain.Student) *Student {
	return &Student{
		ID:             s.ID,
		Name:           s.Name,
		Email:          s.Email,
		Username:       s.Username,
		Password:       s.Password,
		PhoneNumber:    s.PhoneNumber,
		ProfilePicture: s.ProfilePicture,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (m *Student) ToDomain() domain.Student {
	return domain.Student{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		Username:       m.Username,
		Password:       m.Password,
		PhoneNumber:    m.PhoneNumber,
		ProfilePicture: m.ProfilePicture,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
