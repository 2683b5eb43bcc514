package mysql

import (
	"context"
	"errors"

	"github.com/seemaakh/bitefinder/domain"
	"github.com/seemaakh/bitefinder/internal/repository/mysql/model"
	"gorm.io/gorm"
)

type studentRepository struct {
	DB *gorm.DB
}

var _ domain.StudentRepository = (*studentRepository)(nil)

// NewStudentRepository will create an implementation of domain.StudentRepository
func NewStudentRepository(db *gorm.DB) *studentRepository {
	return &studentRepository{
		DB: db,
	}
}

func (m *studentRepository) GetByID(ctx context.Context, id int64) (domain.Student, error) {
	var student model.Student
	err := m.DB.WithContext(ctx).First(&student, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Student{}, domain.ErrNotFound
	} else if err != nil {
		return domain.Student{}, err
	}
	return student.ToDomain(), nil
}

func (m *studentRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Student, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var students []model.Student
	err := m.DB.WithContext(ctx).Model(&model.Student{}).
		Where("id IN ?", ids).
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.Student, len(students))
	for i := range students {
		res[i] = students[i].ToDomain()
	}
	return res, nil
}

func (m *studentRepository) GetByEmail(ctx context.Context, email string) (domain.Student, error) {
	var student model.Student
	err := m.DB.WithContext(ctx).First(&student, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Student{}, domain.ErrNotFound
	} else if err != nil {
		return domain.Student{}, err
	}
	return student.ToDomain(), nil
}

func (m *studentRepository) GetByUsername(ctx context.Context, username string) (domain.Student, error) {
	var student model.Student
	err := m.DB.WithContext(ctx).First(&student, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Student{}, domain.ErrNotFound
	} else if err != nil {
		return domain.Student{}, err
	}
	return student.ToDomain(), nil
}

func (m *studentRepository) GetByUsernames(ctx context.Context, usernames []string) ([]domain.Student, error) {
	if len(usernames) == 0 {
		return nil, nil
	}
	var students []model.Student
	err := m.DB.WithContext(ctx).Model(&model.Student{}).
		Where("username IN ?", usernames).
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.Student, len(students))
	for i := range students {
		res[i] = students[i].ToDomain()
	}
	return res, nil
}

func (m *studentRepository) Insert(ctx context.Context, s *domain.Student) error {
	studentModel := model.NewStudentFromDomain(s)

	result := m.DB.WithContext(ctx).Create(studentModel)
	if result.Error != nil {
		return result.Error
	}

	s.ID = studentModel.ID
	s.CreatedAt = studentModel.CreatedAt
	s.UpdatedAt = studentModel.UpdatedAt

	return nil
}

func (m *studentRepository) Update(ctx context.Context, s *domain.Student) error {
	studentModel := model.NewStudentFromDomain(s)
	return m.DB.WithContext(ctx).Model(studentModel).Updates(studentModel).Error
}

func (m *studentRepository) Delete(ctx context.Context, id int64) error {
	result := m.DB.WithContext(ctx).Delete(&model.Student{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *studentRepository) Fetch(ctx context.Context) ([]domain.Student, error) {
	var students []model.Student
	err := m.DB.WithContext(ctx).Order("created_at DESC").Find(&students).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.Student, len(students))
	for i := range students {
		res[i] = students[i].ToDomain()
	}
	return res, nil
}
