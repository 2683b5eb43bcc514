package student

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/seemaakh/bitefinder/domain"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	studentRepo domain.StudentRepository
	jwtSecret   []byte
	jwtTTL      time.Duration
}

var _ domain.StudentUsecase = (*Service)(nil)

func NewService(studentRepo domain.StudentRepository, jwtSecret []byte, jwtTTL time.Duration) *Service {
	return &Service{
		studentRepo: studentRepo,
		jwtSecret:   jwtSecret,
		jwtTTL:      jwtTTL,
	}
}

func (s *Service) Register(ctx context.Context, st *domain.Student) error {
	st.Name = strings.TrimSpace(st.Name)
	st.Email = strings.TrimSpace(st.Email)
	st.Username = strings.TrimSpace(st.Username)
	if st.Name == "" || st.Email == "" || st.Username == "" || st.Password == "" {
		return domain.ErrBadParamInput
	}

	if _, err := s.studentRepo.GetByEmail(ctx, st.Email); err == nil {
		return domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if _, err := s.studentRepo.GetByUsername(ctx, st.Username); err == nil {
		return domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(st.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	st.Password = string(hashed)
	if st.ProfilePicture == "" {
		st.ProfilePicture = "default-profile.png"
	}

	return s.studentRepo.Insert(ctx, st)
}

func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	st, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(st.Password), []byte(password)); err != nil {
		return "", domain.ErrBadParamInput
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": st.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.jwtTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Student, error) {
	st, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Student{}, err
	}
	st.Password = ""
	return st, nil
}

func (s *Service) Fetch(ctx context.Context) ([]domain.Student, error) {
	students, err := s.studentRepo.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	for i := range students {
		students[i].Password = ""
	}
	return students, nil
}

func (s *Service) Update(ctx context.Context, st *domain.Student, requesterID int64) error {
	current, err := s.studentRepo.GetByID(ctx, st.ID)
	if err != nil {
		return err
	}
	if current.ID != requesterID {
		return domain.ErrForbidden
	}

	if st.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(st.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		st.Password = string(hashed)
	} else {
		st.Password = current.Password
	}
	st.UpdatedAt = time.Now()

	return s.studentRepo.Update(ctx, st)
}

func (s *Service) Delete(ctx context.Context, id int64, requesterID int64) error {
	current, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.ID != requesterID {
		return domain.ErrForbidden
	}
	return s.studentRepo.Delete(ctx, id)
}
