package request

import "github.com/seemaakh/bitefinder/domain"

type RegisterStudent struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Username       string `json:"username" binding:"required"`
	Password       string `json:"password" binding:"required,min=6"`
	PhoneNumber    string `json:"phone_number"`
	ProfilePicture string `json:"profile_picture"`
}

func (r *RegisterStudent) ToDomain() domain.Student {
	return domain.Student{
		Name:           r.Name,
		Email:          r.Email,
		Username:       r.Username,
		Password:       r.Password,
		PhoneNumber:    r.PhoneNumber,
		ProfilePicture: r.ProfilePicture,
	}
}

type LoginStudent struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateStudent struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Username       string `json:"username" binding:"required"`
	Password       string `json:"password"` // empty keeps the current password
	PhoneNumber    string `json:"phone_number"`
	ProfilePicture string `json:"profile_picture"`
}

func (r *UpdateStudent) ToDomain(id int64) domain.Student {
	return domain.Student{
		ID:             id,
		Name:           r.Name,
		Email:          r.Email,
		Username:       r.Username,
		Password:       r.Password,
		PhoneNumber:    r.PhoneNumber,
		ProfilePicture: r.ProfilePicture,
	}
}
