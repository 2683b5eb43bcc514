package request

import "github.com/seemaakh/bitefinder/domain"

type Category struct {
	Name        string `json:"name" binding:"required,min=2,max=50"`
	Description string `json:"description" binding:"max=200"`
	Status      string `json:"status" binding:"omitempty,oneof=active inactive"`
}

func (r *Category) ToDomain(id int64) domain.Category {
	return domain.Category{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Status:      r.Status,
	}
}

type Batch struct {
	Name   string `json:"name" binding:"required,min=2,max=50"`
	Status string `json:"status" binding:"omitempty,oneof=active completed cancelled"`
}

func (r *Batch) ToDomain(id int64) domain.Batch {
	return domain.Batch{
		ID:     id,
		Name:   r.Name,
		Status: r.Status,
	}
}
