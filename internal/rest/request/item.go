package request

import "github.com/seemaakh/bitefinder/domain"

type CreateItem struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=lost found"`
	CategoryID  int64  `json:"category_id" binding:"required"`
	Location    string `json:"location" binding:"required,max=200"`
	Media       string `json:"media" binding:"required"`
	MediaType   string `json:"media_type" binding:"omitempty,oneof=photo video"`
}

func (r *CreateItem) ToDomain() domain.Item {
	return domain.Item{
		Name:        r.Name,
		Description: r.Description,
		Type:        r.Type,
		CategoryID:  r.CategoryID,
		Location:    r.Location,
		Media:       r.Media,
		MediaType:   r.MediaType,
	}
}

type UpdateItem struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=lost found"`
	CategoryID  int64  `json:"category_id" binding:"required"`
	Location    string `json:"location" binding:"required,max=200"`
	Media       string `json:"media" binding:"required"`
	MediaType   string `json:"media_type" binding:"omitempty,oneof=photo video"`
	Status      string `json:"status" binding:"omitempty,oneof=available claimed resolved"`
}

func (r *UpdateItem) ToDomain(id int64) domain.Item {
	return domain.Item{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Type:        r.Type,
		CategoryID:  r.CategoryID,
		Location:    r.Location,
		Media:       r.Media,
		MediaType:   r.MediaType,
		Status:      r.Status,
	}
}
