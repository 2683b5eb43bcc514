package response

import "github.com/seemaakh/bitefinder/domain"

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	CategoryID  int64  `json:"category_id"`
	Location    string `json:"location"`
	Media       string `json:"media"`
	MediaType   string `json:"media_type"`
	IsClaimed   bool   `json:"is_claimed"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`

	Reporter *Student `json:"reporter,omitempty"`
	Claimer  *Student `json:"claimer,omitempty"`
}

func NewItemFromDomain(it *domain.Item) Item {
	return Item{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Type:        it.Type,
		CategoryID:  it.CategoryID,
		Location:    it.Location,
		Media:       it.Media,
		MediaType:   it.MediaType,
		IsClaimed:   it.IsClaimed,
		Status:      it.Status,
		CreatedAt:   it.CreatedAt.Format(DateTimeFormat),
		UpdatedAt:   it.UpdatedAt.Format(DateTimeFormat),
		Reporter:    NewStudentFromDomain(it.Reporter),
		Claimer:     NewStudentFromDomain(it.Claimer),
	}
}

type ItemList struct {
	Count int    `json:"count"`
	Total int64  `json:"total"`
	Page  int64  `json:"page"`
	Pages int64  `json:"pages"`
	Data  []Item `json:"data"`
}

func NewItemListFromDomain(p *domain.ItemPage) ItemList {
	data := make([]Item, 0, len(p.Items))
	for i := range p.Items {
		data = append(data, NewItemFromDomain(&p.Items[i]))
	}
	return ItemList{
		Count: len(data),
		Total: p.Total,
		Page:  p.Page,
		Pages: p.Pages,
		Data:  data,
	}
}
