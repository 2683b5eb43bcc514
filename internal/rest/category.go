package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seemaakh/bitefinder/domain"
	"github.com/seemaakh/bitefinder/internal/rest/request"
)

type categoryHandler struct {
	Service domain.CategoryUsecase
}

func NewCategoryHandler(svc domain.CategoryUsecase) *categoryHandler {
	return &categoryHandler{
		Service: svc,
	}
}

func (h *categoryHandler) Create(c *gin.Context) {
	var req request.Category
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := req.ToDomain(0)
	ctx := c.Request.Context()
	if err := h.Service.Create(ctx, &category); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *categoryHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	category, err := h.Service.GetByID(ctx, id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *categoryHandler) Fetch(c *gin.Context) {
	ctx := c.Request.Context()
	categories, err := h.Service.Fetch(ctx)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(categories), "data": categories})
}

func (h *categoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.Category
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := req.ToDomain(id)
	ctx := c.Request.Context()
	if err := h.Service.Update(ctx, &category); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *categoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.Service.Delete(ctx, id); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
