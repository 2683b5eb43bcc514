package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seemaakh/bitefinder/domain"
	"github.com/seemaakh/bitefinder/internal/rest/request"
)

type batchHandler struct {
	Service domain.BatchUsecase
}

func NewBatchHandler(svc domain.BatchUsecase) *batchHandler {
	return &batchHandler{
		Service: svc,
	}
}

func (h *batchHandler) Create(c *gin.Context) {
	var req request.Batch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch := req.ToDomain(0)
	ctx := c.Request.Context()
	if err := h.Service.Create(ctx, &batch); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, batch)
}

func (h *batchHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	batch, err := h.Service.GetByID(ctx, id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *batchHandler) Fetch(c *gin.Context) {
	ctx := c.Request.Context()
	batches, err := h.Service.Fetch(ctx)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(batches), "data": batches})
}

func (h *batchHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.Batch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch := req.ToDomain(id)
	ctx := c.Request.Context()
	if err := h.Service.Update(ctx, &batch); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *batchHandler) Delete(c *gin.Context) {
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
