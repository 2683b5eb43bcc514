package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/seemaakh/bitefinder/domain"
	"github.com/seemaakh/bitefinder/internal/rest/request"
	"github.com/seemaakh/bitefinder/internal/rest/response"
)

type itemHandler struct {
	Service domain.ItemUsecase
}

func NewItemHandler(svc domain.ItemUsecase) *itemHandler {
	return &itemHandler{
		Service: svc,
	}
}

func (h *itemHandler) Create(c *gin.Context) {
	var req request.CreateItem
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, ok := authUserID(c)
	if !ok {
		return
	}

	item := req.ToDomain()
	item.ReporterID = uid

	ctx := c.Request.Context()
	if err := h.Service.Create(ctx, &item); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, response.NewItemFromDomain(&item))
}

func (h *itemHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	item, err := h.Service.GetByID(ctx, id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewItemFromDomain(&item))
}

func (h *itemHandler) Fetch(c *gin.Context) {
	filter := domain.ItemFilter{
		Type:   c.Query("type"),
		Status: c.Query("status"),
	}
	if cidS := c.Query("category"); cidS != "" {
		cid, err := strconv.ParseInt(cidS, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ResponseError{Message: domain.ErrBadParamInput.Error()})
			return
		}
		filter.CategoryID = cid
	}
	page, limit := parsePagination(c)

	ctx := c.Request.Context()
	res, err := h.Service.Fetch(ctx, filter, page, limit)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewItemListFromDomain(res))
}

func (h *itemHandler) Claim(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	uid, ok := authUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	item, err := h.Service.Claim(ctx, id, uid)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewItemFromDomain(&item))
}

func (h *itemHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	uid, ok := authUserID(c)
	if !ok {
		return
	}

	var req request.UpdateItem
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := req.ToDomain(id)
	ctx := c.Request.Context()
	if err := h.Service.Update(ctx, &item, uid); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewItemFromDomain(&item))
}

func (h *itemHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	uid, ok := authUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.Service.Delete(ctx, id, uid); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
