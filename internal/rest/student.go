package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seemaakh/bitefinder/domain"
	"github.com/seemaakh/bitefinder/internal/rest/request"
	"github.com/seemaakh/bitefinder/internal/rest/response"
)

type studentHandler struct {
	Service domain.StudentUsecase
}

func NewStudentHandler(svc domain.StudentUsecase) *studentHandler {
	return &studentHandler{
		Service: svc,
	}
}

func (h *studentHandler) Register(c *gin.Context) {
	var req request.RegisterStudent
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student := req.ToDomain()
	ctx := c.Request.Context()
	if err := h.Service.Register(ctx, &student); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewStudentProfileFromDomain(&student))
}

func (h *studentHandler) Login(c *gin.Context) {
	var req request.LoginStudent
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	token, err := h.Service.Login(ctx, req.Email, req.Password)
	if err != nil {
		if err == domain.ErrBadParamInput || err == domain.ErrNotFound {
			c.JSON(http.StatusUnauthorized, ResponseError{Message: "Invalid credentials"})
			return
		}
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *studentHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	student, err := h.Service.GetByID(ctx, id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewStudentProfileFromDomain(&student))
}

func (h *studentHandler) Fetch(c *gin.Context) {
	ctx := c.Request.Context()
	students, err := h.Service.Fetch(ctx)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.StudentProfile, len(students))
	for i := range students {
		res[i] = response.NewStudentProfileFromDomain(&students[i])
	}
	c.JSON(http.StatusOK, gin.H{"count": len(res), "data": res})
}

func (h *studentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	uid, ok := authUserID(c)
	if !ok {
		return
	}

	var req request.UpdateStudent
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student := req.ToDomain(id)
	ctx := c.Request.Context()
	if err := h.Service.Update(ctx, &student, uid); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewStudentProfileFromDomain(&student))
}

func (h *studentHandler) Delete(c *gin.Context) {
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
