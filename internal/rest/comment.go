package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/seemaakh/bitefinder/domain"
	"github.com/seemaakh/bitefinder/internal/rest/request"
	"github.com/seemaakh/bitefinder/internal/rest/response"
	"github.com/sirupsen/logrus"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	default:
		logrus.Error(err)
		return http.StatusInternalServerError
	}
}

// parsePagination reads page/limit query params, clamping to sane bounds.
func parsePagination(c *gin.Context) (page, limit int64) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", ""), 10, 64)
	if err != nil || page < 1 {
		page = DefaultPage
	}
	limit, err = strconv.ParseInt(c.DefaultQuery("limit", ""), 10, 64)
	if err != nil || limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return page, limit
}

func authUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}
	return userID.(int64), true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return 0, false
	}
	return id, true
}

type commentHandler struct {
	Service domain.CommentUsecase
}

func NewCommentHandler(svc domain.CommentUsecase) *commentHandler {
	return &commentHandler{
		Service: svc,
	}
}

// CreateComment creates a comment or reply on an item's thread.
func (h *commentHandler) CreateComment(c *gin.Context) {
	var req request.CreateComment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, ok := authUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	comment, err := h.Service.Create(ctx, req.Text, req.ItemID, uid, req.ParentID)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewCommentFromDomain(comment))
}

// UpdateComment edits a comment's text; mentions are re-resolved.
func (h *commentHandler) UpdateComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	uid, ok := authUserID(c)
	if !ok {
		return
	}

	var req request.UpdateComment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	comment, err := h.Service.Update(ctx, id, req.Text, uid)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewCommentFromDomain(comment))
}

// DeleteComment removes a comment; a top-level comment takes its replies
// with it.
func (h *commentHandler) DeleteComment(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// ToggleLike likes or unlikes a comment for the authenticated student.
func (h *commentHandler) ToggleLike(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	uid, ok := authUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	res, err := h.Service.ToggleLike(ctx, id, uid)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// FetchByItem lists an item's comments, newest first. Replies are
// excluded unless includeReplies=true.
func (h *commentHandler) FetchByItem(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	includeReplies := c.Query("includeReplies") == "true"
	page, limit := parsePagination(c)

	ctx := c.Request.Context()
	res, err := h.Service.FetchByItem(ctx, itemID, includeReplies, page, limit)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewCommentListFromDomain(res))
}

// FetchReplies lists a comment's replies, oldest first.
func (h *commentHandler) FetchReplies(c *gin.Context) {
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	ctx := c.Request.Context()
	res, err := h.Service.FetchReplies(ctx, commentID, page, limit)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewCommentListFromDomain(res))
}

// FetchByStudent lists a student's comments, newest first.
func (h *commentHandler) FetchByStudent(c *gin.Context) {
	studentID, ok := pathID(c, "studentId")
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	ctx := c.Request.Context()
	res, err := h.Service.FetchByStudent(ctx, studentID, page, limit)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewCommentListFromDomain(res))
}

// FetchMentions lists comments mentioning a student, newest first.
func (h *commentHandler) FetchMentions(c *gin.Context) {
	studentID, ok := pathID(c, "studentId")
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	ctx := c.Request.Context()
	res, err := h.Service.FetchMentions(ctx, studentID, page, limit)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewCommentListFromDomain(res))
}
