package response

import "github.com/seemaakh/bitefinder/domain"

type Comment struct {
	ID         int64  `json:"id"`
	ItemID     int64  `json:"item_id"`
	Text       string `json:"text"`
	ParentID   int64  `json:"parent_id,omitempty"`
	IsReply    bool   `json:"is_reply"`
	IsEdited   bool   `json:"is_edited"`
	EditedAt   string `json:"edited_at,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
	LikeCount  int64  `json:"like_count"`
	ReplyCount int64  `json:"reply_count"`

	// Author 评论作者信息
	Author *Student `json:"author,omitempty"`
	// Mentioned 被@的用户信息
	Mentioned []*Student `json:"mentioned,omitempty"`
}

// NewCommentFromDomain: Domain -> Response
func NewCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	res := &Comment{
		ID:         c.ID,
		ItemID:     c.ItemID,
		Text:       c.Text,
		ParentID:   c.ParentID,
		IsReply:    c.IsReply,
		IsEdited:   c.IsEdited,
		CreatedAt:  c.CreatedAt.Format(DateTimeFormat),
		UpdatedAt:  c.UpdatedAt.Format(DateTimeFormat),
		LikeCount:  c.LikeCount,
		ReplyCount: c.ReplyCount,
		Author:     NewStudentFromDomain(c.Author),
	}
	if c.EditedAt != nil {
		res.EditedAt = c.EditedAt.Format(DateTimeFormat)
	}
	if len(c.Mentioned) > 0 {
		res.Mentioned = make([]*Student, 0, len(c.Mentioned))
		for _, m := range c.Mentioned {
			res.Mentioned = append(res.Mentioned, NewStudentFromDomain(m))
		}
	}
	return res
}

// CommentList is one page of comments with pagination metadata.
type CommentList struct {
	Count int        `json:"count"`
	Total int64      `json:"total"`
	Page  int64      `json:"page"`
	Pages int64      `json:"pages"`
	Data  []*Comment `json:"data"`
}

func NewCommentListFromDomain(p *domain.CommentPage) CommentList {
	data := make([]*Comment, 0, len(p.Comments))
	for _, c := range p.Comments {
		data = append(data, NewCommentFromDomain(c))
	}
	return CommentList{
		Count: len(data),
		Total: p.Total,
		Page:  p.Page,
		Pages: p.Pages,
		Data:  data,
	}
}
