package model

import (
	"time"

	"github.com/seemaakh/bitefinder/domain"
)

type Comment struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	ItemID    int64      `gorm:"column:item_id;not null;index:idx_comment_item"`
	AuthorID  int64      `gorm:"column:author_id;not null;index:idx_comment_author"`
	Text      string     `gorm:"type:text;not null"`
	ParentID  int64      `gorm:"column:parent_id;default:0;index:idx_comment_parent"`
	IsReply   bool       `gorm:"column:is_reply;default:false"`
	IsEdited  bool       `gorm:"column:is_edited;default:false"`
	EditedAt  *time.Time `gorm:"column:edited_at"`
	CreatedAt time.Time  `gorm:"type:datetime"`
	UpdatedAt time.Time  `gorm:"type:datetime"`
}

func (Comment) TableName() string {
	return "comment"
}

// CommentMention links a comment to a student resolved from an @username.
// Seq preserves the order the mention appeared in the text.
type CommentMention struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	CommentID int64 `gorm:"column:comment_id;not null;uniqueIndex:uniq_mention,priority:1;index:idx_mention_student_rev"`
	StudentID int64 `gorm:"column:student_id;not null;uniqueIndex:uniq_mention,priority:2;index:idx_mention_student"`
	Seq       int   `gorm:"column:seq;not null"`
}

func (CommentMention) TableName() string {
	return "comment_mention"
}

// CommentLike is one student's like on one comment. The composite primary
// key gives set semantics, so concurrent toggles by different students
// never clobber each other.
type CommentLike struct {
	CommentID int64 `gorm:"column:comment_id;primaryKey"`
	StudentID int64 `gorm:"column:student_id;primaryKey"`
}

func (CommentLike) TableName() string {
	return "comment_like"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	return &Comment{
		ID:        c.ID,
		ItemID:    c.ItemID,
		AuthorID:  c.AuthorID,
		Text:      c.Text,
		ParentID:  c.ParentID,
		IsReply:   c.IsReply,
		IsEdited:  c.IsEdited,
		EditedAt:  c.EditedAt,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		ID:        m.ID,
		ItemID:    m.ItemID,
		AuthorID:  m.AuthorID,
		Text:      m.Text,
		ParentID:  m.ParentID,
		IsReply:   m.IsReply,
		IsEdited:  m.IsEdited,
		EditedAt:  m.EditedAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
