package domain

import (
	"context"
	"time"
)

// Comment is a single entry in an item's discussion thread. A comment with
// ParentID set is a reply and is rendered nested under its parent; replies
// cannot themselves be replied to.
type Comment struct {
	ID        int64      `json:"id"`
	ItemID    int64      `json:"item_id"`
	AuthorID  int64      `json:"author_id"`
	Text      string     `json:"text"`
	ParentID  int64      `json:"parent_id"` // 0 for top-level comments
	IsReply   bool       `json:"is_reply"`
	IsEdited  bool       `json:"is_edited"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// MentionedIDs holds the resolved @username references in Text,
	// in extraction order. Replaced wholesale on edit.
	MentionedIDs []int64 `json:"mentioned_ids,omitempty"`
	// LikerIDs is the set of students who liked this comment.
	LikerIDs  []int64 `json:"liker_ids,omitempty"`
	LikeCount int64   `json:"like_count"`
	// ReplyCount is derived from the store, never persisted.
	ReplyCount int64 `json:"reply_count"`

	// Author 评论作者信息
	Author *Student `json:"author,omitempty"`
	// Mentioned 被@的用户信息
	Mentioned []*Student `json:"mentioned,omitempty"`
}

// CommentPage is one page of a comment listing.
type CommentPage struct {
	Comments []*Comment
	Total    int64
	Page     int64
	Pages    int64
}

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

// CommentUsecase 业务逻辑接口
type CommentUsecase interface {
	// Create stores a new comment or reply. parentID == 0 means top-level.
	// Returns ErrNotFound if the item, author or parent comment is missing,
	// ErrBadParamInput if text is blank or the parent is itself a reply.
	Create(ctx context.Context, text string, itemID, authorID, parentID int64) (*Comment, error)

	// Update replaces the comment text and re-resolves mentions.
	// Returns ErrForbidden unless requesterID is the comment's author.
	Update(ctx context.Context, id int64, text string, requesterID int64) (*Comment, error)

	// Delete removes a comment. Deleting a top-level comment also removes
	// its replies (best effort, one level deep).
	Delete(ctx context.Context, id int64, requesterID int64) error

	// ToggleLike likes the comment if the student has not liked it yet,
	// and unlikes it otherwise.
	ToggleLike(ctx context.Context, id int64, studentID int64) (LikeResult, error)

	// FetchByItem lists an item's comments newest-first. When includeReplies
	// is false only top-level comments are returned, each carrying its
	// reply count.
	FetchByItem(ctx context.Context, itemID int64, includeReplies bool, page, limit int64) (*CommentPage, error)

	// FetchReplies lists a comment's replies oldest-first.
	FetchReplies(ctx context.Context, commentID int64, page, limit int64) (*CommentPage, error)

	// FetchByStudent lists comments authored by a student, newest-first.
	FetchByStudent(ctx context.Context, studentID int64, page, limit int64) (*CommentPage, error)

	// FetchMentions lists comments mentioning a student, newest-first.
	FetchMentions(ctx context.Context, studentID int64, page, limit int64) (*CommentPage, error)
}

// CommentFilter narrows a comment listing to one equality predicate set.
// Zero values mean "no constraint"; TopLevelOnly excludes replies.
type CommentFilter struct {
	ItemID       int64
	ParentID     int64
	AuthorID     int64
	MentionedID  int64
	TopLevelOnly bool
}

// SortOrder of a comment listing by creation time.
type SortOrder int

const (
	NewestFirst SortOrder = iota
	OldestFirst
)

// CommentRepository 数据存取接口
type CommentRepository interface {
	// Store inserts the comment together with its mention rows and
	// backfills the generated ID and timestamps.
	Store(ctx context.Context, c *Comment) error

	// GetByID returns the comment with mentions and likers loaded.
	// Returns ErrNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*Comment, error)

	// Update persists text, edit flags and the replaced mention set.
	Update(ctx context.Context, c *Comment) error

	// Delete removes a single comment with its mention and like rows.
	Delete(ctx context.Context, id int64) error

	// DeleteByParent removes all direct replies of a comment, returning
	// how many were removed.
	DeleteByParent(ctx context.Context, parentID int64) (int64, error)

	// DeleteByItem removes every comment of an item, replies included.
	DeleteByItem(ctx context.Context, itemID int64) error

	// Fetch returns one page of comments matching the filter.
	Fetch(ctx context.Context, filter CommentFilter, order SortOrder, offset, limit int64) ([]*Comment, error)

	// Count returns the number of comments matching the filter.
	Count(ctx context.Context, filter CommentFilter) (int64, error)

	// CountRepliesByParents returns parentID -> direct reply count for the
	// given comment IDs in a single query.
	CountRepliesByParents(ctx context.Context, parentIDs []int64) (map[int64]int64, error)

	// AddLiker / RemoveLiker mutate like-set membership for one student.
	// Both are no-ops when the membership already matches.
	AddLiker(ctx context.Context, commentID, studentID int64) error
	RemoveLiker(ctx context.Context, commentID, studentID int64) error
	HasLiker(ctx context.Context, commentID, studentID int64) (bool, error)
	CountLikers(ctx context.Context, commentID int64) (int64, error)

	// DeleteOrphanReplies removes replies whose parent comment no longer
	// exists, returning how many were removed. Used by the sweeper worker.
	DeleteOrphanReplies(ctx context.Context) (int64, error)
}
