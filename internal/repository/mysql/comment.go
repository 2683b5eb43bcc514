package mysql

import (
	"context"
	"errors"

	"github.com/seemaakh/bitefinder/domain"
	"github.com/seemaakh/bitefinder/internal/repository/mysql/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type commentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

func applyFilter(q *gorm.DB, f domain.CommentFilter) *gorm.DB {
	if f.ItemID != 0 {
		q = q.Where("item_id = ?", f.ItemID)
	}
	if f.ParentID != 0 {
		q = q.Where("parent_id = ?", f.ParentID)
	}
	if f.AuthorID != 0 {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.MentionedID != 0 {
		q = q.Where("id IN (?)", q.Session(&gorm.Session{NewDB: true}).
			Model(&model.CommentMention{}).
			Select("comment_id").
			Where("student_id = ?", f.MentionedID))
	}
	if f.TopLevelOnly {
		q = q.Where("is_reply = ?", false)
	}
	return q
}

func (c *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := model.NewCommentFromDomain(comment)
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		comment.ID = m.ID
		comment.CreatedAt = m.CreatedAt
		comment.UpdatedAt = m.UpdatedAt

		return storeMentions(tx, m.ID, comment.MentionedIDs)
	})
}

func storeMentions(tx *gorm.DB, commentID int64, studentIDs []int64) error {
	if len(studentIDs) == 0 {
		return nil
	}
	rows := make([]model.CommentMention, 0, len(studentIDs))
	for i, sid := range studentIDs {
		rows = append(rows, model.CommentMention{
			CommentID: commentID,
			StudentID: sid,
			Seq:       i,
		})
	}
	return tx.Create(&rows).Error
}

func (c *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var m model.Comment
	err := c.DB.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}

	res := m.ToDomain()
	if err := c.fillRelations(ctx, []*domain.Comment{&res}); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Comment{}).
			Where("id = ?", comment.ID).
			Updates(map[string]any{
				"text":      comment.Text,
				"is_edited": comment.IsEdited,
				"edited_at": comment.EditedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		// Mentions are replaced wholesale, not merged.
		if err := tx.Where("comment_id = ?", comment.ID).
			Delete(&model.CommentMention{}).Error; err != nil {
			return err
		}
		return storeMentions(tx, comment.ID, comment.MentionedIDs)
	})
}

func (c *commentRepository) Delete(ctx context.Context, id int64) error {
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteCommentRows(tx, []int64{id})
	})
}

func deleteCommentRows(tx *gorm.DB, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("comment_id IN ?", ids).Delete(&model.CommentLike{}).Error; err != nil {
		return err
	}
	if err := tx.Where("comment_id IN ?", ids).Delete(&model.CommentMention{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&model.Comment{}).Error
}

func (c *commentRepository) DeleteByParent(ctx context.Context, parentID int64) (int64, error) {
	var ids []int64
	err := c.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("parent_id = ?", parentID).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	err = c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteCommentRows(tx, ids)
	})
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

func (c *commentRepository) DeleteByItem(ctx context.Context, itemID int64) error {
	var ids []int64
	err := c.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("item_id = ?", itemID).
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteCommentRows(tx, ids)
	})
}

func (c *commentRepository) Fetch(ctx context.Context, filter domain.CommentFilter, order domain.SortOrder, offset, limit int64) ([]*domain.Comment, error) {
	var comments []model.Comment
	q := applyFilter(c.DB.WithContext(ctx).Model(&model.Comment{}), filter)
	if order == domain.OldestFirst {
		q = q.Order("created_at ASC, id ASC")
	} else {
		q = q.Order("created_at DESC, id DESC")
	}
	err := q.Offset(int(offset)).Limit(int(limit)).Find(&comments).Error
	if err != nil {
		return nil, err
	}

	res := make([]*domain.Comment, 0, len(comments))
	for i := range comments {
		dc := comments[i].ToDomain()
		res = append(res, &dc)
	}
	if err := c.fillRelations(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *commentRepository) Count(ctx context.Context, filter domain.CommentFilter) (int64, error) {
	var total int64
	err := applyFilter(c.DB.WithContext(ctx).Model(&model.Comment{}), filter).
		Count(&total).Error
	return total, err
}

type parentCount struct {
	ParentID int64
	Cnt      int64
}

func (c *commentRepository) CountRepliesByParents(ctx context.Context, parentIDs []int64) (map[int64]int64, error) {
	res := make(map[int64]int64, len(parentIDs))
	if len(parentIDs) == 0 {
		return res, nil
	}

	var rows []parentCount
	err := c.DB.WithContext(ctx).Model(&model.Comment{}).
		Select("parent_id, COUNT(*) AS cnt").
		Where("parent_id IN ?", parentIDs).
		Group("parent_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		res[row.ParentID] = row.Cnt
	}
	return res, nil
}

func (c *commentRepository) AddLiker(ctx context.Context, commentID, studentID int64) error {
	return c.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.CommentLike{CommentID: commentID, StudentID: studentID}).Error
}

func (c *commentRepository) RemoveLiker(ctx context.Context, commentID, studentID int64) error {
	return c.DB.WithContext(ctx).
		Where("comment_id = ? AND student_id = ?", commentID, studentID).
		Delete(&model.CommentLike{}).Error
}

func (c *commentRepository) HasLiker(ctx context.Context, commentID, studentID int64) (bool, error) {
	var n int64
	err := c.DB.WithContext(ctx).Model(&model.CommentLike{}).
		Where("comment_id = ? AND student_id = ?", commentID, studentID).
		Count(&n).Error
	return n > 0, err
}

func (c *commentRepository) CountLikers(ctx context.Context, commentID int64) (int64, error) {
	var n int64
	err := c.DB.WithContext(ctx).Model(&model.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&n).Error
	return n, err
}

func (c *commentRepository) DeleteOrphanReplies(ctx context.Context) (int64, error) {
	var ids []int64
	err := c.DB.WithContext(ctx).Raw(
		`SELECT c.id FROM comment c
		 LEFT JOIN comment p ON c.parent_id = p.id
		 WHERE c.parent_id <> 0 AND p.id IS NULL`).
		Scan(&ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	err = c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteCommentRows(tx, ids)
	})
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

// fillRelations batch-loads mention and like rows for a page of comments,
// two queries for the whole page instead of 2xN.
func (c *commentRepository) fillRelations(ctx context.Context, comments []*domain.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	ids := make([]int64, len(comments))
	byID := make(map[int64]*domain.Comment, len(comments))
	for i, cm := range comments {
		ids[i] = cm.ID
		byID[cm.ID] = cm
	}

	var mentions []model.CommentMention
	err := c.DB.WithContext(ctx).
		Where("comment_id IN ?", ids).
		Order("comment_id, seq").
		Find(&mentions).Error
	if err != nil {
		return err
	}
	for _, m := range mentions {
		cm := byID[m.CommentID]
		cm.MentionedIDs = append(cm.MentionedIDs, m.StudentID)
	}

	var likes []model.CommentLike
	err = c.DB.WithContext(ctx).
		Where("comment_id IN ?", ids).
		Find(&likes).Error
	if err != nil {
		return err
	}
	for _, l := range likes {
		cm := byID[l.CommentID]
		cm.LikerIDs = append(cm.LikerIDs, l.StudentID)
	}
	for _, cm := range comments {
		cm.LikeCount = int64(len(cm.LikerIDs))
	}
	return nil
}
