package comment

import (
	"context"
	"strings"
	"time"

	"github.com/seemaakh/bitefinder/domain"
	"github.com/seemaakh/bitefinder/internal/mention"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type service struct {
	commentRepo domain.CommentRepository
	studentRepo domain.StudentRepository
	itemRepo    domain.ItemRepository
	bloomRepo   domain.BloomRepository
}

var _ domain.CommentUsecase = (*service)(nil)

func NewService(commentRepo domain.CommentRepository, studentRepo domain.StudentRepository, itemRepo domain.ItemRepository, bloomRepo domain.BloomRepository) *service {
	return &service{
		commentRepo: commentRepo,
		studentRepo: studentRepo,
		itemRepo:    itemRepo,
		bloomRepo:   bloomRepo,
	}
}

func (s *service) itemMustExist(ctx context.Context, id int64) error {
	exists, err := s.bloomRepo.Exists(ctx, id)
	if err == nil && !exists {
		logrus.Warnf("bloom filter says item %d does not exist", id)
		return domain.ErrNotFound
	}

	// Bloom positives (and bloom errors) are confirmed against the store.
	ok, err := s.itemRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// resolveMentions extracts @usernames from text and resolves them to
// student IDs in one batch lookup. Unresolved names are dropped.
func (s *service) resolveMentions(ctx context.Context, text string) ([]int64, error) {
	names := mention.Dedupe(mention.Extract(text))
	if len(names) == 0 {
		return nil, nil
	}

	students, err := s.studentRepo.GetByUsernames(ctx, names)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]int64, len(students))
	for _, st := range students {
		byName[st.Username] = st.ID
	}

	ids := make([]int64, 0, len(names))
	for _, n := range names {
		if id, ok := byName[n]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *service) Create(ctx context.Context, text string, itemID, authorID, parentID int64) (*domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrBadParamInput
	}

	if err := s.itemMustExist(ctx, itemID); err != nil {
		return nil, err
	}
	if _, err := s.studentRepo.GetByID(ctx, authorID); err != nil {
		return nil, err
	}

	isReply := false
	if parentID != 0 {
		parent, err := s.commentRepo.GetByID(ctx, parentID)
		if err != nil {
			return nil, err
		}
		// Threads are one level deep: replying to a reply is rejected
		// rather than silently chaining.
		if parent.IsReply {
			return nil, domain.ErrBadParamInput
		}
		isReply = true
	}

	mentionedIDs, err := s.resolveMentions(ctx, text)
	if err != nil {
		return nil, err
	}

	c := &domain.Comment{
		ItemID:       itemID,
		AuthorID:     authorID,
		Text:         text,
		ParentID:     parentID,
		IsReply:      isReply,
		MentionedIDs: mentionedIDs,
	}
	if err := s.commentRepo.Store(ctx, c); err != nil {
		return nil, err
	}

	if err := s.fillStudentDetails(ctx, []*domain.Comment{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, id int64, text string, requesterID int64) (*domain.Comment, error) {
	c, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.AuthorID != requesterID {
		return nil, domain.ErrForbidden
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrBadParamInput
	}

	mentionedIDs, err := s.resolveMentions(ctx, text)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	c.Text = text
	c.MentionedIDs = mentionedIDs
	c.IsEdited = true
	c.EditedAt = &now
	c.UpdatedAt = now

	if err := s.commentRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	if err := s.fillStudentDetails(ctx, []*domain.Comment{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id int64, requesterID int64) error {
	c, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.AuthorID != requesterID {
		return domain.ErrForbidden
	}

	// Replies go first so a crash between the two steps leaves the parent
	// visible rather than orphaned children. The sweeper worker reconciles
	// the opposite case.
	if !c.IsReply {
		n, err := s.commentRepo.DeleteByParent(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			logrus.Infof("cascade deleted %d replies of comment %d", n, id)
		}
	}

	return s.commentRepo.Delete(ctx, id)
}

func (s *service) ToggleLike(ctx context.Context, id int64, studentID int64) (domain.LikeResult, error) {
	if _, err := s.commentRepo.GetByID(ctx, id); err != nil {
		return domain.LikeResult{}, err
	}
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return domain.LikeResult{}, err
	}

	liked, err := s.commentRepo.HasLiker(ctx, id, studentID)
	if err != nil {
		return domain.LikeResult{}, err
	}

	if liked {
		err = s.commentRepo.RemoveLiker(ctx, id, studentID)
	} else {
		err = s.commentRepo.AddLiker(ctx, id, studentID)
	}
	if err != nil {
		return domain.LikeResult{}, err
	}

	count, err := s.commentRepo.CountLikers(ctx, id)
	if err != nil {
		return domain.LikeResult{}, err
	}
	return domain.LikeResult{Liked: !liked, LikeCount: count}, nil
}

func (s *service) FetchByItem(ctx context.Context, itemID int64, includeReplies bool, page, limit int64) (*domain.CommentPage, error) {
	if err := s.itemMustExist(ctx, itemID); err != nil {
		return nil, err
	}

	filter := domain.CommentFilter{
		ItemID:       itemID,
		TopLevelOnly: !includeReplies,
	}
	res, err := s.fetchPage(ctx, filter, domain.NewestFirst, page, limit)
	if err != nil {
		return nil, err
	}

	if !includeReplies {
		if err := s.fillReplyCounts(ctx, res.Comments); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (s *service) FetchReplies(ctx context.Context, commentID int64, page, limit int64) (*domain.CommentPage, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}
	return s.fetchPage(ctx, domain.CommentFilter{ParentID: commentID}, domain.OldestFirst, page, limit)
}

func (s *service) FetchByStudent(ctx context.Context, studentID int64, page, limit int64) (*domain.CommentPage, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.fetchPage(ctx, domain.CommentFilter{AuthorID: studentID}, domain.NewestFirst, page, limit)
}

func (s *service) FetchMentions(ctx context.Context, studentID int64, page, limit int64) (*domain.CommentPage, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.fetchPage(ctx, domain.CommentFilter{MentionedID: studentID}, domain.NewestFirst, page, limit)
}

func (s *service) fetchPage(ctx context.Context, filter domain.CommentFilter, order domain.SortOrder, page, limit int64) (*domain.CommentPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var (
		comments []*domain.Comment
		total    int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		comments, err = s.commentRepo.Fetch(gctx, filter, order, offset, limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.commentRepo.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.fillStudentDetails(ctx, comments); err != nil {
		return nil, err
	}

	return &domain.CommentPage{
		Comments: comments,
		Total:    total,
		Page:     page,
		Pages:    (total + limit - 1) / limit,
	}, nil
}

// fillStudentDetails resolves author and mentioned-user display identities
// for a page of comments in one batch lookup.
func (s *service) fillStudentDetails(ctx context.Context, comments []*domain.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	idSet := make(map[int64]bool)
	ids := make([]int64, 0, len(comments))
	collect := func(id int64) {
		if !idSet[id] {
			idSet[id] = true
			ids = append(ids, id)
		}
	}
	for _, c := range comments {
		collect(c.AuthorID)
		for _, mid := range c.MentionedIDs {
			collect(mid)
		}
	}

	students, err := s.studentRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[int64]domain.Student, len(students))
	for _, st := range students {
		byID[st.ID] = st
	}

	for _, c := range comments {
		if author, ok := byID[c.AuthorID]; ok {
			a := author
			c.Author = &a
		}
		if len(c.MentionedIDs) > 0 {
			c.Mentioned = make([]*domain.Student, 0, len(c.MentionedIDs))
			for _, mid := range c.MentionedIDs {
				if st, ok := byID[mid]; ok {
					cp := st
					c.Mentioned = append(c.Mentioned, &cp)
				}
			}
		}
	}
	return nil
}

func (s *service) fillReplyCounts(ctx context.Context, comments []*domain.Comment) error {
	if len(comments) == 0 {
		return nil
	}
	ids := make([]int64, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	counts, err := s.commentRepo.CountRepliesByParents(ctx, ids)
	if err != nil {
		return err
	}
	for _, c := range comments {
		c.ReplyCount = counts[c.ID]
	}
	return nil
}
