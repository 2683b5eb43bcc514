package comment

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seemaakh/bitefinder/domain"
)

// In-memory fakes, enough to drive the service through every branch
// without a database.

type fakeCommentRepo struct {
	nextID   int64
	comments map[int64]*domain.Comment
	likes    map[int64]map[int64]bool
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		comments: make(map[int64]*domain.Comment),
		likes:    make(map[int64]map[int64]bool),
	}
}

func (r *fakeCommentRepo) Store(_ context.Context, c *domain.Comment) error {
	r.nextID++
	c.ID = r.nextID
	// Monotonic timestamps so ordering assertions are deterministic.
	c.CreatedAt = time.Unix(1000+r.nextID, 0)
	c.UpdatedAt = c.CreatedAt
	cp := *c
	r.comments[c.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id int64) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommentRepo) Update(_ context.Context, c *domain.Comment) error {
	if _, ok := r.comments[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.comments[c.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.comments, id)
	delete(r.likes, id)
	return nil
}

func (r *fakeCommentRepo) DeleteByParent(_ context.Context, parentID int64) (int64, error) {
	var n int64
	for id, c := range r.comments {
		if c.ParentID == parentID {
			delete(r.comments, id)
			delete(r.likes, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeCommentRepo) DeleteByItem(_ context.Context, itemID int64) error {
	for id, c := range r.comments {
		if c.ItemID == itemID {
			delete(r.comments, id)
			delete(r.likes, id)
		}
	}
	return nil
}

func (r *fakeCommentRepo) match(c *domain.Comment, f domain.CommentFilter) bool {
	if f.ItemID != 0 && c.ItemID != f.ItemID {
		return false
	}
	if f.ParentID != 0 && c.ParentID != f.ParentID {
		return false
	}
	if f.AuthorID != 0 && c.AuthorID != f.AuthorID {
		return false
	}
	if f.TopLevelOnly && c.IsReply {
		return false
	}
	if f.MentionedID != 0 {
		found := false
		for _, id := range c.MentionedIDs {
			if id == f.MentionedID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (r *fakeCommentRepo) Fetch(_ context.Context, f domain.CommentFilter, order domain.SortOrder, offset, limit int64) ([]*domain.Comment, error) {
	var out []*domain.Comment
	for _, c := range r.comments {
		if r.match(c, f) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if order == domain.OldestFirst {
			return out[i].ID < out[j].ID
		}
		return out[i].ID > out[j].ID
	})
	if offset >= int64(len(out)) {
		return nil, nil
	}
	out = out[offset:]
	if limit < int64(len(out)) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeCommentRepo) Count(_ context.Context, f domain.CommentFilter) (int64, error) {
	var n int64
	for _, c := range r.comments {
		if r.match(c, f) {
			n++
		}
	}
	return n, nil
}

func (r *fakeCommentRepo) CountRepliesByParents(_ context.Context, parentIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64)
	for _, c := range r.comments {
		for _, pid := range parentIDs {
			if c.ParentID == pid {
				counts[pid]++
			}
		}
	}
	return counts, nil
}

func (r *fakeCommentRepo) AddLiker(_ context.Context, commentID, studentID int64) error {
	if r.likes[commentID] == nil {
		r.likes[commentID] = make(map[int64]bool)
	}
	r.likes[commentID][studentID] = true
	return nil
}

func (r *fakeCommentRepo) RemoveLiker(_ context.Context, commentID, studentID int64) error {
	delete(r.likes[commentID], studentID)
	return nil
}

func (r *fakeCommentRepo) HasLiker(_ context.Context, commentID, studentID int64) (bool, error) {
	return r.likes[commentID][studentID], nil
}

func (r *fakeCommentRepo) CountLikers(_ context.Context, commentID int64) (int64, error) {
	return int64(len(r.likes[commentID])), nil
}

func (r *fakeCommentRepo) DeleteOrphanReplies(_ context.Context) (int64, error) {
	var n int64
	for id, c := range r.comments {
		if !c.IsReply {
			continue
		}
		if _, ok := r.comments[c.ParentID]; !ok {
			delete(r.comments, id)
			n++
		}
	}
	return n, nil
}

type fakeStudentRepo struct {
	students map[int64]domain.Student
}

func newFakeStudentRepo(students ...domain.Student) *fakeStudentRepo {
	r := &fakeStudentRepo{students: make(map[int64]domain.Student)}
	for _, s := range students {
		r.students[s.ID] = s
	}
	return r
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id int64) (domain.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return domain.Student{}, domain.ErrNotFound
	}
	return s, nil
}

func (r *fakeStudentRepo) GetByIDs(_ context.Context, ids []int64) ([]domain.Student, error) {
	var out []domain.Student
	for _, id := range ids {
		if s, ok := r.students[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStudentRepo) GetByEmail(_ context.Context, email string) (domain.Student, error) {
	for _, s := range r.students {
		if s.Email == email {
			return s, nil
		}
	}
	return domain.Student{}, domain.ErrNotFound
}

func (r *fakeStudentRepo) GetByUsername(_ context.Context, username string) (domain.Student, error) {
	for _, s := range r.students {
		if s.Username == username {
			return s, nil
		}
	}
	return domain.Student{}, domain.ErrNotFound
}

func (r *fakeStudentRepo) GetByUsernames(_ context.Context, usernames []string) ([]domain.Student, error) {
	var out []domain.Student
	for _, name := range usernames {
		for _, s := range r.students {
			if s.Username == name {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeStudentRepo) Insert(_ context.Context, s *domain.Student) error {
	r.students[s.ID] = *s
	return nil
}

func (r *fakeStudentRepo) Update(_ context.Context, s *domain.Student) error {
	r.students[s.ID] = *s
	return nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, id int64) error {
	delete(r.students, id)
	return nil
}

func (r *fakeStudentRepo) Fetch(_ context.Context) ([]domain.Student, error) {
	var out []domain.Student
	for _, s := range r.students {
		out = append(out, s)
	}
	return out, nil
}

type fakeItemRepo struct {
	items map[int64]domain.Item
}

func newFakeItemRepo(ids ...int64) *fakeItemRepo {
	r := &fakeItemRepo{items: make(map[int64]domain.Item)}
	for _, id := range ids {
		r.items[id] = domain.Item{ID: id}
	}
	return r
}

func (r *fakeItemRepo) GetByID(_ context.Context, id int64) (domain.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return domain.Item{}, domain.ErrNotFound
	}
	return it, nil
}

func (r *fakeItemRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.items[id]
	return ok, nil
}

func (r *fakeItemRepo) Store(_ context.Context, it *domain.Item) error {
	r.items[it.ID] = *it
	return nil
}

func (r *fakeItemRepo) Update(_ context.Context, it *domain.Item) error {
	r.items[it.ID] = *it
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id int64) error {
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) Fetch(_ context.Context, _ domain.ItemFilter, _, _ int64) ([]domain.Item, error) {
	return nil, nil
}

func (r *fakeItemRepo) Count(_ context.Context, _ domain.ItemFilter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakeItemRepo) FetchIDs(_ context.Context, cursor, limit int64) ([]int64, error) {
	var out []int64
	for id := range r.items {
		if id > cursor {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	if limit < int64(len(out)) {
		out = out[:limit]
	}
	return out, nil
}

// fakeBloom answers membership exactly, so the service's bloom fast path
// can be exercised both ways.
type fakeBloom struct {
	ids map[int64]bool
}

func newFakeBloom(ids ...int64) *fakeBloom {
	b := &fakeBloom{ids: make(map[int64]bool)}
	for _, id := range ids {
		b.ids[id] = true
	}
	return b
}

func (b *fakeBloom) Add(_ context.Context, id int64) error {
	b.ids[id] = true
	return nil
}

func (b *fakeBloom) Exists(_ context.Context, id int64) (bool, error) {
	return b.ids[id], nil
}

func (b *fakeBloom) BulkAdd(_ context.Context, ids []int64) error {
	for _, id := range ids {
		b.ids[id] = true
	}
	return nil
}

const testItemID = int64(42)

func newTestService() (*service, *fakeCommentRepo, *fakeStudentRepo) {
	commentRepo := newFakeCommentRepo()
	studentRepo := newFakeStudentRepo(
		domain.Student{ID: 1, Name: "Alice Rana", Username: "alice"},
		domain.Student{ID: 2, Name: "Bob Thapa", Username: "bob"},
		domain.Student{ID: 3, Name: "Carol Shrestha", Username: "carol"},
	)
	itemRepo := newFakeItemRepo(testItemID)
	return NewService(commentRepo, studentRepo, itemRepo, newFakeBloom(testItemID)), commentRepo, studentRepo
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("top level with mentions", func(t *testing.T) {
		svc, _, _ := newTestService()

		c, err := svc.Create(ctx, "found it near the canteen, thanks @bob and @carol!", testItemID, 1, 0)
		require.NoError(t, err)

		assert.NotZero(t, c.ID)
		assert.False(t, c.IsReply)
		assert.Equal(t, []int64{2, 3}, c.MentionedIDs)
		require.NotNil(t, c.Author)
		assert.Equal(t, "alice", c.Author.Username)
		require.Len(t, c.Mentioned, 2)
		assert.Equal(t, "bob", c.Mentioned[0].Username)
		assert.Equal(t, "carol", c.Mentioned[1].Username)
	})

	t.Run("blank text rejected", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Create(ctx, "   \n\t ", testItemID, 1, 0)
		assert.ErrorIs(t, err, domain.ErrBadParamInput)
	})

	t.Run("unknown item rejected", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Create(ctx, "hello", 999, 1, 0)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown author rejected", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Create(ctx, "hello", testItemID, 999, 0)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unresolved mentions dropped", func(t *testing.T) {
		svc, _, _ := newTestService()

		c, err := svc.Create(ctx, "ping @ghost and @bob", testItemID, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, []int64{2}, c.MentionedIDs)
	})

	t.Run("repeated mention stored once", func(t *testing.T) {
		svc, _, _ := newTestService()

		c, err := svc.Create(ctx, "@bob @bob @bob", testItemID, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, []int64{2}, c.MentionedIDs)
	})

	t.Run("reply to top level", func(t *testing.T) {
		svc, _, _ := newTestService()

		parent, err := svc.Create(ctx, "is this a blue bottle?", testItemID, 1, 0)
		require.NoError(t, err)

		reply, err := svc.Create(ctx, "yes, with stickers", testItemID, 2, parent.ID)
		require.NoError(t, err)
		assert.True(t, reply.IsReply)
		assert.Equal(t, parent.ID, reply.ParentID)
	})

	t.Run("reply to reply rejected", func(t *testing.T) {
		svc, _, _ := newTestService()

		parent, err := svc.Create(ctx, "parent", testItemID, 1, 0)
		require.NoError(t, err)
		reply, err := svc.Create(ctx, "reply", testItemID, 2, parent.ID)
		require.NoError(t, err)

		_, err = svc.Create(ctx, "reply to reply", testItemID, 3, reply.ID)
		assert.ErrorIs(t, err, domain.ErrBadParamInput)
	})

	t.Run("reply to missing parent rejected", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Create(ctx, "orphan", testItemID, 1, 777)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("author edits text and mentions", func(t *testing.T) {
		svc, _, _ := newTestService()

		c, err := svc.Create(ctx, "first draft @bob", testItemID, 1, 0)
		require.NoError(t, err)
		assert.False(t, c.IsEdited)

		updated, err := svc.Update(ctx, c.ID, "second draft @carol", 1)
		require.NoError(t, err)
		assert.Equal(t, "second draft @carol", updated.Text)
		assert.True(t, updated.IsEdited)
		require.NotNil(t, updated.EditedAt)
		assert.Equal(t, []int64{3}, updated.MentionedIDs)
	})

	t.Run("non author forbidden", func(t *testing.T) {
		svc, _, _ := newTestService()

		c, err := svc.Create(ctx, "mine", testItemID, 1, 0)
		require.NoError(t, err)

		_, err = svc.Update(ctx, c.ID, "stolen", 2)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("blank text rejected", func(t *testing.T) {
		svc, _, _ := newTestService()

		c, err := svc.Create(ctx, "mine", testItemID, 1, 0)
		require.NoError(t, err)

		_, err = svc.Update(ctx, c.ID, "  ", 1)
		assert.ErrorIs(t, err, domain.ErrBadParamInput)
	})

	t.Run("missing comment", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Update(ctx, 999, "text", 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades to replies", func(t *testing.T) {
		svc, repo, _ := newTestService()

		parent, err := svc.Create(ctx, "parent", testItemID, 1, 0)
		require.NoError(t, err)
		_, err = svc.Create(ctx, "reply one", testItemID, 2, parent.ID)
		require.NoError(t, err)
		_, err = svc.Create(ctx, "reply two", testItemID, 3, parent.ID)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, parent.ID, 1))
		assert.Empty(t, repo.comments)
	})

	t.Run("deleting a reply keeps siblings", func(t *testing.T) {
		svc, repo, _ := newTestService()

		parent, err := svc.Create(ctx, "parent", testItemID, 1, 0)
		require.NoError(t, err)
		r1, err := svc.Create(ctx, "reply one", testItemID, 2, parent.ID)
		require.NoError(t, err)
		_, err = svc.Create(ctx, "reply two", testItemID, 3, parent.ID)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, r1.ID, 2))
		assert.Len(t, repo.comments, 2)
		_, err = repo.GetByID(ctx, parent.ID)
		assert.NoError(t, err)
	})

	t.Run("non author forbidden", func(t *testing.T) {
		svc, _, _ := newTestService()

		c, err := svc.Create(ctx, "mine", testItemID, 1, 0)
		require.NoError(t, err)

		err = svc.Delete(ctx, c.ID, 2)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	c, err := svc.Create(ctx, "like me", testItemID, 1, 0)
	require.NoError(t, err)

	res, err := svc.ToggleLike(ctx, c.ID, 2)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, int64(1), res.LikeCount)

	res, err = svc.ToggleLike(ctx, c.ID, 3)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, int64(2), res.LikeCount)

	// Second toggle by the same student removes the like.
	res, err = svc.ToggleLike(ctx, c.ID, 2)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, int64(1), res.LikeCount)

	_, err = svc.ToggleLike(ctx, 999, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.ToggleLike(ctx, c.ID, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetchByItem(t *testing.T) {
	ctx := context.Background()

	t.Run("top level only with reply counts", func(t *testing.T) {
		svc, _, _ := newTestService()

		first, err := svc.Create(ctx, "first", testItemID, 1, 0)
		require.NoError(t, err)
		second, err := svc.Create(ctx, "second", testItemID, 2, 0)
		require.NoError(t, err)
		_, err = svc.Create(ctx, "r1", testItemID, 2, first.ID)
		require.NoError(t, err)
		_, err = svc.Create(ctx, "r2", testItemID, 3, first.ID)
		require.NoError(t, err)

		page, err := svc.FetchByItem(ctx, testItemID, false, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		require.Len(t, page.Comments, 2)

		// Newest first.
		assert.Equal(t, second.ID, page.Comments[0].ID)
		assert.Equal(t, first.ID, page.Comments[1].ID)
		assert.Equal(t, int64(0), page.Comments[0].ReplyCount)
		assert.Equal(t, int64(2), page.Comments[1].ReplyCount)
	})

	t.Run("include replies flattens the thread", func(t *testing.T) {
		svc, _, _ := newTestService()

		parent, err := svc.Create(ctx, "parent", testItemID, 1, 0)
		require.NoError(t, err)
		_, err = svc.Create(ctx, "reply", testItemID, 2, parent.ID)
		require.NoError(t, err)

		page, err := svc.FetchByItem(ctx, testItemID, true, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
	})

	t.Run("pagination", func(t *testing.T) {
		svc, _, _ := newTestService()

		for i := 0; i < 7; i++ {
			_, err := svc.Create(ctx, "comment", testItemID, 1, 0)
			require.NoError(t, err)
		}

		page, err := svc.FetchByItem(ctx, testItemID, false, 1, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(7), page.Total)
		assert.Equal(t, int64(3), page.Pages)
		assert.Len(t, page.Comments, 3)

		last, err := svc.FetchByItem(ctx, testItemID, false, 3, 3)
		require.NoError(t, err)
		assert.Len(t, last.Comments, 1)

		beyond, err := svc.FetchByItem(ctx, testItemID, false, 4, 3)
		require.NoError(t, err)
		assert.Empty(t, beyond.Comments)
	})

	t.Run("defaults applied to bad paging params", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Create(ctx, "comment", testItemID, 1, 0)
		require.NoError(t, err)

		page, err := svc.FetchByItem(ctx, testItemID, false, 0, -5)
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Page)
		assert.Len(t, page.Comments, 1)
	})

	t.Run("unknown item", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.FetchByItem(ctx, 999, false, 1, 10)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestFetchReplies(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	parent, err := svc.Create(ctx, "parent", testItemID, 1, 0)
	require.NoError(t, err)
	r1, err := svc.Create(ctx, "first reply", testItemID, 2, parent.ID)
	require.NoError(t, err)
	r2, err := svc.Create(ctx, "second reply", testItemID, 3, parent.ID)
	require.NoError(t, err)

	page, err := svc.FetchReplies(ctx, parent.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Comments, 2)

	// Oldest first, the reading order of a thread.
	assert.Equal(t, r1.ID, page.Comments[0].ID)
	assert.Equal(t, r2.ID, page.Comments[1].ID)

	_, err = svc.FetchReplies(ctx, 999, 1, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetchByStudent(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	mine, err := svc.Create(ctx, "mine", testItemID, 1, 0)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "theirs", testItemID, 2, 0)
	require.NoError(t, err)

	page, err := svc.FetchByStudent(ctx, 1, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Comments, 1)
	assert.Equal(t, mine.ID, page.Comments[0].ID)

	_, err = svc.FetchByStudent(ctx, 999, 1, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetchMentions(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	tagged, err := svc.Create(ctx, "hey @carol look", testItemID, 1, 0)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "nothing here", testItemID, 2, 0)
	require.NoError(t, err)

	page, err := svc.FetchMentions(ctx, 3, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Comments, 1)
	assert.Equal(t, tagged.ID, page.Comments[0].ID)

	_, err = svc.FetchMentions(ctx, 999, 1, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
