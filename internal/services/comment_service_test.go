package services

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"triveni_backend/internal/models"
	"triveni_backend/internal/services/dto"
	"triveni_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentCounter(t *testing.T, f *fixture, blogID string) int {
	t.Helper()
	blog, err := f.services.BlogService.GetByID(f.ctx, f.db, blogID)
	require.NoError(t, err)
	return blog.Comments
}

func TestAddComment_DefaultsAndCounter(t *testing.T) {
	f := newFixture(t)
	blog := testutil.CreateBlog(t, f.db)

	comment, err := f.services.CommentService.AddComment(f.ctx, f.db, blog.ID, &dto.CommentRequest{
		Name:    " Meera ",
		Email:   "Meera@Example.com",
		Comment: "Clear explanation.",
	})
	require.NoError(t, err)

	assert.Equal(t, "Meera", comment.Name)
	assert.Equal(t, "meera@example.com", comment.Email)
	assert.Equal(t, DefaultCommentRating, comment.Rating)
	assert.Equal(t, models.CommentStatusApproved, comment.Status)
	assert.Empty(t, comment.Replies)
	assert.Equal(t, 1, commentCounter(t, f, blog.ID))
}

func TestAddComment_Rejections(t *testing.T) {
	f := newFixture(t)
	closed := testutil.CreateBlog(t, f.db, func(b *models.Blog) { b.AllowComments = false })
	open := testutil.CreateBlog(t, f.db)

	req := &dto.CommentRequest{Name: "Meera", Email: "meera@example.com", Comment: "Hi"}

	_, err := f.services.CommentService.AddComment(f.ctx, f.db, closed.ID, req)
	requireAppError(t, err, http.StatusBadRequest, "Comments are disabled for this blog post")
	assert.Zero(t, commentCounter(t, f, closed.ID))

	_, err = f.services.CommentService.AddComment(f.ctx, f.db, "missing", req)
	requireAppError(t, err, http.StatusNotFound, "Blog post not found")

	rating := 6
	_, err = f.services.CommentService.AddComment(f.ctx, f.db, open.ID, &dto.CommentRequest{
		Name:    "Meera",
		Email:   "nope",
		Comment: "Hi",
		Rating:  &rating,
	})
	fields := validationFields(t, err)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "rating")
	assert.Zero(t, commentCounter(t, f, open.ID))
}

func TestListComments_ApprovedVersusAll(t *testing.T) {
	f := newFixture(t)
	blog := testutil.CreateBlog(t, f.db)
	testutil.CreateComment(t, f.db, blog)
	testutil.CreateComment(t, f.db, blog, func(c *models.Comment) { c.Status = models.CommentStatusPending })
	testutil.CreateComment(t, f.db, blog, func(c *models.Comment) { c.Status = models.CommentStatusRejected })

	approved, err := f.services.CommentService.ListApproved(f.ctx, f.db, blog.ID)
	require.NoError(t, err)
	assert.Len(t, approved, 1)

	all, err := f.services.CommentService.ListAll(f.ctx, f.db, blog.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = f.services.CommentService.ListApproved(f.ctx, f.db, "missing")
	requireAppError(t, err, http.StatusNotFound, "Blog post not found")
}

func TestUpdateComment_Moderation(t *testing.T) {
	f := newFixture(t)
	blog := testutil.CreateBlog(t, f.db)
	comment := testutil.CreateComment(t, f.db, blog)

	rejected := string(models.CommentStatusRejected)
	updated, err := f.services.CommentService.UpdateComment(f.ctx, f.db, comment.ID, &dto.UpdateCommentRequest{Status: &rejected})
	require.NoError(t, err)
	assert.Equal(t, models.CommentStatusRejected, updated.Status)

	bogus := "spam"
	_, err = f.services.CommentService.UpdateComment(f.ctx, f.db, comment.ID, &dto.UpdateCommentRequest{Status: &bogus})
	assert.Contains(t, validationFields(t, err), "status")
}

func TestDeleteComment_DecrementsCounter(t *testing.T) {
	f := newFixture(t)
	blog := testutil.CreateBlog(t, f.db)

	comment, err := f.services.CommentService.AddComment(f.ctx, f.db, blog.ID, &dto.CommentRequest{
		Name: "Meera", Email: "meera@example.com", Comment: "Useful",
	})
	require.NoError(t, err)
	require.Equal(t, 1, commentCounter(t, f, blog.ID))

	require.NoError(t, f.services.CommentService.DeleteComment(f.ctx, f.db, comment.ID))
	assert.Zero(t, commentCounter(t, f, blog.ID))

	err = f.services.CommentService.DeleteComment(f.ctx, f.db, comment.ID)
	requireAppError(t, err, http.StatusNotFound, "Comment not found")
	assert.Zero(t, commentCounter(t, f, blog.ID), "счетчик не уходит ниже нуля")
}

func TestAddReply_AppendsInOrder(t *testing.T) {
	f := newFixture(t)
	blog := testutil.CreateBlog(t, f.db)
	comment := testutil.CreateComment(t, f.db, blog)

	_, err := f.services.CommentService.AddReply(f.ctx, f.db, comment.ID, &dto.ReplyRequest{
		Name: "Triveni Team", Email: "Team@Triveni.com", Comment: "Thank you!",
	})
	require.NoError(t, err)

	updated, err := f.services.CommentService.AddReply(f.ctx, f.db, comment.ID, &dto.ReplyRequest{
		Name: "Triveni Team", Email: "team@triveni.com", Comment: "Follow-up",
	})
	require.NoError(t, err)

	require.Len(t, updated.Replies, 2)
	assert.Equal(t, "Thank you!", updated.Replies[0].Comment)
	assert.Equal(t, "team@triveni.com", updated.Replies[0].Email)
	assert.Equal(t, "Follow-up", updated.Replies[1].Comment)
	assert.False(t, updated.Replies[1].RepliedAt.IsZero())

	_, err = f.services.CommentService.AddReply(f.ctx, f.db, comment.ID, &dto.ReplyRequest{Name: "x", Email: "x@y.z"})
	assert.Contains(t, validationFields(t, err), "comment")
}

func TestAddReply_ConcurrentRepliesAreAllKept(t *testing.T) {
	f := newFixture(t)
	blog := testutil.CreateBlog(t, f.db)
	comment := testutil.CreateComment(t, f.db, blog)

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.services.CommentService.AddReply(f.ctx, f.db, comment.ID, &dto.ReplyRequest{
				Name: "Triveni Team", Email: "team@triveni.com", Comment: fmt.Sprintf("reply %d", i),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var stored models.Comment
	require.NoError(t, f.db.First(&stored, "id = ?", comment.ID).Error)
	assert.Len(t, stored.Replies, n)
}

func TestAddReply_UnknownComment(t *testing.T) {
	f := newFixture(t)
	_, err := f.services.CommentService.AddReply(f.ctx, f.db, "3f1c9d2e-0000-4000-8000-000000000000", &dto.ReplyRequest{
		Name: "Triveni Team", Email: "team@triveni.com", Comment: "Hi",
	})
	requireAppError(t, err, http.StatusNotFound, "Comment not found")
}
