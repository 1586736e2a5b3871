package service

import (
	"strings"
	"testing"

	"simple-board/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentFixture(t *testing.T) (*CommentService, *models.Post) {
	t.Helper()
	db := newTestDB(t)
	seedUser(t, db, "alice", "Alice")
	seedUser(t, db, "bob", "Bob")

	post, err := NewPostService(db).Create("a post", "body", "alice")
	require.NoError(t, err)
	return NewCommentService(db), post
}

func TestComment_CreateAndGet(t *testing.T) {
	svc, post := newCommentFixture(t)

	comment, err := svc.Create("nice post", post.ID, "bob")
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)

	view, err := svc.Get(comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "nice post", view.Content)
	assert.Equal(t, "Bob", view.AuthorName)
	assert.Equal(t, post.ID, view.PostID)
}

func TestComment_CreateChecksParents(t *testing.T) {
	svc, post := newCommentFixture(t)

	_, err := svc.Create("orphan", 9999, "bob")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create("ghost author", post.ID, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create("", post.ID, "bob")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Create(strings.Repeat("c", 1001), post.ID, "bob")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestComment_ListByPostOldestFirst(t *testing.T) {
	svc, post := newCommentFixture(t)

	first, err := svc.Create("first", post.ID, "alice")
	require.NoError(t, err)
	second, err := svc.Create("second", post.ID, "bob")
	require.NoError(t, err)

	comments, err := svc.ListByPost(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)
	assert.Equal(t, "Alice", comments[0].AuthorName)

	_, err = svc.ListByPost(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComment_ListByUser(t *testing.T) {
	svc, post := newCommentFixture(t)

	_, err := svc.Create("one", post.ID, "bob")
	require.NoError(t, err)
	_, err = svc.Create("two", post.ID, "bob")
	require.NoError(t, err)
	_, err = svc.Create("other", post.ID, "alice")
	require.NoError(t, err)

	mine, err := svc.ListByUser("bob")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	// newest first
	assert.Equal(t, "two", mine[0].Content)
	assert.Equal(t, "one", mine[1].Content)
}

func TestComment_UpdateOwnership(t *testing.T) {
	svc, post := newCommentFixture(t)

	comment, err := svc.Create("original", post.ID, "bob")
	require.NoError(t, err)

	err = svc.Update(comment.ID, "edited by stranger", "alice")
	assert.ErrorIs(t, err, ErrForbidden)

	view, err := svc.Get(comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", view.Content)

	require.NoError(t, svc.Update(comment.ID, "edited", "bob"))
	view, err = svc.Get(comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", view.Content)

	err = svc.Update(9999, "whatever", "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComment_DeleteOwnership(t *testing.T) {
	svc, post := newCommentFixture(t)

	comment, err := svc.Create("to delete", post.ID, "bob")
	require.NoError(t, err)

	err = svc.Delete(comment.ID, "alice")
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(comment.ID, "bob"))
	_, err = svc.Get(comment.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(comment.ID, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}
