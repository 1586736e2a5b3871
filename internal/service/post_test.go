package service

import (
	"fmt"
	"strings"
	"testing"

	"simple-board/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostService(t *testing.T) *PostService {
	t.Helper()
	svc := NewPostService(newTestDB(t))
	seedUser(t, svc.DB, "alice", "Alice")
	seedUser(t, svc.DB, "bob", "Bob")
	return svc
}

func TestPost_CreateAndGet(t *testing.T) {
	svc := newPostService(t)

	post, err := svc.Create("Hello", "first post body", "alice")
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Zero(t, post.ViewCount)

	detail, err := svc.Get(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", detail.Title)
	assert.Equal(t, "first post body", detail.Content)
	assert.Equal(t, "Alice", detail.AuthorName)

	_, err = svc.Get(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPost_CreateValidation(t *testing.T) {
	svc := newPostService(t)

	_, err := svc.Create("", "body", "alice")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Create(strings.Repeat("t", 201), "body", "alice")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Create("title", strings.Repeat("b", 50001), "alice")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Create("title", "body", "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPost_ViewCountIncrementsPerGet(t *testing.T) {
	svc := newPostService(t)
	post, err := svc.Create("Hello", "body", "alice")
	require.NoError(t, err)

	first, err := svc.Get(post.ID)
	require.NoError(t, err)
	second, err := svc.Get(post.ID)
	require.NoError(t, err)

	assert.Equal(t, post.ViewCount+1, first.ViewCount)
	assert.Equal(t, post.ViewCount+2, second.ViewCount)
}

func TestPost_ListPagination(t *testing.T) {
	svc := newPostService(t)
	for i := 1; i <= 25; i++ {
		_, err := svc.Create(fmt.Sprintf("post %02d", i), "body", "alice")
		require.NoError(t, err)
	}

	page, err := svc.List(1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 10)
	assert.EqualValues(t, 25, page.Total)
	assert.EqualValues(t, 3, page.TotalPages)
	// newest first
	assert.Equal(t, "post 25", page.Posts[0].Title)

	last, err := svc.List(3, 10)
	require.NoError(t, err)
	assert.Len(t, last.Posts, 5)

	// out-of-range values are clamped, not rejected
	clamped, err := svc.List(0, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, clamped.Page)
	assert.Equal(t, 100, clamped.Limit)
}

func TestPost_UpdateOwnershipAndFields(t *testing.T) {
	svc := newPostService(t)
	post, err := svc.Create("Hello", "body", "alice")
	require.NoError(t, err)

	// non-owner is rejected and nothing changes
	title := "hijacked"
	err = svc.Update(post.ID, &title, nil, "bob")
	assert.ErrorIs(t, err, ErrForbidden)

	var unchanged models.Post
	require.NoError(t, svc.DB.First(&unchanged, post.ID).Error)
	assert.Equal(t, "Hello", unchanged.Title)
	assert.Equal(t, "body", unchanged.Content)

	// owner updates only the supplied field
	newTitle := "Hello v2"
	require.NoError(t, svc.Update(post.ID, &newTitle, nil, "alice"))

	var updated models.Post
	require.NoError(t, svc.DB.First(&updated, post.ID).Error)
	assert.Equal(t, "Hello v2", updated.Title)
	assert.Equal(t, "body", updated.Content)

	err = svc.Update(9999, &newTitle, nil, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPost_DeleteCascadesComments(t *testing.T) {
	svc := newPostService(t)
	comments := NewCommentService(svc.DB)

	post, err := svc.Create("Hello", "body", "alice")
	require.NoError(t, err)
	c1, err := comments.Create("first", post.ID, "bob")
	require.NoError(t, err)
	c2, err := comments.Create("second", post.ID, "alice")
	require.NoError(t, err)

	// non-owner cannot delete
	err = svc.Delete(post.ID, "bob")
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(post.ID, "alice"))

	_, err = svc.Get(post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = comments.Get(c1.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = comments.Get(c2.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPost_SearchMatchesBody(t *testing.T) {
	svc := newPostService(t)
	_, err := svc.Create("unrelated title", "the keyword zanzibar hides in the body", "alice")
	require.NoError(t, err)
	_, err = svc.Create("Zanzibar in title", "plain body", "alice")
	require.NoError(t, err)
	_, err = svc.Create("nothing here", "plain body", "alice")
	require.NoError(t, err)

	results, err := svc.Search("zanzibar")
	require.NoError(t, err)
	require.Len(t, results, 2)

	// case-insensitive, matches title or body
	titles := []string{results[0].Title, results[1].Title}
	assert.Contains(t, titles, "unrelated title")
	assert.Contains(t, titles, "Zanzibar in title")

	_, err = svc.Search("   ")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPost_SearchReturnsSnippet(t *testing.T) {
	svc := newPostService(t)
	long := "needle " + strings.Repeat("x", 500)
	_, err := svc.Create("long one", long, "alice")
	require.NoError(t, err)

	results, err := svc.Search("needle")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, strings.HasSuffix(results[0].Content, "..."))
	assert.Less(t, len(results[0].Content), len(long))
}

func TestPost_PopularOrdersByCommentCount(t *testing.T) {
	svc := newPostService(t)
	comments := NewCommentService(svc.DB)

	quiet, err := svc.Create("quiet", "body", "alice")
	require.NoError(t, err)
	busy, err := svc.Create("busy", "body", "alice")
	require.NoError(t, err)
	newest, err := svc.Create("newest and quiet", "body", "alice")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := comments.Create("hi", busy.ID, "bob")
		require.NoError(t, err)
	}
	_, err = comments.Create("hi", quiet.ID, "bob")
	require.NoError(t, err)

	popular, err := svc.Popular(10)
	require.NoError(t, err)
	require.Len(t, popular, 3)
	assert.Equal(t, busy.ID, popular[0].ID)
	assert.EqualValues(t, 3, popular[0].CommentCount)
	assert.Equal(t, quiet.ID, popular[1].ID)
	// zero-comment tie falls back to creation order
	assert.Equal(t, newest.ID, popular[2].ID)
}

func TestPost_RecentAndByUser(t *testing.T) {
	svc := newPostService(t)
	_, err := svc.Create("a", "body", "alice")
	require.NoError(t, err)
	_, err = svc.Create("b", "body", "bob")
	require.NoError(t, err)
	_, err = svc.Create("c", "body", "alice")
	require.NoError(t, err)

	recent, err := svc.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].Title)
	assert.Equal(t, "b", recent[1].Title)

	mine, err := svc.ListByUser("alice")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "c", mine[0].Title)
	assert.Equal(t, "a", mine[1].Title)
}
