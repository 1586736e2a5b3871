package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"simple-board/internal/models"
	"simple-board/internal/util"

	"gorm.io/gorm"
)

const (
	maxPageLimit       = 100
	defaultRankLimit   = 5
	searchResultCap    = 100
	searchSnippetRunes = 200
)

// PostService implements the board's post operations over gorm.
type PostService struct {
	DB *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{DB: db}
}

// PostSummary is a list-row view of a post (no body).
type PostSummary struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	ViewCount    int64     `json:"views"`
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_username"`
	CommentCount int64     `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PostDetail is the full post as returned by Get and Search.
type PostDetail struct {
	PostSummary
	Content string `json:"content"`
}

// PostPage is one page of the post listing.
type PostPage struct {
	Posts      []PostSummary `json:"posts"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int64         `json:"total_pages"`
}

// clampPage normalizes page/limit: page >= 1, 1 <= limit <= 100.
func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// Create stores a new post with a zero view counter.
func (s *PostService) Create(title, content, userID string) (*models.Post, error) {
	title = strings.TrimSpace(title)

	if err := util.ValidateTitle(title); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if err := util.ValidateContent(content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	post := models.Post{
		Title:    title,
		Content:  content,
		AuthorID: userID,
	}
	if err := s.DB.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &post, nil
}

// Get returns a post with its author name and comment count, incrementing
// the view counter first. The increment is a single SQL expression, so it
// never decreases the counter even when reads race.
func (s *PostService) Get(id uint) (*PostDetail, error) {
	res := s.DB.Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if res.Error != nil {
		return nil, fmt.Errorf("increment views: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: post not found", ErrNotFound)
	}

	var post models.Post
	if err := s.DB.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post not found", ErrNotFound)
		}
		return nil, fmt.Errorf("load post: %w", err)
	}

	detail := PostDetail{PostSummary: s.summarize(&post), Content: post.Content}
	if err := s.fillCounts([]*PostSummary{&detail.PostSummary}); err != nil {
		return nil, err
	}
	return &detail, nil
}

// List returns one page of posts, newest first, plus the total row and page
// counts. Out-of-range page/limit values are clamped.
func (s *PostService) List(page, limit int) (*PostPage, error) {
	page, limit = clampPage(page, limit)

	var total int64
	if err := s.DB.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	var posts []models.Post
	err := s.DB.Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	summaries, err := s.summarizeAll(posts)
	if err != nil {
		return nil, err
	}
	return &PostPage{
		Posts:      summaries,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}, nil
}

// Update applies the supplied fields after the ownership check and refreshes
// updated_at. Title and content may be updated independently.
func (s *PostService) Update(id uint, title, content *string, userID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: post not found", ErrNotFound)
			}
			return fmt.Errorf("load post: %w", err)
		}
		if err := requireOwner(post.AuthorID, userID); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if title != nil {
			t := strings.TrimSpace(*title)
			if err := util.ValidateTitle(t); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
			}
			updates["title"] = t
		}
		if content != nil {
			if err := util.ValidateContent(*content); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
			}
			updates["content"] = *content
		}
		if len(updates) == 0 {
			return nil
		}
		updates["updated_at"] = time.Now()

		if err := tx.Model(&post).Updates(updates).Error; err != nil {
			return fmt.Errorf("update post: %w", err)
		}
		return nil
	})
}

// Delete removes the post and its comments in one transaction.
func (s *PostService) Delete(id uint, userID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: post not found", ErrNotFound)
			}
			return fmt.Errorf("load post: %w", err)
		}
		if err := requireOwner(post.AuthorID, userID); err != nil {
			return err
		}

		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := tx.Delete(&post).Error; err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		return nil
	})
}

// Search matches the keyword case-insensitively against title or content,
// newest first, capped at 100 results. Blank keywords are rejected.
func (s *PostService) Search(keyword string) ([]PostDetail, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("%w: search keyword cannot be empty", ErrInvalidArgument)
	}

	pattern := "%" + strings.ToLower(keyword) + "%"
	var posts []models.Post
	err := s.DB.
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern).
		Order("created_at DESC, id DESC").
		Limit(searchResultCap).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}

	summaries, err := s.summarizeAll(posts)
	if err != nil {
		return nil, err
	}
	details := make([]PostDetail, len(posts))
	for i := range posts {
		details[i] = PostDetail{PostSummary: summaries[i], Content: snippet(posts[i].Content)}
	}
	return details, nil
}

// Recent returns the newest posts.
func (s *PostService) Recent(limit int) ([]PostSummary, error) {
	_, limit = clampPage(1, rankLimit(limit))

	var posts []models.Post
	err := s.DB.Order("created_at DESC, id DESC").Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("recent posts: %w", err)
	}
	return s.summarizeAll(posts)
}

// Popular ranks posts by comment count, newest first among ties.
func (s *PostService) Popular(limit int) ([]PostSummary, error) {
	_, limit = clampPage(1, rankLimit(limit))

	var posts []models.Post
	err := s.DB.Model(&models.Post{}).
		Select("posts.*").
		Joins("LEFT JOIN comments ON comments.post_id = posts.id").
		Group("posts.id").
		Order("COUNT(comments.id) DESC, posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("popular posts: %w", err)
	}
	return s.summarizeAll(posts)
}

// ListByUser returns every post by one author, newest first.
func (s *PostService) ListByUser(userID string) ([]PostSummary, error) {
	var posts []models.Post
	err := s.DB.Where("author_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list user posts: %w", err)
	}
	return s.summarizeAll(posts)
}

func rankLimit(limit int) int {
	if limit <= 0 {
		return defaultRankLimit
	}
	return limit
}

func snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= searchSnippetRunes {
		return content
	}
	return string(runes[:searchSnippetRunes]) + "..."
}

func (s *PostService) summarize(post *models.Post) PostSummary {
	return PostSummary{
		ID:        post.ID,
		Title:     post.Title,
		ViewCount: post.ViewCount,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func (s *PostService) summarizeAll(posts []models.Post) ([]PostSummary, error) {
	summaries := make([]PostSummary, len(posts))
	refs := make([]*PostSummary, len(posts))
	for i := range posts {
		summaries[i] = s.summarize(&posts[i])
		refs[i] = &summaries[i]
	}
	if err := s.fillCounts(refs); err != nil {
		return nil, err
	}
	return summaries, nil
}

// fillCounts resolves author names and comment counts for the given
// summaries with two grouped queries instead of per-row lookups.
func (s *PostService) fillCounts(summaries []*PostSummary) error {
	if len(summaries) == 0 {
		return nil
	}

	postIDs := make([]uint, 0, len(summaries))
	authorIDs := make([]string, 0, len(summaries))
	for _, sum := range summaries {
		postIDs = append(postIDs, sum.ID)
		authorIDs = append(authorIDs, sum.AuthorID)
	}

	type countRow struct {
		PostID uint
		N      int64
	}
	var counts []countRow
	err := s.DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&counts).Error
	if err != nil {
		return fmt.Errorf("count comments: %w", err)
	}
	countByPost := make(map[uint]int64, len(counts))
	for _, row := range counts {
		countByPost[row.PostID] = row.N
	}

	var users []models.User
	if err := s.DB.Where("id IN ?", authorIDs).Find(&users).Error; err != nil {
		return fmt.Errorf("load authors: %w", err)
	}
	nameByID := make(map[string]string, len(users))
	for _, u := range users {
		nameByID[u.ID] = u.Username
	}

	for _, sum := range summaries {
		sum.CommentCount = countByPost[sum.ID]
		sum.AuthorName = nameByID[sum.AuthorID]
	}
	return nil
}
