package service

import (
	"errors"
	"fmt"
	"time"

	"simple-board/internal/models"
	"simple-board/internal/util"

	"gorm.io/gorm"
)

// CommentService implements comment operations over gorm.
type CommentService struct {
	DB *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{DB: db}
}

// CommentView is a comment with its author's display name resolved.
type CommentView struct {
	ID         uint      `json:"id"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_username"`
	PostID     uint      `json:"post_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Create stores a comment after checking both the user and the parent post.
func (s *CommentService) Create(content string, postID uint, userID string) (*models.Comment, error) {
	if err := util.ValidateComment(content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	if err := s.DB.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check post: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: post not found", ErrNotFound)
	}

	comment := models.Comment{
		Content:  content,
		AuthorID: userID,
		PostID:   postID,
	}
	if err := s.DB.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &comment, nil
}

// Get returns one comment.
func (s *CommentService) Get(id uint) (*CommentView, error) {
	var comment models.Comment
	if err := s.DB.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment not found", ErrNotFound)
		}
		return nil, fmt.Errorf("load comment: %w", err)
	}
	views, err := s.resolveAuthors([]models.Comment{comment})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListByPost returns a post's comments oldest first. The post must exist.
func (s *CommentService) ListByPost(postID uint) ([]CommentView, error) {
	var count int64
	if err := s.DB.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check post: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: post not found", ErrNotFound)
	}

	var comments []models.Comment
	err := s.DB.Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return s.resolveAuthors(comments)
}

// ListByUser returns every comment by one author, newest first.
func (s *CommentService) ListByUser(userID string) ([]CommentView, error) {
	var comments []models.Comment
	err := s.DB.Where("author_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list user comments: %w", err)
	}
	return s.resolveAuthors(comments)
}

// Update replaces the comment body after the ownership check.
func (s *CommentService) Update(id uint, content, userID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: comment not found", ErrNotFound)
			}
			return fmt.Errorf("load comment: %w", err)
		}
		if err := requireOwner(comment.AuthorID, userID); err != nil {
			return err
		}
		if err := util.ValidateComment(content); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}

		updates := map[string]interface{}{
			"content":    content,
			"updated_at": time.Now(),
		}
		if err := tx.Model(&comment).Updates(updates).Error; err != nil {
			return fmt.Errorf("update comment: %w", err)
		}
		return nil
	})
}

// Delete removes the comment after the ownership check.
func (s *CommentService) Delete(id uint, userID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: comment not found", ErrNotFound)
			}
			return fmt.Errorf("load comment: %w", err)
		}
		if err := requireOwner(comment.AuthorID, userID); err != nil {
			return err
		}
		if err := tx.Delete(&comment).Error; err != nil {
			return fmt.Errorf("delete comment: %w", err)
		}
		return nil
	})
}

func (s *CommentService) resolveAuthors(comments []models.Comment) ([]CommentView, error) {
	views := make([]CommentView, len(comments))
	if len(comments) == 0 {
		return views, nil
	}

	authorIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.AuthorID)
	}
	var users []models.User
	if err := s.DB.Where("id IN ?", authorIDs).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	nameByID := make(map[string]string, len(users))
	for _, u := range users {
		nameByID[u.ID] = u.Username
	}

	for i, c := range comments {
		views[i] = CommentView{
			ID:         c.ID,
			Content:    c.Content,
			AuthorID:   c.AuthorID,
			AuthorName: nameByID[c.AuthorID],
			PostID:     c.PostID,
			CreatedAt:  c.CreatedAt,
			UpdatedAt:  c.UpdatedAt,
		}
	}
	return views, nil
}
