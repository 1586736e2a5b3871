package util

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Input bounds for the board. One canonical policy for every handler.
const (
	MinUserIDLength   = 3
	MaxUserIDLength   = 20
	MinUsernameLength = 2
	MaxUsernameLength = 50
	MinPasswordLength = 6
	MaxPasswordLength = 72 // bcrypt input cap
	MaxTitleLength    = 200
	MaxContentLength  = 50000
	MaxCommentLength  = 1000
)

var userIDRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidateUserID checks the login id: 3-20 chars, letters/digits/underscore.
func ValidateUserID(id string) error {
	if len(id) < MinUserIDLength || len(id) > MaxUserIDLength {
		return fmt.Errorf("id must be %d-%d characters", MinUserIDLength, MaxUserIDLength)
	}
	if !userIDRe.MatchString(id) {
		return fmt.Errorf("id may only contain letters, digits and underscores")
	}
	return nil
}

// ValidateUsername checks the display name length.
func ValidateUsername(name string) error {
	n := utf8.RuneCountInString(name)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return fmt.Errorf("username must be %d-%d characters", MinUsernameLength, MaxUsernameLength)
	}
	return nil
}

// ValidatePassword checks the plaintext password length.
func ValidatePassword(pwd string) error {
	if len(pwd) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if len(pwd) > MaxPasswordLength {
		return fmt.Errorf("password must be at most %d characters", MaxPasswordLength)
	}
	return nil
}

// ValidateTitle checks a post title.
func ValidateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fmt.Errorf("title must be at most %d characters", MaxTitleLength)
	}
	return nil
}

// ValidateContent checks a post body.
func ValidateContent(content string) error {
	if content == "" {
		return fmt.Errorf("content is required")
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return fmt.Errorf("content must be at most %d characters", MaxContentLength)
	}
	return nil
}

// ValidateComment checks a comment body.
func ValidateComment(content string) error {
	if content == "" {
		return fmt.Errorf("comment is required")
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return fmt.Errorf("comment must be at most %d characters", MaxCommentLength)
	}
	return nil
}
