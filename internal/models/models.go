package models

import (
	"time"

	"socialfeed/internal/identity"
)

type ContentType string

const (
	ContentText       ContentType = "text"
	ContentImage      ContentType = "image"
	ContentVideo      ContentType = "video"
	ContentShortVideo ContentType = "shortVideo"
)

type Post struct {
	PostID       int64              `json:"id" db:"post_id"`
	Author       identity.Principal `json:"author" db:"author"`
	Content      string             `json:"caption" db:"content"`
	ContentType  ContentType        `json:"contentType" db:"content_type"`
	MediaRef     string             `json:"mediaRef,omitempty" db:"media_ref"`
	MediaURL     string             `json:"mediaUrl,omitempty" db:"media_url"`
	IsVideo      bool               `json:"isVideo" db:"is_video"`
	CreatedAt    time.Time          `json:"timestamp" db:"created_at"`
	LikeCount    int64              `json:"likeCount" db:"like_count"`
	CommentCount int64              `json:"commentCount" db:"comment_count"`
}

type Comment struct {
	CommentID int64              `json:"id" db:"comment_id"`
	PostID    int64              `json:"postId" db:"post_id"`
	Author    identity.Principal `json:"author" db:"author"`
	Content   string             `json:"content" db:"content"`
	CreatedAt time.Time          `json:"timestamp" db:"created_at"`
}

type UserProfile struct {
	Principal      identity.Principal `json:"principal" db:"principal"`
	Username       string             `json:"username" db:"username"`
	Bio            string             `json:"bio" db:"bio"`
	ProfilePicture string             `json:"profilePicture,omitempty" db:"profile_picture"`
	UpdatedAt      time.Time          `json:"updatedAt" db:"updated_at"`
}

type Message struct {
	MessageID int64              `json:"id" db:"message_id"`
	Sender    identity.Principal `json:"sender" db:"sender"`
	Receiver  identity.Principal `json:"receiver" db:"receiver"`
	Content   string             `json:"content" db:"content"`
	CreatedAt time.Time          `json:"timestamp" db:"created_at"`
}

// StoreStats is a snapshot of how many records each store holds.
type StoreStats struct {
	Posts    int `json:"posts" db:"posts"`
	Comments int `json:"comments" db:"comments"`
	Profiles int `json:"profiles" db:"profiles"`
	Admins   int `json:"admins" db:"admins"`
	Messages int `json:"messages" db:"messages"`
}
