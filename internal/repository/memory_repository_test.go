package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialfeed/internal/identity"
	"socialfeed/internal/models"
)

func TestMemoryPostRepository_CreateAssignsIncreasingIDs(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	var previous int64 = -1
	for i := 0; i < 5; i++ {
		post := &models.Post{Author: "alice", ContentType: models.ContentText, Content: "hi", CreatedAt: time.Now()}
		require.NoError(t, repo.Post.Create(ctx, post))
		assert.Greater(t, post.PostID, previous)
		previous = post.PostID
	}

	// deleted ids are not reused
	require.NoError(t, repo.Post.Delete(ctx, previous))
	post := &models.Post{Author: "alice", ContentType: models.ContentText, Content: "again", CreatedAt: time.Now()}
	require.NoError(t, repo.Post.Create(ctx, post))
	assert.Equal(t, previous+1, post.PostID)
}

func TestMemoryPostRepository_List(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seed := []models.Post{
		{Author: "alice", ContentType: models.ContentText, CreatedAt: base.Add(2 * time.Hour)},
		{Author: "bob", ContentType: models.ContentShortVideo, CreatedAt: base},
		{Author: "alice", ContentType: models.ContentShortVideo, CreatedAt: base.Add(time.Hour)},
		{Author: "bob", ContentType: models.ContentImage, CreatedAt: base.Add(time.Hour)},
	}
	for i := range seed {
		require.NoError(t, repo.Post.Create(ctx, &seed[i]))
	}
	for i := 0; i < 3; i++ {
		_, err := repo.Post.IncrementLikes(ctx, seed[1].PostID)
		require.NoError(t, err)
	}
	_, err := repo.Post.IncrementLikes(ctx, seed[3].PostID)
	require.NoError(t, err)
	_, err = repo.Post.IncrementLikes(ctx, seed[2].PostID)
	require.NoError(t, err)

	ids := func(posts []models.Post) []int64 {
		out := make([]int64, 0, len(posts))
		for _, p := range posts {
			out = append(out, p.PostID)
		}
		return out
	}

	t.Run("Все посты, новые первыми", func(t *testing.T) {
		posts, err := repo.Post.List(ctx, PostFilter{})
		require.NoError(t, err)
		// seed[2] and seed[3] share a timestamp, higher id first
		assert.Equal(t, []int64{0, 3, 2, 1}, ids(posts))
	})

	t.Run("Фильтр по автору", func(t *testing.T) {
		posts, err := repo.Post.List(ctx, PostFilter{Author: "bob"})
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 1}, ids(posts))
	})

	t.Run("Фильтр по типу", func(t *testing.T) {
		posts, err := repo.Post.List(ctx, PostFilter{ContentType: models.ContentShortVideo})
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 1}, ids(posts))
	})

	t.Run("Популярные с лимитом", func(t *testing.T) {
		posts, err := repo.Post.List(ctx, PostFilter{Order: OrderTrending, Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3, 2}, ids(posts))
	})
}

func TestMemoryPostRepository_NotFound(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Post.GetByID(ctx, 42)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.ErrorIs(t, repo.Post.Delete(ctx, 42), models.ErrNotFound)

	_, err = repo.Post.IncrementLikes(ctx, 42)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.ErrorIs(t, repo.Comment.Create(ctx, &models.Comment{PostID: 42, Content: "orphan"}), models.ErrNotFound)
	comments, err := repo.Comment.GetByPostID(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestMemoryCommentRepository(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first := &models.Post{Author: "bob"}
	second := &models.Post{Author: "bob"}
	require.NoError(t, repo.Post.Create(ctx, first))
	require.NoError(t, repo.Post.Create(ctx, second))

	for _, text := range []string{"first", "second", "third"} {
		comment := &models.Comment{PostID: first.PostID, Author: "alice", Content: text, CreatedAt: time.Now()}
		require.NoError(t, repo.Comment.Create(ctx, comment))
	}
	require.NoError(t, repo.Comment.Create(ctx, &models.Comment{PostID: second.PostID, Content: "other"}))

	comments, err := repo.Comment.GetByPostID(ctx, first.PostID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "third", comments[2].Content)

	post, err := repo.Post.GetByID(ctx, first.PostID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), post.CommentCount)
	post, err = repo.Post.GetByID(ctx, second.PostID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), post.CommentCount)

	empty, err := repo.Comment.GetByPostID(ctx, 99)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMemoryProfileRepository(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Profile.Get(ctx, "alice")
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, repo.Profile.Save(ctx, &models.UserProfile{Principal: "alice", Username: "alice", Bio: "one"}))
	require.NoError(t, repo.Profile.Save(ctx, &models.UserProfile{Principal: "alice", Username: "alice_2"}))

	profile, err := repo.Profile.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice_2", profile.Username)
	assert.Empty(t, profile.Bio)
}

func TestMemoryAdminRepository(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	count, err := repo.Admin.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, repo.Admin.Add(ctx, "alice", "alice"))
	require.NoError(t, repo.Admin.Add(ctx, "alice", "bob"))

	count, err = repo.Admin.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	ok, err := repo.Admin.Contains(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Admin.Contains(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryAdminRepository_Bootstrap(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	added, err := repo.Admin.Bootstrap(ctx, "alice", "alice")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.Admin.Bootstrap(ctx, "bob", "bob")
	require.NoError(t, err)
	assert.False(t, added)

	count, err := repo.Admin.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	ok, err := repo.Admin.Contains(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryMessageRepository(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	alice, bob, carol := identity.Principal("alice"), identity.Principal("bob"), identity.Principal("carol")

	send := func(from, to identity.Principal, text string) {
		require.NoError(t, repo.Message.Create(ctx, &models.Message{Sender: from, Receiver: to, Content: text}))
	}
	send(alice, bob, "hi bob")
	send(bob, alice, "hi alice")
	send(alice, carol, "hi carol")

	messages, err := repo.Message.GetConversation(ctx, bob, alice)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "hi bob", messages[0].Content)
	assert.Equal(t, "hi alice", messages[1].Content)
}

func TestMemoryStatsRepository(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Post.Create(ctx, &models.Post{Author: "alice"}))
	require.NoError(t, repo.Comment.Create(ctx, &models.Comment{PostID: 0}))
	require.NoError(t, repo.Admin.Add(ctx, "alice", "alice"))

	stats, err := repo.Stats.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StoreStats{Posts: 1, Comments: 1, Admins: 1}, *stats)
	assert.NoError(t, repo.Stats.Ping(ctx))
}
