package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/query"
)

func TestConversationRepo_FindOrCreate(t *testing.T) {
	repos := requireMongo(t)
	ctx := context.Background()

	first, created, err := repos.Conversation.FindOrCreate(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, created)
	assert.ElementsMatch(t, []string{"alice", "bob"}, first.Participants)

	second, created, err := repos.Conversation.FindOrCreate(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.Id, second.Id)
}

func TestConversationRepo_FindOrCreate_Concurrent(t *testing.T) {
	repos := requireMongo(t)
	ctx := context.Background()

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		ids     = map[string]struct{}{}
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, b := "u1", "u2"
			if i%2 == 0 {
				a, b = b, a
			}
			conv, c, err := repos.Conversation.FindOrCreate(ctx, a, b)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if c {
				created++
			}
			ids[conv.Id.Hex()] = struct{}{}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Len(t, ids, 1)
	count, err := repos.Conversation.Count(ctx, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestConversationRepo_VisibilityViews(t *testing.T) {
	repos := requireMongo(t)
	ctx := context.Background()

	conv, _, err := repos.Conversation.FindOrCreate(ctx, "a", "b")
	require.NoError(t, err)
	id := conv.Id.Hex()

	ok, err := repos.Conversation.UpdateVisibility(ctx, id, "a", entity.ActionArchive)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repos.Conversation.UpdateVisibility(ctx, id, "a", entity.ActionDelete)
	require.NoError(t, err)
	require.True(t, ok)
	// re-archive after deletion: user is in archivedBy and deletedBy
	_, err = repos.Conversation.UpdateVisibility(ctx, id, "a", entity.ActionArchive)
	require.NoError(t, err)

	deleted, err := repos.Conversation.ListForUser(ctx, "a", entity.ViewDeleted)
	require.NoError(t, err)
	assert.Len(t, deleted, 1)

	archived, err := repos.Conversation.ListForUser(ctx, "a", entity.ViewArchived)
	require.NoError(t, err)
	assert.Empty(t, archived)

	active, err := repos.Conversation.ListForUser(ctx, "b", entity.ViewActive)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	ok, err = repos.Conversation.UpdateVisibility(ctx, id, "stranger", entity.ActionBlock)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConversationRepo_BlockClearsArchive(t *testing.T) {
	repos := requireMongo(t)
	ctx := context.Background()

	conv, _, err := repos.Conversation.FindOrCreate(ctx, "a", "b")
	require.NoError(t, err)
	id := conv.Id.Hex()

	_, err = repos.Conversation.UpdateVisibility(ctx, id, "a", entity.ActionArchive)
	require.NoError(t, err)
	_, err = repos.Conversation.UpdateVisibility(ctx, id, "a", entity.ActionBlock)
	require.NoError(t, err)

	got, err := repos.Conversation.GetById(ctx, id)
	require.NoError(t, err)
	assert.NotContains(t, got.ArchivedBy, "a")
	assert.Contains(t, got.BlockedBy, "a")

	blocked, err := repos.Conversation.CountForUser(ctx, "a", entity.ViewBlocked)
	require.NoError(t, err)
	assert.Equal(t, int64(1), blocked)
}

func TestConversationRepo_UnreadCounters(t *testing.T) {
	repos := requireMongo(t)
	ctx := context.Background()

	conv, _, err := repos.Conversation.FindOrCreate(ctx, "a", "b")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		msg := &entity.Message{ConversationId: conv.Id, SenderId: "a", ReceiverId: "b", Content: "hi", CreatedAt: time.Now()}
		require.NoError(t, repos.Message.Create(ctx, msg))
		require.NoError(t, repos.Conversation.RecordMessage(ctx, msg))
	}

	got, err := repos.Conversation.GetById(ctx, conv.Id.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.UnreadCount["b"])
	assert.Equal(t, int64(0), got.UnreadCount["a"])
	assert.Equal(t, "hi", got.LastMessage)

	n, err := repos.Message.MarkRead(ctx, conv.Id, "b", time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.NoError(t, repos.Conversation.ResetUnread(ctx, conv.Id, "b"))

	n, err = repos.Message.MarkRead(ctx, conv.Id, "b", time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)

	msgs, total, err := repos.Message.ListByConversation(ctx, conv.Id, query.ListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, m := range msgs {
		assert.True(t, m.IsRead)
		assert.NotNil(t, m.ReadAt)
	}
}
