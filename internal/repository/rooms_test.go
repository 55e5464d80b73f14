//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/askroom/askroom/internal/domain"
	"github.com/askroom/askroom/internal/pagination"
	"github.com/askroom/askroom/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoom(name string) *domain.Room {
	return domain.NewRoom(uuid.NewString(), name, "test room", time.Now().UTC().Truncate(time.Microsecond))
}

func TestRoomRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewRoomRepository(pool)

	room := newTestRoom("Physics 101")
	require.NoError(t, repo.Create(ctx, room))

	retrieved, err := repo.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, room.ID, retrieved.ID)
	assert.Equal(t, "Physics 101", retrieved.Name)
	assert.Equal(t, "test room", retrieved.Description)
	assert.True(t, retrieved.Active)
}

func TestRoomRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewRoomRepository(pool)

	_, err := repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestRoomRepository_Deactivate(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewRoomRepository(pool)

	room := newTestRoom("Soon Gone")
	require.NoError(t, repo.Create(ctx, room))

	require.NoError(t, repo.Deactivate(ctx, room.ID))

	_, err := repo.GetByID(ctx, room.ID)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	// Deactivating again reports not found.
	err = repo.Deactivate(ctx, room.ID)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestRoomRepository_ListWithCursor(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewRoomRepository(pool)
	questionRepo := NewQuestionRepository(pool)

	base := time.Now().UTC().Truncate(time.Microsecond)
	var rooms []*domain.Room
	for i := 0; i < 3; i++ {
		room := domain.NewRoom(uuid.NewString(), "Room", "", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(ctx, room))
		rooms = append(rooms, room)
	}

	q := domain.NewQuestion(uuid.NewString(), rooms[2].ID, "What?", "That.", base)
	require.NoError(t, questionRepo.Create(ctx, q))

	// First page: newest first with counters.
	page, err := repo.ListWithCursor(ctx, nil, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, rooms[2].ID, page[0].Room.ID)
	assert.Equal(t, int64(1), page[0].QuestionCount)
	assert.Equal(t, int64(0), page[0].ChunkCount)
	assert.Equal(t, rooms[1].ID, page[1].Room.ID)

	// Second page resumes after the last item of the first.
	last := page[len(page)-1]
	cursor := &pagination.Cursor{LastID: last.Room.ID, Timestamp: last.Room.CreatedOn}
	page2, err := repo.ListWithCursor(ctx, cursor, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, rooms[0].ID, page2[0].Room.ID)
}

func TestRoomRepository_ListWithCursor_SkipsInactive(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewRoomRepository(pool)

	keep := newTestRoom("Keep")
	drop := newTestRoom("Drop")
	require.NoError(t, repo.Create(ctx, keep))
	require.NoError(t, repo.Create(ctx, drop))
	require.NoError(t, repo.Deactivate(ctx, drop.ID))

	page, err := repo.ListWithCursor(ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, keep.ID, page[0].Room.ID)
}
