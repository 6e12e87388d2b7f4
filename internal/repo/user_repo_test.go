package repo

import (
	"context"
	"os"
	"testing"

	dom "UserAPI/internal/domain"
	"UserAPI/migrations"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testUserRepo runs the behaviour every UserRepo driver must share.
func testUserRepo(t *testing.T, r UserRepo) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		list, err := r.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	var first, second dom.User
	t.Run("create assigns ids", func(t *testing.T) {
		var err error
		first, err = r.Create(ctx, dom.User{Name: "Ada", Email: "ada@example.com", Password: "pw1"})
		require.NoError(t, err)
		second, err = r.Create(ctx, dom.User{Name: "Alan", Email: "alan@example.com", Password: "pw2"})
		require.NoError(t, err)
		assert.Positive(t, first.ID)
		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("get round-trips fields", func(t *testing.T) {
		got, err := r.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first, got)
		assert.Equal(t, "pw1", got.Password)
	})

	t.Run("list in id order", func(t *testing.T) {
		list, err := r.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, first.ID, list[0].ID)
		assert.Equal(t, second.ID, list[1].ID)
	})

	t.Run("update", func(t *testing.T) {
		changed := first
		changed.Email = "countess@example.com"
		got, err := r.Update(ctx, changed)
		require.NoError(t, err)
		assert.Equal(t, changed, got)

		reread, err := r.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "countess@example.com", reread.Email)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, r.Delete(ctx, first.ID))
		_, err := r.GetByID(ctx, first.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		list, err := r.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("missing id", func(t *testing.T) {
		const missing = int64(987654)
		_, err := r.GetByID(ctx, missing)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = r.Update(ctx, dom.User{ID: missing, Name: "x", Email: "x", Password: "x"})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, r.Delete(ctx, missing), ErrNotFound)
		assert.ErrorIs(t, r.Delete(ctx, first.ID), ErrNotFound, "second delete")
	})

	t.Run("ids not reused", func(t *testing.T) {
		third, err := r.Create(ctx, dom.User{Name: "Grace", Email: "g@example.com", Password: "pw3"})
		require.NoError(t, err)
		assert.Greater(t, third.ID, second.ID)
	})
}

func TestMemoryUserRepo(t *testing.T) {
	testUserRepo(t, NewMemoryUserRepo())
}

func TestRedisUserRepo(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	testUserRepo(t, NewRedisUserRepo(rdb, "test:"))

	assert.True(t, mr.Exists("test:users:seq"))
	assert.False(t, mr.Exists("users:seq"), "keys must carry the prefix")
}

func TestPGUserRepo(t *testing.T) {
	dsn := os.Getenv("TEST_PG_DSN")
	if dsn == "" {
		t.Skip("TEST_PG_DSN not set")
	}
	ctx := context.Background()

	if err := migrations.Up(dsn); err != nil {
		t.Skipf("migrate test database: %v", err)
	}
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE users RESTART IDENTITY`)
	require.NoError(t, err)

	testUserRepo(t, NewPGUserRepo(pool))
}
