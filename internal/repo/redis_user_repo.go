package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	dom "UserAPI/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyUser    = "user:"     // hash per record: name, email, password
	keyIndex   = "users"     // sorted set of ids, score = id
	keySeq     = "users:seq" // id counter
	fieldName  = "name"
	fieldEmail = "email"
	fieldPass  = "password"
)

// RedisUserRepo implements UserRepo on Redis: one hash per user plus a
// sorted set that keeps ids in creation order.
type RedisUserRepo struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisUserRepo returns a new RedisUserRepo. Every key is prefixed with prefix.
func NewRedisUserRepo(rdb *redis.Client, prefix string) *RedisUserRepo {
	return &RedisUserRepo{rdb: rdb, prefix: prefix}
}

func (r *RedisUserRepo) userKey(id int64) string {
	return r.prefix + keyUser + strconv.FormatInt(id, 10)
}

func (r *RedisUserRepo) List(ctx context.Context) ([]dom.User, error) {
	ids, err := r.rdb.ZRange(ctx, r.prefix+keyIndex, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []dom.User{}, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = r.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		for i, raw := range ids {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("bad id %q in index: %w", raw, err)
			}
			cmds[i] = p.HGetAll(ctx, r.userKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	list := make([]dom.User, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		// deleted between ZRANGE and HGETALL
		if len(fields) == 0 {
			continue
		}
		id, _ := strconv.ParseInt(ids[i], 10, 64)
		list = append(list, fromHash(id, fields))
	}
	return list, nil
}

func (r *RedisUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	fields, err := r.rdb.HGetAll(ctx, r.userKey(id)).Result()
	if err != nil {
		return dom.User{}, err
	}
	if len(fields) == 0 {
		return dom.User{}, ErrNotFound
	}
	return fromHash(id, fields), nil
}

func (r *RedisUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	id, err := r.rdb.Incr(ctx, r.prefix+keySeq).Result()
	if err != nil {
		return dom.User{}, err
	}
	u.ID = id
	_, err = r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, r.userKey(id), toHash(u))
		p.ZAdd(ctx, r.prefix+keyIndex, redis.Z{Score: float64(id), Member: strconv.FormatInt(id, 10)})
		return nil
	})
	if err != nil {
		return dom.User{}, err
	}
	return u, nil
}

// Update only writes when the record still exists; a concurrent delete
// aborts the transaction.
func (r *RedisUserRepo) Update(ctx context.Context, u dom.User) (dom.User, error) {
	key := r.userKey(u.ID)
	err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, key, toHash(u))
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return dom.User{}, fmt.Errorf("update user %d: %w", u.ID, err)
	}
	if err != nil {
		return dom.User{}, err
	}
	return u, nil
}

func (r *RedisUserRepo) Delete(ctx context.Context, id int64) error {
	var del *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		del = p.Del(ctx, r.userKey(id))
		p.ZRem(ctx, r.prefix+keyIndex, strconv.FormatInt(id, 10))
		return nil
	})
	if err != nil {
		return err
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func toHash(u dom.User) map[string]interface{} {
	return map[string]interface{}{
		fieldName:  u.Name,
		fieldEmail: u.Email,
		fieldPass:  u.Password,
	}
}

func fromHash(id int64, fields map[string]string) dom.User {
	return dom.User{
		ID:       id,
		Name:     fields[fieldName],
		Email:    fields[fieldEmail],
		Password: fields[fieldPass],
	}
}
