package service

import (
	"context"
	"errors"

	dom "UserAPI/internal/domain"
	"UserAPI/internal/logger"
	"UserAPI/internal/repo"
	"UserAPI/internal/serializer"

	"golang.org/x/sync/singleflight"
)

var ErrNotFound = errors.New("not found")

// UserService is the CRUD surface over the user collection.
type UserService struct {
	repo repo.UserRepo
	log  *logger.Logger
	sf   singleflight.Group
}

// NewUserService returns a new UserService. log may be nil.
func NewUserService(r repo.UserRepo, log *logger.Logger) *UserService {
	return &UserService{repo: r, log: log}
}

const listKey = "list"

// List returns every user. Concurrent calls share one storage read; a write
// that completes drops the in-flight read so later calls see it.
func (s *UserService) List(ctx context.Context) ([]dom.User, error) {
	shareCtx := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do(listKey, func() (interface{}, error) {
		return s.repo.List(shareCtx)
	})
	if err != nil {
		return nil, err
	}
	// callers own their slice
	shared := v.([]dom.User)
	out := make([]dom.User, len(shared))
	copy(out, shared)
	return out, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (dom.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.User{}, mapRepoErr(err)
	}
	return u, nil
}

// Create persists a user built from fully validated data.
func (s *UserService) Create(ctx context.Context, data serializer.UserData) (dom.User, error) {
	u, err := s.repo.Create(ctx, data.Apply(dom.User{}))
	if err != nil {
		return dom.User{}, err
	}
	s.sf.Forget(listKey)
	s.logWrite(ctx, "created", u.ID)
	return u, nil
}

// Update applies data to the stored record. For a full update data carries
// every field; for a partial one only the fields to change.
func (s *UserService) Update(ctx context.Context, id int64, data serializer.UserData) (dom.User, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.User{}, mapRepoErr(err)
	}
	u, err := s.repo.Update(ctx, data.Apply(existing))
	if err != nil {
		return dom.User{}, mapRepoErr(err)
	}
	s.sf.Forget(listKey)
	s.logWrite(ctx, "updated", id)
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoErr(err)
	}
	s.sf.Forget(listKey)
	s.logWrite(ctx, "deleted", id)
	return nil
}

// Exists reports whether id is a stored record.
func (s *UserService) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *UserService) logWrite(ctx context.Context, action string, id int64) {
	if s.log == nil {
		return
	}
	s.log.WithFields(ctx, logger.Fields{"user_id": id, "action": action}).Info("user " + action)
}

func mapRepoErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
