package dummy

import (
	"context"
	"sync"
	"time"

	"github.com/karasai/karasai-be/src/server/internal/user/entity"
	"github.com/karasai/karasai-be/src/server/internal/user/storage"
	"github.com/karasai/karasai-be/src/shared/lib/errors/mark"
	"github.com/karasai/karasai-be/src/shared/testing"
	shareddummy "github.com/karasai/karasai-be/src/shared/testing/dummy"
)

var _ userentity.Store = &UserStore{}

type UserStore struct {
	Unavailable bool

	lock  sync.Mutex
	users map[string]userentity.User
}

// NewUserStore is seeded with every existing fixture user
func NewUserStore() *UserStore {
	store := &UserStore{
		users: map[string]userentity.User{},
	}

	createdAt := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	for _, user := range testing.ExistingUsers() {
		store.users[user.ID] = userentity.User{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Admin:     user.Admin,
			CreatedAt: &createdAt,
		}
	}

	return store
}

func (u *UserStore) GetUser(_ context.Context, userID string) (userentity.User, error) {
	u.lock.Lock()
	defer u.lock.Unlock()

	if u.Unavailable {
		return userentity.User{}, mark.Wrap(shareddummy.NetworkFailure, userstorage.DefaultErrorMark, "Dummy store failure")
	}

	user, ok := u.users[userID]
	if !ok {
		return userentity.User{}, mark.Message(userstorage.UserNotFoundMark, "User is not found")
	}

	return user, nil
}

func (u *UserStore) CreateUser(_ context.Context, user userentity.User) error {
	u.lock.Lock()
	defer u.lock.Unlock()

	if u.Unavailable {
		return mark.Wrap(shareddummy.NetworkFailure, userstorage.DefaultErrorMark, "Dummy store failure")
	}

	if _, ok := u.users[user.ID]; ok {
		return mark.Message(userstorage.UserAlreadyExistsMark, "User already exists")
	}

	u.users[user.ID] = user
	return nil
}

func (u *UserStore) UpdateProfile(_ context.Context, userID string, profile userentity.Profile) (userentity.User, error) {
	u.lock.Lock()
	defer u.lock.Unlock()

	if u.Unavailable {
		return userentity.User{}, mark.Wrap(shareddummy.NetworkFailure, userstorage.DefaultErrorMark, "Dummy store failure")
	}

	user, ok := u.users[userID]
	if !ok {
		return userentity.User{}, mark.Message(userstorage.UserNotFoundMark, "User is not found")
	}

	user.Name = profile.Name
	user.Phone = profile.Phone
	u.users[userID] = user
	return user, nil
}

func (u *UserStore) DeleteUser(_ context.Context, userID string) error {
	u.lock.Lock()
	defer u.lock.Unlock()

	if u.Unavailable {
		return mark.Wrap(shareddummy.NetworkFailure, userstorage.DefaultErrorMark, "Dummy store failure")
	}

	if _, ok := u.users[userID]; !ok {
		return mark.Message(userstorage.UserNotFoundMark, "User is not found")
	}

	delete(u.users, userID)
	return nil
}

func (u *UserStore) Has(userID string) bool {
	u.lock.Lock()
	defer u.lock.Unlock()

	_, ok := u.users[userID]
	return ok
}
