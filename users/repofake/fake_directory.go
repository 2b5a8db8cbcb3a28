package fakeuserrepo

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jrsteele09/lms-mobile-gateway/users"
)

var _ users.Directory = (*FakeDirectory)(nil)

// FakeDirectory is an in-memory users.Directory for tests.
type FakeDirectory struct {
	users    map[int64]*users.Identity
	emailIDs map[string]int64 // lower-cased email to user id
	current  int64
	lock     sync.RWMutex
}

func NewFakeDirectory() *FakeDirectory {
	return &FakeDirectory{
		users:    make(map[int64]*users.Identity),
		emailIDs: make(map[string]int64),
	}
}

func (d *FakeDirectory) Upsert(user users.Identity) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.users[user.ID] = &user
	d.emailIDs[strings.ToLower(user.Email)] = user.ID
}

// SetCurrent sets the id reported as the owner of the service token.
func (d *FakeDirectory) SetCurrent(id int64) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.current = id
}

func (d *FakeDirectory) FindUserByEmail(_ context.Context, email string) (*users.Identity, bool) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	id, ok := d.emailIDs[strings.ToLower(email)]
	if !ok {
		return nil, false
	}
	u := *d.users[id]
	return &u, true
}

func (d *FakeDirectory) FindUserByID(_ context.Context, id int64) (*users.Identity, bool) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	u, ok := d.users[id]
	if !ok {
		return nil, false
	}
	cp := *u
	return &cp, true
}

func (d *FakeDirectory) CurrentUserID(_ context.Context) (int64, error) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	if d.current == 0 {
		return 0, errors.New("no current user")
	}
	return d.current, nil
}
