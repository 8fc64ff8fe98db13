package service

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	"digilocker/internal/common"
	"digilocker/internal/domain/model"

	"github.com/google/uuid"
)

// In-memory repository fakes. Transactions are exercised against a sqlmock
// database; the fakes themselves ignore the tx handle.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, _ *sql.Tx, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email || u.MobileNumber == user.MobileNumber {
			return common.ErrConflict
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) AssignRoles(_ context.Context, _ *sql.Tx, userID string, _ []string) error {
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := []model.User{}
	for _, u := range f.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, _ *sql.Tx, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) add(username, email string, roles ...string) *model.User {
	u := &model.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    email,
		Roles:    roles,
	}
	f.mu.Lock()
	f.users[u.ID] = u
	f.mu.Unlock()
	return u
}

type fakeRoleRepo struct {
	roles map[string]*model.Role // by name
}

func newFakeRoleRepo() *fakeRoleRepo {
	f := &fakeRoleRepo{roles: map[string]*model.Role{}}
	for _, name := range model.AllRoles {
		f.roles[name] = &model.Role{ID: uuid.NewString(), Name: name}
	}
	return f
}

func (f *fakeRoleRepo) FindByName(_ context.Context, name string) (*model.Role, error) {
	role, ok := f.roles[name]
	if !ok {
		return nil, common.ErrNotFound
	}
	return role, nil
}

func (f *fakeRoleRepo) Create(_ context.Context, role *model.Role) error {
	f.roles[role.Name] = role
	return nil
}

func (f *fakeRoleRepo) EnsureDefaults(_ context.Context) error { return nil }

type fakeDocumentRepo struct {
	mu   sync.Mutex
	docs map[string]*model.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: map[string]*model.Document{}}
}

func (f *fakeDocumentRepo) Create(_ context.Context, _ *sql.Tx, doc *model.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *doc
	f.docs[doc.ID] = &cp
	return nil
}

func (f *fakeDocumentRepo) Update(_ context.Context, _ *sql.Tx, doc *model.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[doc.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *doc
	f.docs[doc.ID] = &cp
	return nil
}

func (f *fakeDocumentRepo) Delete(_ context.Context, _ *sql.Tx, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeDocumentRepo) FindByID(_ context.Context, id string) (*model.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDocumentRepo) FindByIDAndUserID(_ context.Context, id, userID string) (*model.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[id]
	if !ok || d.UserID != userID {
		return nil, common.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDocumentRepo) ListByUserID(_ context.Context, userID string) ([]model.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	docs := []model.Document{}
	for _, d := range f.docs {
		if d.UserID == userID {
			docs = append(docs, *d)
		}
	}
	return docs, nil
}

func (f *fakeDocumentRepo) SearchByName(_ context.Context, name string) ([]model.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	docs := []model.Document{}
	for _, d := range f.docs {
		if strings.Contains(strings.ToLower(d.Name), strings.ToLower(name)) {
			docs = append(docs, *d)
		}
	}
	return docs, nil
}

func (f *fakeDocumentRepo) ListUnverified(_ context.Context) ([]model.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	docs := []model.Document{}
	for _, d := range f.docs {
		if !d.Verified {
			docs = append(docs, *d)
		}
	}
	return docs, nil
}
