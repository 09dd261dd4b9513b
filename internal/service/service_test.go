package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/sakif/shopping-list/internal/apperror"
	"github.com/sakif/shopping-list/internal/auth"
	"github.com/sakif/shopping-list/internal/model"
)

// ===== SHARED TEST FAKES =====
//
// Hand-written in-memory fakes for the repository interfaces. Each one keeps
// its rows in a map and reproduces the repository error contract (NotFound,
// Conflict) without touching a database.

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// bcrypt cost 4 keeps the hashing in these tests fast; production uses a
// higher cost wired in main.
func testPasswords() *auth.PasswordService {
	return auth.NewPasswordServiceForTest(4)
}

type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
	// listsFor is keyed by user ID; filled in directly by tests.
	listsFor map[int64][]model.ShoppingList
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[int64]*model.User),
		listsFor: make(map[int64][]model.ShoppingList),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Name == user.Name {
			return apperror.Conflict("user name already taken")
		}
	}
	f.nextID++
	user.ID = f.nextID
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("User")
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) GetByName(_ context.Context, name string) (*model.User, error) {
	for _, u := range f.users {
		if u.Name == name {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperror.NotFound("User")
}

func (f *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for id := int64(1); id <= f.nextID; id++ {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperror.NotFound("User")
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return apperror.NotFound("User")
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) ListsFor(_ context.Context, id int64) ([]model.ShoppingList, error) {
	lists := f.listsFor[id]
	if lists == nil {
		return []model.ShoppingList{}, nil
	}
	return lists, nil
}

type fakeListRepo struct {
	lists  map[int64]*model.ShoppingList
	nextID int64
}

func newFakeListRepo() *fakeListRepo {
	return &fakeListRepo{lists: make(map[int64]*model.ShoppingList)}
}

func (f *fakeListRepo) Create(_ context.Context, list *model.ShoppingList) error {
	f.nextID++
	list.ID = f.nextID
	clone := *list
	f.lists[list.ID] = &clone
	return nil
}

func (f *fakeListRepo) GetByID(_ context.Context, id int64) (*model.ShoppingList, error) {
	l, ok := f.lists[id]
	if !ok {
		return nil, apperror.NotFound("List")
	}
	clone := *l
	return &clone, nil
}

func (f *fakeListRepo) List(_ context.Context) ([]model.ShoppingList, error) {
	out := make([]model.ShoppingList, 0, len(f.lists))
	for id := int64(1); id <= f.nextID; id++ {
		if l, ok := f.lists[id]; ok {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeListRepo) Update(_ context.Context, list *model.ShoppingList) error {
	if _, ok := f.lists[list.ID]; !ok {
		return apperror.NotFound("List")
	}
	clone := *list
	f.lists[list.ID] = &clone
	return nil
}

func (f *fakeListRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.lists[id]; !ok {
		return apperror.NotFound("List")
	}
	delete(f.lists, id)
	return nil
}

type fakeItemRepo struct {
	items  map[int64]*model.ShoppingItem
	nextID int64
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[int64]*model.ShoppingItem)}
}

func (f *fakeItemRepo) Create(_ context.Context, item *model.ShoppingItem) error {
	f.nextID++
	item.ID = f.nextID
	clone := *item
	f.items[item.ID] = &clone
	return nil
}

func (f *fakeItemRepo) GetByID(_ context.Context, id int64) (*model.ShoppingItem, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, apperror.NotFound("Item")
	}
	clone := *it
	return &clone, nil
}

func (f *fakeItemRepo) ListForList(_ context.Context, listID int64) ([]model.ShoppingItem, error) {
	out := []model.ShoppingItem{}
	for id := int64(1); id <= f.nextID; id++ {
		if it, ok := f.items[id]; ok && it.ListID == listID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) Update(_ context.Context, item *model.ShoppingItem) error {
	if _, ok := f.items[item.ID]; !ok {
		return apperror.NotFound("Item")
	}
	clone := *item
	f.items[item.ID] = &clone
	return nil
}

func (f *fakeItemRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return apperror.NotFound("Item")
	}
	delete(f.items, id)
	return nil
}

type edge struct{ userID, listID int64 }

type fakePermRepo struct {
	edges map[edge]bool
}

func newFakePermRepo() *fakePermRepo {
	return &fakePermRepo{edges: make(map[edge]bool)}
}

func (f *fakePermRepo) Has(_ context.Context, userID, listID int64) (bool, error) {
	return f.edges[edge{userID, listID}], nil
}

func (f *fakePermRepo) Grant(_ context.Context, userID, listID int64) error {
	f.edges[edge{userID, listID}] = true
	return nil
}

func (f *fakePermRepo) Revoke(_ context.Context, userID, listID int64) error {
	e := edge{userID, listID}
	if !f.edges[e] {
		return apperror.NotFound("Permission")
	}
	delete(f.edges, e)
	return nil
}

// seedUser inserts a user with a real (cheap) bcrypt hash of password.
func seedUser(t *testing.T, repo *fakeUserRepo, name, password string) *model.User {
	t.Helper()
	hash, err := testPasswords().Hash(password)
	if err != nil {
		t.Fatalf("hashing seed password: %v", err)
	}
	user := &model.User{Name: name, PasswordHash: hash}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seeding user %q: %v", name, err)
	}
	return user
}
