package servicetest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/query"
	"github.com/mbeoliero/realty/internal/repository"
)

// Users is an in-memory user table
type Users struct {
	mu    sync.Mutex
	users []*entity.User
}

// NewUsers creates a user table holding users
func NewUsers(users ...*entity.User) *Users {
	return &Users{users: users}
}

func (u *Users) Create(_ context.Context, user *entity.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, it := range u.users {
		if it.Id == user.Id || it.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	u.users = append(u.users, user)
	return nil
}

func (u *Users) GetById(_ context.Context, id string) (*entity.User, error) {
	return u.first(func(it *entity.User) bool { return it.Id == id }), nil
}

func (u *Users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return u.first(func(it *entity.User) bool { return it.Email == email }), nil
}

func (u *Users) GetByIds(_ context.Context, ids []string) ([]*entity.User, error) {
	var out []*entity.User
	for _, id := range ids {
		if it := u.first(func(it *entity.User) bool { return it.Id == id }); it != nil {
			out = append(out, it)
		}
	}
	return out, nil
}

func (u *Users) Update(_ context.Context, id string, updates map[string]interface{}) error {
	it := u.first(func(it *entity.User) bool { return it.Id == id })
	if it == nil {
		return nil
	}
	for col, v := range updates {
		s := fmt.Sprint(v)
		switch col {
		case "name":
			it.Name = s
		case "phone":
			it.Phone = s
		case "avatar":
			it.Avatar = s
		case "agency_id":
			it.AgencyId = s
		}
	}
	return nil
}

func (u *Users) Delete(_ context.Context, id string) (bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for i, it := range u.users {
		if it.Id == id {
			u.users = append(u.users[:i], u.users[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (u *Users) Page(_ context.Context, f *query.Filter, p query.ListParams) ([]*entity.User, int64, error) {
	all := u.filter(f)
	total := int64(len(all))
	start := min(p.Skip(), total)
	end := min(start+p.Limit, total)
	return all[start:end], total, nil
}

func (u *Users) FindIds(_ context.Context, f *query.Filter) ([]string, error) {
	var ids []string
	for _, it := range u.filter(f) {
		ids = append(ids, it.Id)
	}
	return ids, nil
}

func (u *Users) first(pred func(*entity.User) bool) *entity.User {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, it := range u.users {
		if pred(it) {
			return it
		}
	}
	return nil
}

// filter applies the equality and search parts of f, newest first
func (u *Users) filter(f *query.Filter) []*entity.User {
	u.mu.Lock()
	defer u.mu.Unlock()

	var out []*entity.User
	for _, it := range u.users {
		if matchUser(it, f) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out
}

func userColumn(u *entity.User, col string) string {
	switch col {
	case "id":
		return u.Id
	case "name":
		return u.Name
	case "email":
		return u.Email
	case "phone":
		return u.Phone
	case "role":
		return u.Role
	case "agency_id":
		return u.AgencyId
	}
	return ""
}

func matchUser(u *entity.User, f *query.Filter) bool {
	for col, v := range f.Equals {
		if userColumn(u, col) != fmt.Sprint(v) {
			return false
		}
	}
	if !f.HasSearch() {
		return true
	}
	needle := strings.ToLower(f.Search)
	for _, col := range f.SearchFields {
		if strings.Contains(strings.ToLower(userColumn(u, col)), needle) {
			return true
		}
	}
	for _, r := range f.Related {
		for _, id := range r.Ids {
			if userColumn(u, r.Field) == id {
				return true
			}
		}
	}
	return false
}
