package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/query"
)

// UserRepo is the repository for user operations
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a new UserRepo
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create creates a new user
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// GetById gets user by Id, nil when absent
func (r *UserRepo) GetById(ctx context.Context, id string) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByEmail gets user by email, nil when absent
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", email)
}

// GetByIds gets users by Ids
func (r *UserRepo) GetByIds(ctx context.Context, ids []string) ([]*entity.User, error) {
	var users []*entity.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Update updates user columns
func (r *UserRepo) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes a user, reporting whether it existed
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.User{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Exists checks if user exists
func (r *UserRepo) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Page returns one page of users matching f, newest first, with the filtered total
func (r *UserRepo) Page(ctx context.Context, f *query.Filter, p query.ListParams) ([]*entity.User, int64, error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&entity.User{}).Scopes(f.GormScope())
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*entity.User, 0)
	err := r.db.WithContext(ctx).Model(&entity.User{}).Scopes(f.GormScope()).
		Order("created_at DESC, id DESC").
		Offset(int(p.Skip())).
		Limit(int(p.Limit)).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// FindIds returns the ids of users matching f
func (r *UserRepo) FindIds(ctx context.Context, f *query.Filter) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&entity.User{}).Scopes(f.GormScope()).Pluck("id", &ids).Error
	return ids, err
}

func (r *UserRepo) first(ctx context.Context, cond string, arg interface{}) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where(cond, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
