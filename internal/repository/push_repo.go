package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mbeoliero/realty/internal/entity"
)

// PushSubscriptionRepo is the repository for web-push subscriptions
type PushSubscriptionRepo struct {
	db *gorm.DB
}

// NewPushSubscriptionRepo creates a new PushSubscriptionRepo
func NewPushSubscriptionRepo(db *gorm.DB) *PushSubscriptionRepo {
	return &PushSubscriptionRepo{db: db}
}

// Upsert stores the subscription, replacing the one of the same user and device
func (r *PushSubscriptionRepo) Upsert(ctx context.Context, sub *entity.PushSubscription) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "device_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "platform", "browser", "endpoint", "p256dh", "auth", "updated_at"}),
	}).Create(sub).Error
}

// ListByUser lists the subscriptions of userId
func (r *PushSubscriptionRepo) ListByUser(ctx context.Context, userId string) ([]*entity.PushSubscription, error) {
	subs := make([]*entity.PushSubscription, 0)
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).Order("id DESC").Find(&subs).Error
	return subs, err
}

// DeleteByDevice removes the subscription of one device
func (r *PushSubscriptionRepo) DeleteByDevice(ctx context.Context, userId, deviceId string) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND device_id = ?", userId, deviceId).Delete(&entity.PushSubscription{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteById removes a subscription by primary key
func (r *PushSubscriptionRepo) DeleteById(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&entity.PushSubscription{}, id).Error
}
