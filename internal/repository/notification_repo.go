package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mbeoliero/realty/internal/entity"
)

// NotificationRepo is the repository for in-app notifications
type NotificationRepo struct {
	*Collection[entity.Notification, *entity.Notification]
}

// NewNotificationRepo creates a new NotificationRepo
func NewNotificationRepo(db *mongo.Database) *NotificationRepo {
	return &NotificationRepo{Collection: newCollection[entity.Notification](db, "notifications")}
}

// CountUnread counts userId's unread notifications
func (r *NotificationRepo) CountUnread(ctx context.Context, userId string) (int64, error) {
	return r.Count(ctx, bson.M{"userId": userId, "read": false})
}

// MarkRead marks one of userId's notifications read, reporting whether it exists
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userId string) (bool, error) {
	oid, ok := entity.ParseObjectId(id)
	if !ok {
		return false, nil
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid, "userId": userId}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// MarkAllRead marks every unread notification of userId read
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userId string) (int64, error) {
	res, err := r.coll.UpdateMany(ctx, bson.M{"userId": userId, "read": false}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// DeleteOwned deletes one of userId's notifications
func (r *NotificationRepo) DeleteOwned(ctx context.Context, id, userId string) (bool, error) {
	oid, ok := entity.ParseObjectId(id)
	if !ok {
		return false, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "userId": userId})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *NotificationRepo) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "read", Value: 1}}},
		{Keys: bson.D{{Key: "expiresAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	})
	return err
}
