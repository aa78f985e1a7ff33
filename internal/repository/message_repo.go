package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/query"
)

// MessageRepo is the repository for message operations
type MessageRepo struct {
	*Collection[entity.Message, *entity.Message]
}

// NewMessageRepo creates a new MessageRepo
func NewMessageRepo(db *mongo.Database) *MessageRepo {
	return &MessageRepo{Collection: newCollection[entity.Message](db, "messages")}
}

// ListByConversation pages a conversation's messages in send order
func (r *MessageRepo) ListByConversation(ctx context.Context, convId primitive.ObjectID, p query.ListParams) ([]*entity.Message, int64, error) {
	filter := bson.M{"conversationId": convId}

	var (
		items []*entity.Message
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = r.coll.CountDocuments(gctx, filter)
		return err
	})
	g.Go(func() error {
		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
			SetSkip(p.Skip()).
			SetLimit(p.Limit)
		var err error
		items, err = r.find(gctx, filter, opts)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// MarkRead flips every unread message addressed to reader in the conversation
func (r *MessageRepo) MarkRead(ctx context.Context, convId primitive.ObjectID, reader string, at time.Time) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"conversationId": convId, "receiverId": reader, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true, "readAt": at}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// LatestForReceiver returns the newest messages addressed to userId
func (r *MessageRepo) LatestForReceiver(ctx context.Context, userId string, limit int64) ([]*entity.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	return r.find(ctx, bson.M{"receiverId": userId}, opts)
}

func (r *MessageRepo) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "conversationId", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "receiverId", Value: 1}, {Key: "isRead", Value: 1}}},
	})
	return err
}
