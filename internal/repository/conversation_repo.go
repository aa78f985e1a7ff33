package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mbeoliero/realty/internal/entity"
)

// ConversationRepo is the repository for conversation operations
type ConversationRepo struct {
	*Collection[entity.Conversation, *entity.Conversation]
}

// NewConversationRepo creates a new ConversationRepo
func NewConversationRepo(db *mongo.Database) *ConversationRepo {
	return &ConversationRepo{Collection: newCollection[entity.Conversation](db, "conversations")}
}

// FindOrCreate returns the conversation of the pair, inserting it atomically when absent.
// created is true only for the call that inserted the document.
func (r *ConversationRepo) FindOrCreate(ctx context.Context, userA, userB string) (*entity.Conversation, bool, error) {
	conv := entity.NewConversation(userA, userB)
	filter := bson.M{"pairKey": conv.PairKey}

	created := false
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$setOnInsert": conv}, options.Update().SetUpsert(true))
	switch {
	case err == nil:
		created = res.UpsertedID != nil
	case mongo.IsDuplicateKeyError(err):
		// lost the race against a concurrent upsert of the same pair
	default:
		return nil, false, err
	}

	found, err := r.FindOne(ctx, filter)
	if err != nil {
		return nil, false, err
	}
	if found == nil {
		return nil, false, errors.New("conversation vanished after upsert")
	}
	return found, created, nil
}

// UpdateVisibility applies a visibility transition for a participant.
// Returns false when the conversation does not exist or userId is not a participant.
func (r *ConversationRepo) UpdateVisibility(ctx context.Context, id, userId string, action entity.VisibilityAction) (bool, error) {
	oid, ok := entity.ParseObjectId(id)
	if !ok {
		return false, nil
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid, "participants": userId}, action.Update(userId))
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// ListForUser lists userId's conversations in view, most recent activity first
func (r *ConversationRepo) ListForUser(ctx context.Context, userId string, view entity.View) ([]*entity.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "lastMessageAt", Value: -1}, {Key: "_id", Value: -1}})
	return r.find(ctx, entity.VisibilityFilter(userId, view), opts)
}

// CountForUser counts userId's conversations in view
func (r *ConversationRepo) CountForUser(ctx context.Context, userId string, view entity.View) (int64, error) {
	return r.Count(ctx, entity.VisibilityFilter(userId, view))
}

// RecordMessage refreshes the denormalized preview and bumps the receiver's unread counter
func (r *ConversationRepo) RecordMessage(ctx context.Context, msg *entity.Message) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": msg.ConversationId}, bson.M{
		"$set": bson.M{
			"lastMessage":   msg.Preview(),
			"lastMessageAt": msg.CreatedAt,
			"updatedAt":     msg.CreatedAt,
		},
		"$inc": bson.M{"unreadCount." + msg.ReceiverId: 1},
	})
	return err
}

// ResetUnread sets userId's unread counter to zero
func (r *ConversationRepo) ResetUnread(ctx context.Context, id primitive.ObjectID, userId string) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"unreadCount." + userId: 0},
	})
	return err
}

// BackfillPairKeys sets pairKey on two-party conversations created without one
func (r *ConversationRepo) BackfillPairKeys(ctx context.Context) (int, error) {
	convs, err := r.find(ctx, bson.M{"pairKey": bson.M{"$exists": false}, "participants": bson.M{"$size": 2}})
	if err != nil {
		return 0, err
	}

	n := 0
	for _, c := range convs {
		key := entity.GenPairKey(c.Participants[0], c.Participants[1])
		_, err := r.coll.UpdateOne(ctx, bson.M{"_id": c.Id}, bson.M{"$set": bson.M{"pairKey": key, "updatedAt": time.Now()}})
		if mongo.IsDuplicateKeyError(err) {
			continue
		}
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (r *ConversationRepo) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "pairKey", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"pairKey": bson.M{"$exists": true}}),
		},
		{Keys: bson.D{{Key: "participants", Value: 1}, {Key: "lastMessageAt", Value: -1}}},
	})
	return err
}
