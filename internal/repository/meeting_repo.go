package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/pkg/constant"
)

// MeetingRepo is the repository for meetings
type MeetingRepo struct {
	*Collection[entity.Meeting, *entity.Meeting]
}

// NewMeetingRepo creates a new MeetingRepo
func NewMeetingRepo(db *mongo.Database) *MeetingRepo {
	return &MeetingRepo{Collection: newCollection[entity.Meeting](db, "meetings")}
}

var upcomingStatuses = []string{constant.MeetingStatusScheduled, constant.MeetingStatusRescheduled}

// MarkPast moves upcoming meetings that started before cutoff to the past status
func (r *MeetingRepo) MarkPast(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"status": bson.M{"$in": upcomingStatuses}, "startsAt": bson.M{"$lte": cutoff}},
		bson.M{"$set": bson.M{"status": constant.MeetingStatusPast, "updatedAt": time.Now()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// FindUpcomingBetween lists upcoming meetings starting in (from, to]
func (r *MeetingRepo) FindUpcomingBetween(ctx context.Context, from, to time.Time) ([]*entity.Meeting, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startsAt", Value: 1}})
	return r.find(ctx, bson.M{
		"status":   bson.M{"$in": upcomingStatuses},
		"startsAt": bson.M{"$gt": from, "$lte": to},
	}, opts)
}

func (r *MeetingRepo) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "startsAt", Value: 1}}},
		{Keys: bson.D{{Key: "agencyId", Value: 1}}},
	})
	return err
}
