package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/mbeoliero/realty/internal/entity"
	"github.com/mbeoliero/realty/internal/query"
)

// ErrDuplicate is returned when a write violates a unique index
var ErrDuplicate = errors.New("duplicate key")

// Document is a Mongo document with an ObjectID primary key
type Document[T any] interface {
	*T
	GetId() primitive.ObjectID
	SetId(id primitive.ObjectID)
}

// Collection is the CRUD and paging base shared by the document repositories
type Collection[T any, PT Document[T]] struct {
	coll *mongo.Collection
}

func newCollection[T any, PT Document[T]](db *mongo.Database, name string) *Collection[T, PT] {
	return &Collection[T, PT]{coll: db.Collection(name)}
}

// Create inserts doc and sets its generated id
func (c *Collection[T, PT]) Create(ctx context.Context, doc PT) error {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.SetId(oid)
	}
	return nil
}

// GetById returns the document or nil when the id is unknown or malformed
func (c *Collection[T, PT]) GetById(ctx context.Context, id string) (PT, error) {
	oid, ok := entity.ParseObjectId(id)
	if !ok {
		return nil, nil
	}
	return c.FindOne(ctx, bson.M{"_id": oid})
}

// FindOne returns the first document matching filter, or nil
func (c *Collection[T, PT]) FindOne(ctx context.Context, filter bson.M) (PT, error) {
	doc := PT(new(T))
	err := c.coll.FindOne(ctx, filter).Decode(doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc, nil
}

// Replace overwrites the stored document with doc
func (c *Collection[T, PT]) Replace(ctx context.Context, doc PT) error {
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": doc.GetId()}, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// DeleteById removes the document, reporting whether it existed
func (c *Collection[T, PT]) DeleteById(ctx context.Context, id string) (bool, error) {
	oid, ok := entity.ParseObjectId(id)
	if !ok {
		return false, nil
	}
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// Count counts documents matching filter
func (c *Collection[T, PT]) Count(ctx context.Context, filter bson.M) (int64, error) {
	return c.coll.CountDocuments(ctx, filter)
}

// Page returns one page of documents matching filter, newest first, with the filtered total
func (c *Collection[T, PT]) Page(ctx context.Context, filter bson.M, p query.ListParams) ([]PT, int64, error) {
	var (
		items []PT
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = c.coll.CountDocuments(gctx, filter)
		return err
	})
	g.Go(func() error {
		opts := options.Find().
			SetSort(bson.D{{Key: "_id", Value: -1}}).
			SetSkip(p.Skip()).
			SetLimit(p.Limit)
		var err error
		items, err = c.find(gctx, filter, opts)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FindIds returns the hex ids of documents matching filter
func (c *Collection[T, PT]) FindIds(ctx context.Context, filter bson.M) ([]string, error) {
	cursor, err := c.coll.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var row struct {
			Id primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		ids = append(ids, row.Id.Hex())
	}
	return ids, cursor.Err()
}

func (c *Collection[T, PT]) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]PT, error) {
	cursor, err := c.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]PT, 0)
	for cursor.Next(ctx) {
		doc := PT(new(T))
		if err := cursor.Decode(doc); err != nil {
			return nil, err
		}
		items = append(items, doc)
	}
	return items, cursor.Err()
}
