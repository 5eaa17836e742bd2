package database

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

// FindPage counts and fetches one page of documents matching filter.
func FindPage[T any](ctx context.Context, col *mongo.Collection, filter interface{}, sort bson.D, page models.PageRequest) (models.Page[T], error) {
	page = page.Normalize()
	out := models.Page[T]{PageRequest: page}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := col.CountDocuments(gctx, filter)
		out.Total = n
		return err
	})
	g.Go(func() error {
		opts := options.Find().SetSort(sort).SetSkip(page.Skip()).SetLimit(int64(page.Limit))
		items, err := FindAll[T](gctx, col, filter, opts)
		out.Items = items
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Page[T]{}, err
	}
	return out, nil
}

// FindAll decodes every document matching filter.
func FindAll[T any](ctx context.Context, col *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindOne decodes the first match, or returns models.NotFound(entity).
func FindOne[T any](ctx context.Context, col *mongo.Collection, filter interface{}, entity string) (*T, error) {
	var v T
	if err := col.FindOne(ctx, filter).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NotFound(entity)
		}
		return nil, err
	}
	return &v, nil
}

// Exists reports whether any document matches filter.
func Exists(ctx context.Context, col *mongo.Collection, filter interface{}) (bool, error) {
	n, err := col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	return n > 0, err
}

// SetByID applies $set (plus updatedAt) to one document.
func SetByID(ctx context.Context, col *mongo.Collection, id string, set bson.M, entity string) error {
	if set == nil {
		set = bson.M{}
	}
	set["updatedAt"] = time.Now().UTC()
	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Conflict(entity)
		}
		return err
	}
	if res.MatchedCount == 0 {
		return models.NotFound(entity)
	}
	return nil
}

// ReplaceByID overwrites one document.
func ReplaceByID(ctx context.Context, col *mongo.Collection, id string, doc interface{}, entity string) error {
	res, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Conflict(entity)
		}
		return err
	}
	if res.MatchedCount == 0 {
		return models.NotFound(entity)
	}
	return nil
}

func DeleteByID(ctx context.Context, col *mongo.Collection, id string, entity string) error {
	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.NotFound(entity)
	}
	return nil
}

// Insert stores doc, mapping duplicate keys to models.Conflict(what).
func Insert(ctx context.Context, col *mongo.Collection, doc interface{}, what string) error {
	if _, err := col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Conflict(what)
		}
		return err
	}
	return nil
}

// CaseInsensitive matches the whole value ignoring case.
func CaseInsensitive(v string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(v) + "$", "$options": "i"}
}

// Contains matches a substring ignoring case.
func Contains(v string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(v), "$options": "i"}
}
