package ads

import (
	"context"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/database"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, a *Ad) error
	Get(ctx context.Context, id string) (*Ad, error)
	// Live returns ads matching q ordered by order ascending.
	Live(ctx context.Context, q Query) ([]Ad, error)
	List(ctx context.Context, page models.PageRequest) (models.Page[Ad], error)
	Replace(ctx context.Context, a *Ad) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
	AddImpressions(ctx context.Context, ids []string) error
	AddClick(ctx context.Context, id string) error
}

type MongoRepository struct{ col *mongo.Collection }

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, a *Ad) error {
	if a.ID == "" {
		a.ID = primitive.NewObjectID().Hex()
	}
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	return database.Insert(ctx, r.col, a, "ad")
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*Ad, error) {
	return database.FindOne[Ad](ctx, r.col, bson.M{"_id": id}, "ad")
}

func liveFilter(q Query) bson.M {
	and := bson.A{
		bson.M{"$or": bson.A{bson.M{"startsAt": nil}, bson.M{"startsAt": bson.M{"$lte": q.Now}}}},
		bson.M{"$or": bson.A{bson.M{"endsAt": nil}, bson.M{"endsAt": bson.M{"$gt": q.Now}}}},
	}
	if q.CategoryID != "" {
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"categoryId": q.CategoryID},
			bson.M{"categoryId": bson.M{"$in": bson.A{nil, ""}}},
		}})
	}
	doc := bson.M{"isActive": true, "$and": and}
	if q.Placement != "" {
		doc["placement"] = q.Placement
	}
	return doc
}

func (r *MongoRepository) Live(ctx context.Context, q Query) ([]Ad, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: -1}})
	return database.FindAll[Ad](ctx, r.col, liveFilter(q), opts)
}

func (r *MongoRepository) List(ctx context.Context, page models.PageRequest) (models.Page[Ad], error) {
	return database.FindPage[Ad](ctx, r.col, bson.M{}, bson.D{{Key: "placement", Value: 1}, {Key: "order", Value: 1}}, page)
}

func (r *MongoRepository) Replace(ctx context.Context, a *Ad) error {
	a.UpdatedAt = time.Now().UTC()
	return database.ReplaceByID(ctx, r.col, a.ID, a, "ad")
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	return database.DeleteByID(ctx, r.col, id, "ad")
}

func (r *MongoRepository) SetActive(ctx context.Context, id string, active bool) error {
	return database.SetByID(ctx, r.col, id, bson.M{"isActive": active}, "ad")
}

func (r *MongoRepository) AddImpressions(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.col.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": ids}}, bson.M{"$inc": bson.M{"impressions": 1}})
	return err
}

func (r *MongoRepository) AddClick(ctx context.Context, id string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"clicks": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.NotFound("ad")
	}
	return nil
}
