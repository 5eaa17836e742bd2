package reviews

import (
	"context"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/database"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repository interface {
	Create(ctx context.Context, r *Review) error
	Get(ctx context.Context, id string) (*Review, error)
	// List returns matches newest first.
	List(ctx context.Context, f Filter, page models.PageRequest) (models.Page[Review], error)
	SetVisible(ctx context.Context, id string, visible bool) error
	Delete(ctx context.Context, id string) error
	// VisibleStats returns the mean rating and count of visible reviews.
	VisibleStats(ctx context.Context, businessID string) (float64, int, error)
	Count(ctx context.Context) (int64, error)
}

type MongoRepository struct{ col *mongo.Collection }

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (m *MongoRepository) Create(ctx context.Context, r *Review) error {
	if r.ID == "" {
		r.ID = primitive.NewObjectID().Hex()
	}
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = r.CreatedAt
	return database.Insert(ctx, m.col, r, "review")
}

func (m *MongoRepository) Get(ctx context.Context, id string) (*Review, error) {
	return database.FindOne[Review](ctx, m.col, bson.M{"_id": id}, "review")
}

func filterDoc(f Filter) bson.M {
	doc := bson.M{}
	if f.BusinessID != "" {
		doc["businessId"] = f.BusinessID
	}
	if f.Visible != nil {
		doc["isVisible"] = *f.Visible
	}
	return doc
}

func (m *MongoRepository) List(ctx context.Context, f Filter, page models.PageRequest) (models.Page[Review], error) {
	return database.FindPage[Review](ctx, m.col, filterDoc(f), bson.D{{Key: "createdAt", Value: -1}}, page)
}

func (m *MongoRepository) SetVisible(ctx context.Context, id string, visible bool) error {
	return database.SetByID(ctx, m.col, id, bson.M{"isVisible": visible}, "review")
}

func (m *MongoRepository) Delete(ctx context.Context, id string) error {
	return database.DeleteByID(ctx, m.col, id, "review")
}

func (m *MongoRepository) VisibleStats(ctx context.Context, businessID string) (float64, int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"businessId": businessID, "isVisible": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}
	cur, err := m.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cur.Close(ctx)
	var out []struct {
		Average float64 `bson:"average"`
		Count   int     `bson:"count"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return 0, 0, err
	}
	if len(out) == 0 {
		return 0, 0, nil
	}
	return out[0].Average, out[0].Count, nil
}

func (m *MongoRepository) Count(ctx context.Context) (int64, error) {
	return m.col.CountDocuments(ctx, bson.M{})
}
