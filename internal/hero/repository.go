package hero

import (
	"context"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, b *Banner) error
	Get(ctx context.Context, id string) (*Banner, error)
	// List returns banners by order ascending.
	List(ctx context.Context, activeOnly bool) ([]Banner, error)
	Replace(ctx context.Context, b *Banner) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
	SetOrder(ctx context.Context, id string, order int) error
	Count(ctx context.Context) (int64, error)
}

type MongoRepository struct{ col *mongo.Collection }

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, b *Banner) error {
	if b.ID == "" {
		b.ID = primitive.NewObjectID().Hex()
	}
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	return database.Insert(ctx, r.col, b, "hero banner")
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*Banner, error) {
	return database.FindOne[Banner](ctx, r.col, bson.M{"_id": id}, "hero banner")
}

func (r *MongoRepository) List(ctx context.Context, activeOnly bool) ([]Banner, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}})
	return database.FindAll[Banner](ctx, r.col, filter, opts)
}

func (r *MongoRepository) Replace(ctx context.Context, b *Banner) error {
	b.UpdatedAt = time.Now().UTC()
	return database.ReplaceByID(ctx, r.col, b.ID, b, "hero banner")
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	return database.DeleteByID(ctx, r.col, id, "hero banner")
}

func (r *MongoRepository) SetActive(ctx context.Context, id string, active bool) error {
	return database.SetByID(ctx, r.col, id, bson.M{"isActive": active}, "hero banner")
}

func (r *MongoRepository) SetOrder(ctx context.Context, id string, order int) error {
	return database.SetByID(ctx, r.col, id, bson.M{"order": order}, "hero banner")
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
