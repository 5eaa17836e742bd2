package categories

import (
	"context"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const entity = "category"

type Repository interface {
	Create(ctx context.Context, c *Category) error
	Get(ctx context.Context, id string) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	NameExists(ctx context.Context, name, exceptID string) (bool, error)
	// List returns categories ordered by order, then name.
	List(ctx context.Context, activeOnly bool) ([]Category, error)
	Replace(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
	Count(ctx context.Context) (int64, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, c *Category) error {
	now := time.Now().UTC()
	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	return database.Insert(ctx, r.col, c, "category name or slug")
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*Category, error) {
	return database.FindOne[Category](ctx, r.col, bson.M{"_id": id}, entity)
}

func (r *MongoRepository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	return database.FindOne[Category](ctx, r.col, bson.M{"slug": slug}, entity)
}

func (r *MongoRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return database.Exists(ctx, r.col, bson.M{"slug": slug})
}

func (r *MongoRepository) NameExists(ctx context.Context, name, exceptID string) (bool, error) {
	filter := bson.M{"name": database.CaseInsensitive(name)}
	if exceptID != "" {
		filter["_id"] = bson.M{"$ne": exceptID}
	}
	return database.Exists(ctx, r.col, filter)
}

func (r *MongoRepository) List(ctx context.Context, activeOnly bool) ([]Category, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}})
	return database.FindAll[Category](ctx, r.col, filter, opts)
}

func (r *MongoRepository) Replace(ctx context.Context, c *Category) error {
	c.UpdatedAt = time.Now().UTC()
	return database.ReplaceByID(ctx, r.col, c.ID, c, "category name or slug")
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	return database.DeleteByID(ctx, r.col, id, entity)
}

func (r *MongoRepository) SetActive(ctx context.Context, id string, active bool) error {
	return database.SetByID(ctx, r.col, id, bson.M{"isActive": active}, entity)
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
