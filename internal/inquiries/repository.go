package inquiries

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
	Create(ctx context.Context, i *Inquiry) error
	Get(ctx context.Context, id string) (*Inquiry, error)
	List(ctx context.Context, f Filter, page models.PageRequest) (models.Page[Inquiry], error)
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, f Filter) (int64, error)
}

type MongoRepository struct{ col *mongo.Collection }

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func filterDoc(f Filter) bson.M {
	doc := bson.M{}
	if f.VendorID != "" {
		doc["vendorId"] = f.VendorID
	}
	if f.BusinessID != "" {
		doc["businessId"] = f.BusinessID
	}
	if f.Status != "" {
		doc["status"] = f.Status
	}
	return doc
}

func (r *MongoRepository) Create(ctx context.Context, i *Inquiry) error {
	if i.ID == "" {
		i.ID = primitive.NewObjectID().Hex()
	}
	i.CreatedAt = time.Now().UTC()
	i.UpdatedAt = i.CreatedAt
	return database.Insert(ctx, r.col, i, "inquiry")
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*Inquiry, error) {
	return database.FindOne[Inquiry](ctx, r.col, bson.M{"_id": id}, "inquiry")
}

func (r *MongoRepository) List(ctx context.Context, f Filter, page models.PageRequest) (models.Page[Inquiry], error) {
	return database.FindPage[Inquiry](ctx, r.col, filterDoc(f), bson.D{{Key: "createdAt", Value: -1}}, page)
}

func (r *MongoRepository) SetStatus(ctx context.Context, id, status string) error {
	return database.SetByID(ctx, r.col, id, bson.M{"status": status}, "inquiry")
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	return database.DeleteByID(ctx, r.col, id, "inquiry")
}

func (r *MongoRepository) Count(ctx context.Context, f Filter) (int64, error) {
	return r.col.CountDocuments(ctx, filterDoc(f))
}
