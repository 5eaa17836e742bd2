package vendors

import (
	"context"
	"errors"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/database"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

// Repository defines persistence operations for vendor accounts
type Repository interface {
	Create(ctx context.Context, v *models.Vendor) error
	GetByID(ctx context.Context, id string) (*models.Vendor, error)
	GetByEmail(ctx context.Context, email string) (*models.Vendor, error)
	UpsertBySub(ctx context.Context, v *models.Vendor) (*models.Vendor, error)
	List(ctx context.Context, page models.PageRequest) (models.Page[models.Vendor], error)
	SetActive(ctx context.Context, id string, active bool) error
	Count(ctx context.Context) (int64, error)
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository creates a new repository for the given collection
func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, v *models.Vendor) error {
	now := time.Now().UTC()
	if v.ID == "" {
		v.ID = primitive.NewObjectID().Hex()
	}
	v.CreatedAt = now
	v.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, v); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Conflict("email")
		}
		return err
	}
	return nil
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*models.Vendor, error) {
	var v models.Vendor
	if err := r.col.FindOne(ctx, filter).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NotFound("vendor")
		}
		return nil, err
	}
	return &v, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.Vendor, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoRepository) UpsertBySub(ctx context.Context, v *models.Vendor) (*models.Vendor, error) {
	now := time.Now().UTC()
	filter := bson.M{"sub": v.Sub}
	update := bson.M{
		"$set": bson.M{
			"email":     v.Email,
			"name":      v.Name,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID().Hex(),
			"role":      models.RoleVendor,
			"isActive":  true,
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var updated models.Vendor
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// the email already belongs to a password account
			return nil, models.Conflict("email")
		}
		return nil, err
	}
	return &updated, nil
}

func (r *MongoRepository) List(ctx context.Context, page models.PageRequest) (models.Page[models.Vendor], error) {
	return database.FindPage[models.Vendor](ctx, r.col, bson.M{}, newestFirst, page)
}

func (r *MongoRepository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.NotFound("vendor")
	}
	return nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"role": models.RoleVendor})
}
