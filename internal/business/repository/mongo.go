package repository

import (
	"context"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/business"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/database"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const entity = "business"

// listSort: featured first, then best rated, then newest.
var listSort = bson.D{
	{Key: "isFeatured", Value: -1},
	{Key: "rating.average", Value: -1},
	{Key: "createdAt", Value: -1},
}

// MongoRepo stores listings in the businesses collection.
// Indexes (slug unique, location 2dsphere) are created by database.EnsureIndexes.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func filterDoc(f business.Filter) bson.M {
	q := bson.M{}
	if f.CategoryID != "" {
		q["categoryId"] = f.CategoryID
	}
	if f.VendorID != "" {
		q["vendorId"] = f.VendorID
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.City != "" {
		q["address.city"] = database.CaseInsensitive(f.City)
	}
	if f.Active != nil {
		q["isActive"] = *f.Active
	}
	if f.Featured != nil {
		q["isFeatured"] = *f.Featured
	}
	if f.Query != "" {
		rx := database.Contains(f.Query)
		q["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"tags": rx},
			bson.M{"description": rx},
		}
	}
	return q
}

func (m *MongoRepo) Create(ctx context.Context, b *business.Business) error {
	now := time.Now().UTC()
	if b.ID == "" {
		b.ID = primitive.NewObjectID().Hex()
	}
	b.CreatedAt = now
	b.UpdatedAt = now
	return database.Insert(ctx, m.col, b, "slug")
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*business.Business, error) {
	return database.FindOne[business.Business](ctx, m.col, bson.M{"_id": id}, entity)
}

func (m *MongoRepo) GetBySlug(ctx context.Context, slug string) (*business.Business, error) {
	return database.FindOne[business.Business](ctx, m.col, bson.M{"slug": slug}, entity)
}

func (m *MongoRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	return database.Exists(ctx, m.col, bson.M{"slug": slug})
}

func (m *MongoRepo) List(ctx context.Context, f business.Filter, page models.PageRequest) (models.Page[business.Business], error) {
	return database.FindPage[business.Business](ctx, m.col, filterDoc(f), listSort, page)
}

func (m *MongoRepo) All(ctx context.Context, f business.Filter) ([]business.Business, error) {
	return database.FindAll[business.Business](ctx, m.col, filterDoc(f), options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

// Nearby relies on $near, which returns documents ordered by distance.
func (m *MongoRepo) Nearby(ctx context.Context, q business.NearbyQuery) ([]business.Nearby, error) {
	q = q.Normalize()
	filter := filterDoc(business.Filter{CategoryID: q.CategoryID, Status: business.StatusApproved, Active: boolPtr(true)})
	filter["location"] = bson.M{
		"$near": bson.M{
			"$geometry":    bson.M{"type": "Point", "coordinates": bson.A{q.Lng, q.Lat}},
			"$maxDistance": q.RadiusKm * 1000,
		},
	}
	found, err := database.FindAll[business.Business](ctx, m.col, filter, options.Find().SetLimit(int64(q.Limit)))
	if err != nil {
		return nil, err
	}
	out := make([]business.Nearby, 0, len(found))
	for _, b := range found {
		out = append(out, business.Nearby{
			Business:   b,
			DistanceKm: models.DistanceKm(q.Lat, q.Lng, b.Location.Lat(), b.Location.Lng()),
		})
	}
	return out, nil
}

func (m *MongoRepo) Replace(ctx context.Context, b *business.Business) error {
	b.UpdatedAt = time.Now().UTC()
	return database.ReplaceByID(ctx, m.col, b.ID, b, "slug")
}

func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	return database.DeleteByID(ctx, m.col, id, entity)
}

func (m *MongoRepo) SetActive(ctx context.Context, id string, active bool) error {
	return database.SetByID(ctx, m.col, id, bson.M{"isActive": active}, entity)
}

func (m *MongoRepo) SetStatus(ctx context.Context, id, status string) error {
	return database.SetByID(ctx, m.col, id, bson.M{"status": status}, entity)
}

func (m *MongoRepo) SetFeatured(ctx context.Context, id string, featured bool) error {
	return database.SetByID(ctx, m.col, id, bson.M{"isFeatured": featured}, entity)
}

func (m *MongoRepo) SetSlug(ctx context.Context, id, slug string) error {
	return database.SetByID(ctx, m.col, id, bson.M{"slug": slug}, "slug")
}

func (m *MongoRepo) SetRating(ctx context.Context, id string, r business.Rating) error {
	return database.SetByID(ctx, m.col, id, bson.M{"rating": r}, entity)
}

// IncrementViews does not touch updatedAt; sitemap lastmod follows content edits only.
func (m *MongoRepo) IncrementViews(ctx context.Context, id string) error {
	_, err := m.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

func (m *MongoRepo) Count(ctx context.Context, f business.Filter) (int64, error) {
	return m.col.CountDocuments(ctx, filterDoc(f))
}

func (m *MongoRepo) PatchStatus(ctx context.Context, from, to, categoryID string) (int64, error) {
	filter := filterDoc(business.Filter{Status: from, CategoryID: categoryID})
	res, err := m.col.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func boolPtr(b bool) *bool { return &b }
