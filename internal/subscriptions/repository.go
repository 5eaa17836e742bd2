package subscriptions

import (
	"context"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PlanRepository interface {
	Create(ctx context.Context, p *Plan) error
	Get(ctx context.Context, id string) (*Plan, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// List orders plans by price ascending.
	List(ctx context.Context, activeOnly bool) ([]Plan, error)
	Replace(ctx context.Context, p *Plan) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
}

type SubscriptionRepository interface {
	Create(ctx context.Context, s *Subscription) error
	// Active returns the newest subscription in status active, or nil.
	Active(ctx context.Context, vendorID string) (*Subscription, error)
	SetStatus(ctx context.Context, id, status string) error
	// CancelActive moves every active subscription of the vendor to cancelled.
	CancelActive(ctx context.Context, vendorID string) (int64, error)
	// ExpireBefore moves active subscriptions ending before t to expired.
	ExpireBefore(ctx context.Context, t time.Time) (int64, error)
	CountActive(ctx context.Context, now time.Time) (int64, error)
	ByVendor(ctx context.Context, vendorID string) ([]Subscription, error)
}

type MongoPlans struct{ col *mongo.Collection }

func NewMongoPlans(col *mongo.Collection) *MongoPlans { return &MongoPlans{col: col} }

func (r *MongoPlans) Create(ctx context.Context, p *Plan) error {
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	return database.Insert(ctx, r.col, p, "plan slug")
}

func (r *MongoPlans) Get(ctx context.Context, id string) (*Plan, error) {
	return database.FindOne[Plan](ctx, r.col, bson.M{"_id": id}, "plan")
}

func (r *MongoPlans) SlugExists(ctx context.Context, slug string) (bool, error) {
	return database.Exists(ctx, r.col, bson.M{"slug": slug})
}

func (r *MongoPlans) List(ctx context.Context, activeOnly bool) ([]Plan, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	return database.FindAll[Plan](ctx, r.col, filter, options.Find().SetSort(bson.D{{Key: "price", Value: 1}}))
}

func (r *MongoPlans) Replace(ctx context.Context, p *Plan) error {
	p.UpdatedAt = time.Now().UTC()
	return database.ReplaceByID(ctx, r.col, p.ID, p, "plan slug")
}

func (r *MongoPlans) Delete(ctx context.Context, id string) error {
	return database.DeleteByID(ctx, r.col, id, "plan")
}

func (r *MongoPlans) SetActive(ctx context.Context, id string, active bool) error {
	return database.SetByID(ctx, r.col, id, bson.M{"isActive": active}, "plan")
}

type MongoSubscriptions struct{ col *mongo.Collection }

func NewMongoSubscriptions(col *mongo.Collection) *MongoSubscriptions {
	return &MongoSubscriptions{col: col}
}

func (r *MongoSubscriptions) Create(ctx context.Context, s *Subscription) error {
	if s.ID == "" {
		s.ID = primitive.NewObjectID().Hex()
	}
	s.CreatedAt = time.Now().UTC()
	s.UpdatedAt = s.CreatedAt
	return database.Insert(ctx, r.col, s, "subscription")
}

func (r *MongoSubscriptions) Active(ctx context.Context, vendorID string) (*Subscription, error) {
	var s Subscription
	opts := options.FindOne().SetSort(bson.D{{Key: "startsAt", Value: -1}})
	err := r.col.FindOne(ctx, bson.M{"vendorId": vendorID, "status": StatusActive}, opts).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *MongoSubscriptions) SetStatus(ctx context.Context, id, status string) error {
	return database.SetByID(ctx, r.col, id, bson.M{"status": status}, "subscription")
}

func (r *MongoSubscriptions) setMany(ctx context.Context, filter bson.M, status string) (int64, error) {
	res, err := r.col.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *MongoSubscriptions) CancelActive(ctx context.Context, vendorID string) (int64, error) {
	return r.setMany(ctx, bson.M{"vendorId": vendorID, "status": StatusActive}, StatusCancelled)
}

func (r *MongoSubscriptions) ExpireBefore(ctx context.Context, t time.Time) (int64, error) {
	return r.setMany(ctx, bson.M{"status": StatusActive, "endsAt": bson.M{"$lte": t}}, StatusExpired)
}

func (r *MongoSubscriptions) CountActive(ctx context.Context, now time.Time) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"status": StatusActive, "endsAt": bson.M{"$gt": now}})
}

func (r *MongoSubscriptions) ByVendor(ctx context.Context, vendorID string) ([]Subscription, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startsAt", Value: -1}})
	return database.FindAll[Subscription](ctx, r.col, bson.M{"vendorId": vendorID}, opts)
}
