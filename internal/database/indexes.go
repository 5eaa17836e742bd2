package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names shared by repositories and maintenance commands.
const (
	CollectionVendors       = "vendors"
	CollectionSessions      = "sessions"
	CollectionBusinesses    = "businesses"
	CollectionCategories    = "categories"
	CollectionReviews       = "reviews"
	CollectionInquiries     = "inquiries"
	CollectionAds           = "ads"
	CollectionHeroBanners   = "hero_banners"
	CollectionPlans         = "plans"
	CollectionSubscriptions = "subscriptions"
)

// IndexSpec lists the indexes each collection must carry.
var IndexSpec = map[string][]mongo.IndexModel{
	CollectionBusinesses: {
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName("slug_unique")},
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}, Options: options.Index().SetName("location_2dsphere")},
		{Keys: bson.D{{Key: "categoryId", Value: 1}}, Options: options.Index().SetName("category")},
		{Keys: bson.D{{Key: "vendorId", Value: 1}}, Options: options.Index().SetName("vendor")},
		{Keys: bson.D{{Key: "address.city", Value: 1}}, Options: options.Index().SetName("city")},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "isActive", Value: 1}}, Options: options.Index().SetName("status_active")},
	},
	CollectionCategories: {
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName("slug_unique")},
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetName("name_unique")},
	},
	CollectionVendors: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_unique")},
		{Keys: bson.D{{Key: "sub", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true).SetName("sub_unique")},
	},
	CollectionSessions: {
		{Keys: bson.D{{Key: "refreshToken", Value: 1}}, Options: options.Index().SetUnique(true).SetName("refresh_unique")},
		{Keys: bson.D{{Key: "expiresAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_ttl")},
	},
	CollectionReviews: {
		{Keys: bson.D{{Key: "businessId", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("business_created")},
	},
	CollectionInquiries: {
		{Keys: bson.D{{Key: "businessId", Value: 1}}, Options: options.Index().SetName("business")},
		{Keys: bson.D{{Key: "vendorId", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("vendor_created")},
	},
	CollectionAds: {
		{Keys: bson.D{{Key: "placement", Value: 1}, {Key: "isActive", Value: 1}}, Options: options.Index().SetName("placement_active")},
	},
	CollectionHeroBanners: {
		{Keys: bson.D{{Key: "order", Value: 1}}, Options: options.Index().SetName("order")},
	},
	CollectionPlans: {
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName("slug_unique")},
	},
	CollectionSubscriptions: {
		{Keys: bson.D{{Key: "vendorId", Value: 1}, {Key: "status", Value: 1}}, Options: options.Index().SetName("vendor_status")},
	},
}

// EnsureIndexes creates every index in IndexSpec. Creating an existing index is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for col, models := range IndexSpec {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", col, err)
		}
	}
	return nil
}

// DropIndexes removes all non-_id indexes so EnsureIndexes can rebuild them.
func DropIndexes(ctx context.Context, db *mongo.Database) error {
	for col := range IndexSpec {
		if _, err := db.Collection(col).Indexes().DropAll(ctx); err != nil {
			// a collection that was never created has no indexes to drop
			var cmdErr mongo.CommandError
			if errors.As(err, &cmdErr) && cmdErr.Name == "NamespaceNotFound" {
				continue
			}
			return fmt.Errorf("drop indexes on %s: %w", col, err)
		}
	}
	return nil
}

// IsDuplicateKey reports whether err is a unique index violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
