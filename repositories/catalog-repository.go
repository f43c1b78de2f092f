package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	catalogCategories = "categories"
	catalogSkills     = "skills"
)

type catalogDocument struct {
	ID     string   `bson:"_id"`
	Values []string `bson:"values"`
}

// CatalogRepo stores the server-defined reference lists (categories and
// skills) as one document per list.
type CatalogRepo struct {
	collection *mongo.Collection
}

func NewCatalogRepo(collection *mongo.Collection) *CatalogRepo {
	return &CatalogRepo{collection: collection}
}

func (r *CatalogRepo) Categories(ctx context.Context) ([]string, error) {
	return r.values(ctx, catalogCategories)
}

func (r *CatalogRepo) Skills(ctx context.Context) ([]string, error) {
	return r.values(ctx, catalogSkills)
}

func (r *CatalogRepo) values(ctx context.Context, id string) ([]string, error) {
	var doc catalogDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Values, nil
}

// SeedDefaults writes the default lists unless a list is already
// present, so redeploys never clobber an edited catalog.
func (r *CatalogRepo) SeedDefaults(ctx context.Context, categories, skills []string) error {
	if err := r.seed(ctx, catalogCategories, categories); err != nil {
		return err
	}
	return r.seed(ctx, catalogSkills, skills)
}

func (r *CatalogRepo) seed(ctx context.Context, id string, values []string) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$setOnInsert": bson.M{"values": values}},
		opts,
	)
	return err
}
