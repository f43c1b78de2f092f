package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/LucasDG1/vraag-en-aanbod/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProjectRepo stores projects in a MongoDB collection.
type ProjectRepo struct {
	collection *mongo.Collection
}

func NewProjectRepo(collection *mongo.Collection) *ProjectRepo {
	return &ProjectRepo{collection: collection}
}

// EnsureIndexes creates the createdAt index used by the newest-first
// listing.
func (r *ProjectRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	})
	return err
}

func (r *ProjectRepo) Insert(ctx context.Context, project models.Project) error {
	_, err := r.collection.InsertOne(ctx, project)
	return err
}

func (r *ProjectRepo) GetByID(ctx context.Context, id string) (models.Project, error) {
	var project models.Project
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Project{}, ErrNotFound
	}
	if err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// GetAll returns every project sorted by createdAt descending.
func (r *ProjectRepo) GetAll(ctx context.Context) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Update replaces the stored document for project.ID.
func (r *ProjectRepo) Update(ctx context.Context, project models.Project) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": project.ID}, project)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpired removes every project whose deadline lies before now and
// returns how many were removed.
func (r *ProjectRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{
		"deadline": bson.M{"$ne": nil, "$lt": now},
	})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
