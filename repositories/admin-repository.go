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

// AdminRepo stores admin requests and approved admins. Admin users are
// keyed by email (the document _id), so the store itself guarantees at
// most one entry per address and the approve flow can upsert instead of
// reading and rewriting a list.
type AdminRepo struct {
	requests *mongo.Collection
	admins   *mongo.Collection
}

func NewAdminRepo(requests, admins *mongo.Collection) *AdminRepo {
	return &AdminRepo{requests: requests, admins: admins}
}

func (r *AdminRepo) InsertRequest(ctx context.Context, request models.AdminRequest) error {
	_, err := r.requests.InsertOne(ctx, request)
	return err
}

func (r *AdminRepo) GetRequest(ctx context.Context, id string) (models.AdminRequest, error) {
	var request models.AdminRequest
	err := r.requests.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.AdminRequest{}, ErrNotFound
	}
	if err != nil {
		return models.AdminRequest{}, err
	}
	return request, nil
}

// PendingRequests returns only requests that have not been approved yet,
// newest first.
func (r *AdminRepo) PendingRequests(ctx context.Context) ([]models.AdminRequest, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.requests.Find(ctx, bson.M{"approved": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	requests := []models.AdminRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// MarkRequestApproved flips approved to true for the given request. The
// filter includes approved:false so a request transitions exactly once;
// a second call is a no-op rather than an error.
func (r *AdminRepo) MarkRequestApproved(ctx context.Context, id, approvedBy string, approvedAt time.Time) error {
	_, err := r.requests.UpdateOne(ctx,
		bson.M{"_id": id, "approved": false},
		bson.M{"$set": bson.M{
			"approved":   true,
			"approvedAt": approvedAt,
			"approvedBy": approvedBy,
		}},
	)
	return err
}

// UpsertAdminUser inserts the admin or leaves an existing entry in
// place. The _id is the email, so duplicate approvals can never produce
// two entries for the same address.
func (r *AdminRepo) UpsertAdminUser(ctx context.Context, admin models.AdminUser) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.admins.UpdateOne(ctx,
		bson.M{"_id": admin.Email},
		bson.M{"$setOnInsert": admin},
		opts,
	)
	return err
}

func (r *AdminRepo) GetAdminUser(ctx context.Context, email string) (models.AdminUser, error) {
	var admin models.AdminUser
	err := r.admins.FindOne(ctx, bson.M{"_id": email}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.AdminUser{}, ErrNotFound
	}
	if err != nil {
		return models.AdminUser{}, err
	}
	return admin, nil
}
