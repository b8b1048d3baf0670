// File: database/repository/friendship/friendship_mongo.go
package friendshipRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"whenfree/models"
)

func (r *mongoFriendshipRepo) Create(ctx context.Context, f *models.Friendship) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, f)
	return err
}

func (r *mongoFriendshipRepo) GetByID(ctx context.Context, id string) (*models.Friendship, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var f models.Friendship
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *mongoFriendshipRepo) FindBetween(ctx context.Context, userA, userB string) (*models.Friendship, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"$or": []bson.M{
		{"requesterId": userA, "addresseeId": userB},
		{"requesterId": userB, "addresseeId": userA},
	}}
	var f models.Friendship
	if err := r.coll.FindOne(ctx, filter).Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *mongoFriendshipRepo) MarkAccepted(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":      models.FriendshipAccepted,
		"respondedAt": time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id, "status": models.FriendshipPending}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoFriendshipRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoFriendshipRepo) ListAcceptedFor(ctx context.Context, userID string) ([]models.Friendship, error) {
	return r.list(ctx, bson.M{
		"status": models.FriendshipAccepted,
		"$or":    []bson.M{{"requesterId": userID}, {"addresseeId": userID}},
	})
}

func (r *mongoFriendshipRepo) ListPendingFor(ctx context.Context, addresseeID string) ([]models.Friendship, error) {
	return r.list(ctx, bson.M{"status": models.FriendshipPending, "addresseeId": addresseeID})
}

func (r *mongoFriendshipRepo) list(ctx context.Context, filter bson.M) ([]models.Friendship, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Friendship
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
