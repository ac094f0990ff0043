package database

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/plantnet/plantnet-server/models"
)

func (s *MongoStore) RegisterUser(ctx context.Context, user models.User) (*models.User, error) {
	update := bson.M{
		"$setOnInsert": bson.M{
			"name":      user.Name,
			"image":     user.Image,
			"role":      models.RoleCustomer,
			"timestamp": user.Timestamp,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored models.User
	err := s.users().FindOneAndUpdate(ctx, bson.M{"email": user.Email}, update, opts).Decode(&stored)
	if mongo.IsDuplicateKeyError(err) {
		// Lost the insert race against another first sign-in; read the winner back.
		return s.FindUserByEmail(ctx, user.Email)
	}
	if err != nil {
		return nil, errors.Wrap(err, "register user")
	}
	return &stored, nil
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, notFound(err, "find user")
	}
	return &user, nil
}

func (s *MongoStore) ListUsersExcept(ctx context.Context, email string) ([]models.User, error) {
	cursor, err := s.users().Find(ctx, bson.M{"email": bson.M{"$ne": email}})
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "decode users")
	}
	return users, nil
}

func (s *MongoStore) SetUserStatus(ctx context.Context, email string, status models.UserStatus) error {
	return s.updateUser(ctx, email, bson.M{"status": status})
}

func (s *MongoStore) SetUserRole(ctx context.Context, email string, role models.Role) error {
	return s.updateUser(ctx, email, bson.M{"role": role, "status": models.UserStatusVerified})
}

func (s *MongoStore) CountUsers(ctx context.Context) (int64, error) {
	n, err := s.users().EstimatedDocumentCount(ctx)
	return n, errors.Wrap(err, "count users")
}

func (s *MongoStore) updateUser(ctx context.Context, email string, set bson.M) error {
	result, err := s.users().UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": set})
	if err != nil {
		return errors.Wrap(err, "update user")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
