package database

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/plantnet/plantnet-server/models"
)

func (s *MongoStore) InsertPlant(ctx context.Context, plant *models.Plant) error {
	if plant.ID.IsZero() {
		plant.ID = primitive.NewObjectID()
	}
	_, err := s.plants().InsertOne(ctx, plant)
	return errors.Wrap(err, "insert plant")
}

func (s *MongoStore) ListPlants(ctx context.Context) ([]models.Plant, error) {
	return s.findPlants(ctx, bson.M{})
}

func (s *MongoStore) ListPlantsBySeller(ctx context.Context, sellerEmail string) ([]models.Plant, error) {
	return s.findPlants(ctx, bson.M{"seller.email": sellerEmail})
}

func (s *MongoStore) FindPlant(ctx context.Context, id primitive.ObjectID) (*models.Plant, error) {
	var plant models.Plant
	if err := s.plants().FindOne(ctx, bson.M{"_id": id}).Decode(&plant); err != nil {
		return nil, notFound(err, "find plant")
	}
	return &plant, nil
}

func (s *MongoStore) DeletePlant(ctx context.Context, id primitive.ObjectID, sellerEmail string) error {
	result, err := s.plants().DeleteOne(ctx, bson.M{"_id": id, "seller.email": sellerEmail})
	if err != nil {
		return errors.Wrap(err, "delete plant")
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) AdjustPlantQuantity(ctx context.Context, id primitive.ObjectID, delta int) error {
	result, err := s.plants().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"quantity": delta}})
	if err != nil {
		return errors.Wrap(err, "adjust plant quantity")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) CountPlants(ctx context.Context) (int64, error) {
	n, err := s.plants().EstimatedDocumentCount(ctx)
	return n, errors.Wrap(err, "count plants")
}

func (s *MongoStore) findPlants(ctx context.Context, filter bson.M) ([]models.Plant, error) {
	cursor, err := s.plants().Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "find plants")
	}
	plants := []models.Plant{}
	if err := cursor.All(ctx, &plants); err != nil {
		return nil, errors.Wrap(err, "decode plants")
	}
	return plants, nil
}
