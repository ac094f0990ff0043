package database

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/plantnet/plantnet-server/models"
)

func (s *MongoStore) InsertOrder(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	_, err := s.orders().InsertOne(ctx, order)
	return errors.Wrap(err, "insert order")
}

func (s *MongoStore) FindOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := s.orders().FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, notFound(err, "find order")
	}
	return &order, nil
}

func (s *MongoStore) ListCustomerOrders(ctx context.Context, customerEmail string) ([]models.OrderView, error) {
	return s.joinedOrders(ctx, bson.M{"customer.email": customerEmail})
}

func (s *MongoStore) ListSellerOrders(ctx context.Context, sellerEmail string) ([]models.OrderView, error) {
	return s.joinedOrders(ctx, bson.M{"seller": sellerEmail})
}

func (s *MongoStore) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	result, err := s.orders().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return errors.Wrap(err, "update order status")
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) CancelOrder(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.orders().DeleteOne(ctx, bson.M{
		"_id":    id,
		"status": bson.M{"$ne": models.OrderStatusDelivered},
	})
	if err != nil {
		return errors.Wrap(err, "cancel order")
	}
	if result.DeletedCount == 1 {
		return nil
	}

	// Nothing deleted: either the order is gone or it was delivered.
	if _, err := s.FindOrder(ctx, id); err != nil {
		return err
	}
	return ErrOrderDelivered
}

func (s *MongoStore) OrderTotals(ctx context.Context) (int64, float64, error) {
	cursor, err := s.orders().Aggregate(ctx, orderTotalsPipeline())
	if err != nil {
		return 0, 0, errors.Wrap(err, "aggregate order totals")
	}
	var rows []struct {
		TotalRevenue float64 `bson:"totalRevenue"`
		TotalOrder   int64   `bson:"totalOrder"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, 0, errors.Wrap(err, "decode order totals")
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].TotalOrder, rows[0].TotalRevenue, nil
}

func (s *MongoStore) joinedOrders(ctx context.Context, filter bson.M) ([]models.OrderView, error) {
	cursor, err := s.orders().Aggregate(ctx, ordersWithPlantPipeline(filter))
	if err != nil {
		return nil, errors.Wrap(err, "aggregate orders")
	}
	orders := []models.OrderView{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, errors.Wrap(err, "decode orders")
	}
	return orders, nil
}
