package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	usersCollection  = "users"
	plantsCollection = "plants"
	ordersCollection = "orders"
)

// MongoStore implements Store over the users, plants and orders collections.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

func ConnectDB(ctx context.Context, uri, dbName string, logger *zap.Logger) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, errors.Wrap(err, "mongo connect")
	}

	// Ping the database
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "mongo ping")
	}

	s := &MongoStore{client: client, db: client.Database(dbName), logger: logger}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("connected to MongoDB", zap.String("database", dbName))
	return s, nil
}

// ensureIndexes makes users.email unique so concurrent first sign-ins
// cannot create two records.
func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return errors.Wrap(err, "create users.email index")
}

func (s *MongoStore) Disconnect(ctx context.Context) error {
	return errors.WithStack(s.client.Disconnect(ctx))
}

func (s *MongoStore) users() *mongo.Collection  { return s.db.Collection(usersCollection) }
func (s *MongoStore) plants() *mongo.Collection { return s.db.Collection(plantsCollection) }
func (s *MongoStore) orders() *mongo.Collection { return s.db.Collection(ordersCollection) }

// notFound maps the driver's no-documents error onto ErrNotFound.
func notFound(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return errors.Wrap(err, op)
}

var _ Store = (*MongoStore)(nil)
