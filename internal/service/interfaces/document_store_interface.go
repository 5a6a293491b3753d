package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DocumentStore is the generic store contract the typed repositories build
// on. Backed by MongoRepository[T] in production.
type DocumentStore[T any] interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (T, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]T, error)
	FindAllPaged(ctx context.Context, filter bson.M) ([]T, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
	Delete(ctx context.Context, filter interface{}) error
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	AggregateAll(ctx context.Context, pipeline interface{}, results interface{}) error
}
