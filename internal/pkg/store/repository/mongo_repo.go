package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"saccoledger/internal/pkg/consts"
	"saccoledger/internal/service/interfaces"
)

type MongoRepository[T any] struct {
	collection interfaces.MongoRepositoryInterface
}

func NewMongoRepository[T any](collection interfaces.MongoRepositoryInterface) *MongoRepository[T] {
	return &MongoRepository[T]{collection: collection}
}

func (r *MongoRepository[T]) Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {
	result, err := r.collection.InsertOne(ctx, document)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FindOne reads a single document by filter.
func (r *MongoRepository[T]) FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (T, error) {
	var result T
	if err := r.collection.FindOne(ctx, filter, opt).Decode(&result); err != nil {
		return result, err
	}
	return result, nil
}

func (r *MongoRepository[T]) UpdateOne(ctx context.Context, filter interface{}, update interface{}) error {
	if _, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": update}); err != nil {
		return err
	}
	return nil
}

func (r *MongoRepository[T]) Delete(ctx context.Context, filter interface{}) error {
	if _, err := r.collection.DeleteOne(ctx, filter); err != nil {
		return err
	}
	return nil
}

func (r *MongoRepository[T]) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			_ = err
		}
	}()

	var results []T
	for cursor.Next(ctx) {
		var entity T
		if err := cursor.Decode(&entity); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, cursor.Err()
}

// FindAllPaged enumerates every matching document with _id-cursor pages of
// ListAllPageSize, repeating until a short page. The store offers no
// snapshot isolation, so documents inserted mid-scan may or may not appear.
func (r *MongoRepository[T]) FindAllPaged(ctx context.Context, filter bson.M) ([]T, error) {
	var all []T
	var cursorID *primitive.ObjectID

	for {
		pageFilter := bson.M{}
		for k, v := range filter {
			pageFilter[k] = v
		}
		if cursorID != nil {
			pageFilter["_id"] = bson.M{"$gt": *cursorID}
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "_id", Value: 1}}).
			SetLimit(int64(consts.ListAllPageSize))

		cursor, err := r.collection.Find(ctx, pageFilter, opts)
		if err != nil {
			return nil, err
		}

		pageCount := 0
		for cursor.Next(ctx) {
			var entity T
			if err := cursor.Decode(&entity); err != nil {
				_ = cursor.Close(ctx)
				return nil, err
			}
			if id, idErr := cursor.Current.LookupErr("_id"); idErr == nil {
				if oid, ok := id.ObjectIDOK(); ok {
					cursorID = &oid
				}
			}
			all = append(all, entity)
			pageCount++
		}
		if err := cursor.Err(); err != nil {
			_ = cursor.Close(ctx)
			return nil, err
		}
		_ = cursor.Close(ctx)

		if pageCount < consts.ListAllPageSize {
			break
		}
	}

	return all, nil
}

func (r *MongoRepository[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// AggregateAll runs a pipeline and decodes every result document.
func (r *MongoRepository[T]) AggregateAll(ctx context.Context, pipeline interface{}, results interface{}) error {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			_ = err
		}
	}()

	return cursor.All(ctx, results)
}
