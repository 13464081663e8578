package cache

import (
	"context"
	"encoding/hex"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoDoc is the on-disk document shape for a single cache entry: _id is
// the hex-encoded CacheKey, Data the raw (pre-encode) bytes passed to
// PutBytes.
type mongoDoc struct {
	ID   string `bson:"_id"`
	Data []byte `bson:"data"`
}

// MongoCache is a Cache backed by a MongoDB collection, for deployments
// that already run Mongo as shared infrastructure and would rather not
// stand up Redis or a shared filesystem. The CLI never opens one.
type MongoCache struct {
	coll *mongo.Collection
}

// NewMongoCache opens a MongoCache against an existing client, database,
// and collection name.
func NewMongoCache(client *mongo.Client, database, collection string) *MongoCache {
	return &MongoCache{coll: client.Database(database).Collection(collection)}
}

func (c *MongoCache) docID(key CacheKey) string {
	return hex.EncodeToString(key[:])
}

// PutBytes upserts data under key.
func (c *MongoCache) PutBytes(ctx context.Context, key CacheKey, data []byte) error {
	id := c.docID(key)
	_, err := c.coll.ReplaceOne(
		ctx,
		bson.M{"_id": id},
		mongoDoc{ID: id, Data: data},
		options.Replace().SetUpsert(true),
	)
	return err
}

// GetBytes retrieves the bytes stored under key.
func (c *MongoCache) GetBytes(ctx context.Context, key CacheKey) ([]byte, bool, error) {
	var doc mongoDoc
	err := c.coll.FindOne(ctx, bson.M{"_id": c.docID(key)}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc.Data, true, nil
}

// Put encodes v and stores it via PutBytes.
func (c *MongoCache) Put(ctx context.Context, key CacheKey, v any) error {
	data, err := encode(v)
	if err != nil {
		return err
	}
	return c.PutBytes(ctx, key, data)
}

// Get retrieves and decodes the value stored under key into v.
func (c *MongoCache) Get(ctx context.Context, key CacheKey, v any) (bool, error) {
	data, ok, err := c.GetBytes(ctx, key)
	if err != nil || !ok {
		return ok, err
	}
	if err := decode(data, v); err != nil {
		return false, err
	}
	return true, nil
}

// Require is Get, but a miss is reported as ErrMissingRequiredValue.
func (c *MongoCache) Require(ctx context.Context, key CacheKey, v any) error {
	ok, err := c.Get(ctx, key, v)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMissingRequiredValue
	}
	return nil
}

// Delete removes the document backing key, if present.
func (c *MongoCache) Delete(ctx context.Context, key CacheKey) error {
	_, err := c.coll.DeleteOne(ctx, bson.M{"_id": c.docID(key)})
	return err
}

// ContainsKey reports whether key's document exists.
func (c *MongoCache) ContainsKey(ctx context.Context, key CacheKey) (bool, error) {
	n, err := c.coll.CountDocuments(ctx, bson.M{"_id": c.docID(key)})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close is a no-op: the *mongo.Client's lifecycle is owned by the caller
// that constructed it, not by individual MongoCache instances.
func (c *MongoCache) Close() error { return nil }

var _ Cache = (*MongoCache)(nil)
