package mongo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/haguru/sakura/config"
	"github.com/haguru/sakura/internal/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	MAXPOOLSIZE       = 20
	IDFIELD           = "_id"
	VALUEFIELD        = "value"
	DefaultCollection = "kv_store"
	DefaultTimeout    = 10 * time.Second
)

var ErrNotConnected = errors.New("MongoDBClient is not connected to a database")

// kvDocument is one storage key. The key is the document _id.
type kvDocument struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// MongoDBClient implements interfaces.KVStore on a single collection.
type MongoDBClient struct {
	ServerOpts *options.ServerAPIOptions
	client     *mongo.Client
	collection *mongo.Collection
	name       string
	timeout    time.Duration
	logger     interfaces.Logger
}

// NewMongoDB returns an unconnected client.
func NewMongoDB(dbConfig *config.MongoDBConfig, logger interfaces.Logger) *MongoDBClient {
	collection := dbConfig.Collection
	if collection == "" {
		collection = DefaultCollection
	}
	timeout := dbConfig.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &MongoDBClient{
		ServerOpts: config.BuildServerAPIOptions(dbConfig.Options),
		name:       collection,
		timeout:    timeout,
		logger:     logger,
	}
}

// Connect establishes a connection using the provided DSN. The DSN must be
// "mongodb://" or "mongodb+srv://" and carry the database name in its path.
func (m *MongoDBClient) Connect(ctx context.Context, dsn string) error {
	databaseName, err := getDBNameFromMongoDSN(dsn)
	if err != nil {
		return fmt.Errorf("MongoDBClient: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(dsn).
		SetMaxPoolSize(MAXPOOLSIZE).
		SetReadPreference(readpref.PrimaryPreferred())
	if m.ServerOpts != nil {
		clientOptions.SetServerAPIOptions(m.ServerOpts)
	}

	m.logger.Info("Connecting to MongoDB", "database", databaseName, "collection", m.name)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("MongoDBClient: failed to connect: %w", err)
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("MongoDBClient: failed to connect to MongoDB server: %w", err)
	}

	m.client = client
	m.collection = client.Database(databaseName).Collection(m.name)
	return nil
}

func (m *MongoDBClient) Get(ctx context.Context, key string) (string, bool, error) {
	if m.collection == nil {
		return "", false, ErrNotConnected
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var doc kvDocument
	err := m.collection.FindOne(ctx, bson.M{IDFIELD: key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("MongoDBClient: failed to read key %q: %w", key, err)
	}
	return doc.Value, true, nil
}

// Set replaces the document for key, creating it on first write.
func (m *MongoDBClient) Set(ctx context.Context, key, value string) error {
	if m.collection == nil {
		return ErrNotConnected
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	_, err := m.collection.ReplaceOne(ctx,
		bson.M{IDFIELD: key},
		kvDocument{Key: key, Value: value},
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("MongoDBClient: failed to write key %q: %w", key, err)
	}
	return nil
}

func (m *MongoDBClient) Ping(ctx context.Context) error {
	if m.client == nil {
		return ErrNotConnected
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client if it was connected.
func (m *MongoDBClient) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	m.logger.Info("Disconnecting from MongoDB")
	return m.client.Disconnect(ctx)
}

// getDBNameFromMongoDSN validates the scheme and extracts the database
// name from the DSN path.
func getDBNameFromMongoDSN(dsn string) (string, error) {
	if dsn == "" {
		return "", errors.New("DSN is empty")
	}
	if !strings.HasPrefix(dsn, "mongodb://") && !strings.HasPrefix(dsn, "mongodb+srv://") {
		return "", errors.New("invalid DSN format, expected 'mongodb://' or 'mongodb+srv://'")
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse MongoDB DSN: %w", err)
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if idx := strings.Index(dbName, "/"); idx != -1 {
		dbName = dbName[:idx]
	}
	if dbName == "" {
		return "", errors.New("no database name found in MongoDB DSN path")
	}
	return dbName, nil
}
