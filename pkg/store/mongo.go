package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoBackend keeps one collection per kind with one document per guild,
// using the guild id as _id. Blobs travel as relaxed extended JSON.
type MongoBackend struct {
	client      *mongo.Client
	db          *mongo.Database
	collections map[Kind]*mongo.Collection
	mu          sync.RWMutex
}

// NewMongoBackend connects to MongoDB and verifies the connection
func NewMongoBackend(mongoURL, dbName string) (*MongoBackend, error) {
	logger.System("Intentando conectar a la base de datos...", "DB")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(mongoURL).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		logger.Critical("Fallo al conectar con la base de datos.", "DB")
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Critical("Fallo al verificar conexión con la base de datos.", "DB")
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	logger.Success("Conectado exitosamente a la base de datos.", "DB")
	return &MongoBackend{
		client:      client,
		db:          client.Database(dbName),
		collections: make(map[Kind]*mongo.Collection),
	}, nil
}

func (m *MongoBackend) collection(kind Kind) *mongo.Collection {
	m.mu.RLock()
	if col, ok := m.collections[kind]; ok {
		m.mu.RUnlock()
		return col
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if col, ok := m.collections[kind]; ok {
		return col
	}
	col := m.db.Collection(string(kind))
	m.collections[kind] = col
	return col
}

func (m *MongoBackend) Load(ctx context.Context, kind Kind, guildID string) ([]byte, bool, error) {
	var doc bson.M
	err := m.collection(kind).FindOne(ctx, bson.M{"_id": guildID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, unavailable("find", kind, guildID, err)
	}

	delete(doc, "_id")
	raw, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return nil, false, unavailable("decode", kind, guildID, err)
	}
	return raw, true, nil
}

func (m *MongoBackend) Save(ctx context.Context, kind Kind, guildID string, data []byte) error {
	doc := bson.M{}
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return unavailable("encode", kind, guildID, err)
	}
	doc["_id"] = guildID

	opts := options.Replace().SetUpsert(true)
	if _, err := m.collection(kind).ReplaceOne(ctx, bson.M{"_id": guildID}, doc, opts); err != nil {
		return unavailable("replace", kind, guildID, err)
	}
	return nil
}

// Ping measures the database response time
func (m *MongoBackend) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	err := m.client.Ping(ctx, readpref.Primary())
	return time.Since(start), err
}

func (m *MongoBackend) Name() string {
	return "mongo"
}

// Close disconnects the client
func (m *MongoBackend) Close(ctx context.Context) error {
	if err := m.client.Disconnect(ctx); err != nil {
		return err
	}
	logger.Warn("La base de datos ha sido desconectada", "DB")
	return nil
}
