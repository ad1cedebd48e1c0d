package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// --- Global handles ---
// Mongo is required; Redis and Elastic are optional and stay nil when not
// configured, callers must check.
var (
	Mongo   *mongo.Database
	Redis   *redis.Client
	Elastic *elasticsearch.Client

	mongoClient *mongo.Client
	mongoMu     sync.Mutex
)

const (
	// Server selection timeout matches the hosting platform's request budget.
	mongoSelectionTimeout = 15 * time.Second
	mongoConnectTimeout   = 10 * time.Second
)

// ConnectDatabases establishes the required MongoDB connection and the
// optional Redis / Elasticsearch clients. Fatal only when Mongo is unreachable.
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := ConnectMongo(ctx); err != nil {
		log.Fatalf("❌ MongoDB connection failed: %v", err)
	}

	connectRedis(ctx)
	connectElastic()

	log.Println("✅ All configured databases are connected")
}

// =============================================
// MONGODB (cached connection, reused by all requests)
// =============================================

// ConnectMongo returns the shared client, dialing it on first use. The
// connection is verified with a ping and re-established when the ping fails.
func ConnectMongo(ctx context.Context) (*mongo.Client, error) {
	mongoMu.Lock()
	defer mongoMu.Unlock()

	if mongoClient != nil {
		if err := mongoClient.Ping(ctx, readpref.Primary()); err == nil {
			return mongoClient, nil
		}
		// Stale connection, drop it and redial
		_ = mongoClient.Disconnect(ctx)
		mongoClient = nil
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = os.Getenv("MONGO_URI")
	}
	if uri == "" {
		return nil, fmt.Errorf("MONGODB_URI is not configured")
	}

	poolSize := uint64(10)
	if raw := os.Getenv("MONGO_MAX_POOL_SIZE"); raw != "" {
		if n, err := strconv.ParseUint(raw, 10, 64); err == nil && n > 0 {
			poolSize = n
		}
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(mongoSelectionTimeout).
		SetConnectTimeout(mongoConnectTimeout).
		SetMaxPoolSize(poolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	dbName := os.Getenv("MONGO_DATABASE")
	if dbName == "" {
		dbName = "freshsip"
	}

	mongoClient = client
	Mongo = client.Database(dbName)
	log.Printf("✅ Connected to MongoDB (database %q, pool size %d)", dbName, poolSize)

	return mongoClient, nil
}

// CloseMongo releases the cached client, mainly for tests and shutdown.
func CloseMongo(ctx context.Context) {
	mongoMu.Lock()
	defer mongoMu.Unlock()

	if mongoClient != nil {
		_ = mongoClient.Disconnect(ctx)
		mongoClient = nil
		Mongo = nil
		log.Println("🔌 MongoDB connection closed")
	}
}

// =============================================
// REDIS (optional — caching and rate limiting degrade to no-ops without it)
// =============================================
func connectRedis(ctx context.Context) {
	addr := os.Getenv("REDIS_HOST")
	if addr == "" {
		log.Println("⚠️  REDIS_HOST not set — response caching and rate limiting disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Redis unreachable (%v) — continuing without cache", err)
		return
	}

	Redis = client
	log.Println("✅ Connected to Redis")
}

// =============================================
// ELASTICSEARCH (optional — search falls back to MongoDB scans without it)
// =============================================
func connectElastic() {
	url := os.Getenv("ELASTIC_URL")
	if url == "" {
		log.Println("⚠️  ELASTIC_URL not set — product search will use MongoDB only")
		return
	}

	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Printf("⚠️  Elasticsearch client error (%v) — continuing without search index", err)
		return
	}

	res, err := client.Info()
	if err != nil {
		log.Printf("⚠️  Elasticsearch unreachable (%v) — continuing without search index", err)
		return
	}
	defer res.Body.Close()

	Elastic = client
	log.Println("✅ Connected to Elasticsearch")
}
