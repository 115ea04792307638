package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	AuthorsCollection   = "authors"
	BlogPostsCollection = "blogposts"
)

var ErrNotConnected = errors.New("database client is not connected")

// MongoConfig holds everything needed to reach MongoDB.
type MongoConfig struct {
	URI      string
	Database string // used when URI carries no database name

	MaxPoolSize uint64
	MinPoolSize uint64

	// Retry configuration
	MaxRetries     int           // attempts before giving up
	RetryDelay     time.Duration // base delay, doubled after each attempt
	ConnectTimeout time.Duration // per attempt
}

// MongoDB wraps the driver client and its lifecycle. Repositories hold a
// *MongoDB and resolve collections per operation, so they can be built
// before Connect is called.
type MongoDB struct {
	Config *MongoConfig

	mu     sync.RWMutex
	client *mongo.Client
	dbName string
}

func NewMongoDB(config *MongoConfig) *MongoDB {
	return &MongoDB{Config: config}
}

// databaseName prefers the database embedded in the connection string.
func (db *MongoDB) databaseName() string {
	if cs, err := connstring.ParseAndValidate(db.Config.URI); err == nil && cs.Database != "" {
		return cs.Database
	}
	return db.Config.Database
}

func (db *MongoDB) clientOptions() *options.ClientOptions {
	opts := options.Client().
		ApplyURI(db.Config.URI).
		SetConnectTimeout(db.Config.ConnectTimeout).
		SetServerSelectionTimeout(db.Config.ConnectTimeout)

	if db.Config.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(db.Config.MaxPoolSize)
	}
	if db.Config.MinPoolSize > 0 {
		opts.SetMinPoolSize(db.Config.MinPoolSize)
	}
	return opts
}

// connectWithRetry connects and pings, retrying with exponential backoff:
// delay = RetryDelay * 2^(attempt-1).
func (db *MongoDB) connectWithRetry(ctx context.Context) (*mongo.Client, error) {
	var lastErr error

	attempts := db.Config.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		log.Printf("[DATABASE] Connection attempt %d/%d", attempt, attempts)

		connectCtx, cancel := context.WithTimeout(ctx, db.Config.ConnectTimeout)
		client, err := mongo.Connect(connectCtx, db.clientOptions())
		if err == nil {
			err = client.Ping(connectCtx, readpref.Primary())
			if err != nil {
				_ = client.Disconnect(context.Background())
				log.Printf("[DATABASE] Ping failed: %v", err)
			}
		}
		cancel()

		if err == nil {
			log.Printf("[DATABASE] Successfully connected on attempt %d", attempt)
			return client, nil
		}

		lastErr = err
		log.Printf("[DATABASE] Attempt %d failed: %v", attempt, lastErr)

		if attempt < attempts {
			delay := db.Config.RetryDelay * time.Duration(1<<uint(attempt-1))
			log.Printf("[DATABASE] Retrying in %v...", delay)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", attempts, lastErr)
}

// Connect establishes the client and ensures indexes. On any failure the
// client is disconnected again, nothing stays half open. Dialing happens
// outside db.mu so Ping and Collection report ErrNotConnected meanwhile.
func (db *MongoDB) Connect(ctx context.Context) error {
	log.Println("[DATABASE] Initializing MongoDB connection...")

	if db.connected() {
		return nil
	}

	client, err := db.connectWithRetry(ctx)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	dbName := db.databaseName()
	if err := ensureIndexes(ctx, client.Database(dbName)); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("ensure indexes: %w", err)
	}

	db.mu.Lock()
	if db.client != nil {
		db.mu.Unlock()
		_ = client.Disconnect(context.Background())
		return nil
	}
	db.client = client
	db.dbName = dbName
	db.mu.Unlock()

	log.Printf("[DATABASE] MongoDB connection established (database: %s)", dbName)
	return nil
}

func (db *MongoDB) connected() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.client != nil
}

// ensureIndexes creates the unique userName index, which is the store-level
// guard behind the username pre-check, and the index used by cascade deletes.
func ensureIndexes(ctx context.Context, database *mongo.Database) error {
	if _, err := database.Collection(AuthorsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userName", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("userName_unique"),
	}); err != nil {
		return fmt.Errorf("authors.userName: %w", err)
	}

	if _, err := database.Collection(BlogPostsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "author", Value: 1}},
		Options: options.Index().SetName("author"),
	}); err != nil {
		return fmt.Errorf("blogposts.author: %w", err)
	}

	return nil
}

// Collection returns the named collection of the connected database.
func (db *MongoDB) Collection(name string) (*mongo.Collection, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.client == nil {
		return nil, ErrNotConnected
	}
	return db.client.Database(db.dbName).Collection(name), nil
}

// Ping checks the database is reachable.
func (db *MongoDB) Ping(ctx context.Context) error {
	db.mu.RLock()
	client := db.client
	db.mu.RUnlock()

	if client == nil {
		return ErrNotConnected
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close disconnects the client. Safe to call more than once.
func (db *MongoDB) Close(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.client == nil {
		log.Println("[DATABASE] Client is already closed or was never connected")
		return nil
	}

	log.Println("[DATABASE] Closing MongoDB connection...")
	err := db.client.Disconnect(ctx)
	db.client = nil
	if err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}

	log.Println("[DATABASE] MongoDB connection closed")
	return nil
}
