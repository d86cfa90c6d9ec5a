package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"taskly/config"
	"taskly/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ErrNotFound is returned by repositories when a document does not exist.
var ErrNotFound = errors.New("document not found")

var (
	// MongoClient is the process-wide MongoDB client, set by EnsureConnected.
	MongoClient *mongo.Client
	connectMu   sync.Mutex
)

// EnsureConnected connects to MongoDB once per process. Concurrent callers
// block until the first attempt finishes; a failed attempt leaves the client
// unset so the next call retries.
func EnsureConnected(ctx context.Context) (*mongo.Client, error) {
	connectMu.Lock()
	defer connectMu.Unlock()

	if MongoClient != nil {
		return MongoClient, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	utils.GetLogger().Info("Connected to MongoDB", zap.String("database", config.AppConfig.DatabaseName))
	return MongoClient, nil
}

// Database returns the application database on the connected client.
func Database() *mongo.Database {
	return MongoClient.Database(config.AppConfig.DatabaseName)
}

// Disconnect closes the client and resets the guard.
func Disconnect(ctx context.Context) error {
	connectMu.Lock()
	defer connectMu.Unlock()

	if MongoClient == nil {
		return nil
	}
	err := MongoClient.Disconnect(ctx)
	MongoClient = nil
	return err
}

// MapError converts driver "no document" errors into ErrNotFound.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
