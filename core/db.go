package core

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	mongoConnectTimeout = 10 * time.Second
	mongoRetryAttempts  = 3
	mongoRetryInterval  = 5 * time.Second
	mongoMaxPoolSize    = 10
	mongoMinPoolSize    = 1
)

// ErrMongoUnavailable is returned when the server cannot be reached after all retries.
var ErrMongoUnavailable = errors.New("failed to connect to mongo")

// Connect opens a mongo client with conservative pool defaults and verifies
// connectivity with a ping, retrying a few times so the API survives a slow
// database start.
func Connect(ctx context.Context, cfg Config) (*mongo.Database, error) {
	if cfg.MongoURL == "" {
		return nil, errors.New("empty mongo url")
	}

	opts := options.Client().
		ApplyURI(cfg.MongoURL).
		SetConnectTimeout(mongoConnectTimeout).
		SetMaxPoolSize(mongoMaxPoolSize).
		SetMinPoolSize(mongoMinPoolSize)

	for attempt := 0; attempt < mongoRetryAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(mongoRetryInterval)
		}

		client, err := mongo.Connect(opts)
		if err != nil {
			continue
		}

		pingCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
		err = client.Ping(pingCtx, nil)
		cancel()
		if err != nil {
			_ = client.Disconnect(ctx)
			continue
		}

		return client.Database(cfg.MongoDatabase), nil
	}

	return nil, ErrMongoUnavailable
}
