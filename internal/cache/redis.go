package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Record snapshot cache keys
const (
	customerRecordsKeyFmt = "records:customer:%d"
	recordsTTL            = 5 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

func customerRecordsKey(customerID int) string {
	return fmt.Sprintf(customerRecordsKeyFmt, customerID)
}

// GetCachedRecords returns the cached record-list snapshot for a customer.
// The snapshot is only valid until the next committed payment; commits must
// call InvalidateRecords.
func GetCachedRecords(ctx context.Context, customerID int) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, customerRecordsKey(customerID)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheRecords stores a customer's serialized record list
func CacheRecords(ctx context.Context, customerID int, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, customerRecordsKey(customerID), data, recordsTTL)
}

// InvalidateRecords drops the snapshot after a payment or reading changes
// the customer's ledger
func InvalidateRecords(ctx context.Context, customerID int) {
	if client == nil {
		return
	}
	client.Del(ctx, customerRecordsKey(customerID))
}
