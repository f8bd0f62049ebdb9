//go:build ignore

// Publishes sample change events so the activity worker can be tried locally:
//
//	go run scripts/test_publish.go -redis localhost:6379 -n 3
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/rutea-api/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	stream := flag.String("stream", domain.StreamChanges, "Target stream")
	count := flag.Int("n", 1, "Number of events")
	malformed := flag.Bool("malformed", false, "Also publish one malformed message")
	flag.Parse()

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	entities := []string{domain.EntityUser, domain.EntityCategory, domain.EntityPoint, domain.EntityReview, domain.EntityRoute}
	actions := []domain.Action{domain.ActionCreated, domain.ActionUpdated, domain.ActionPatched, domain.ActionDeleted}

	for i := 0; i < *count; i++ {
		event := domain.NewChangeEvent(entities[i%len(entities)], int64(i+1), actions[i%len(actions)])
		data, err := json.Marshal(event)
		if err != nil {
			log.Fatalf("Failed to marshal event: %v", err)
		}

		id, err := client.XAdd(ctx, &redis.XAddArgs{
			Stream: *stream,
			Values: map[string]interface{}{"data": string(data)},
		}).Result()
		if err != nil {
			log.Fatalf("Failed to publish: %v", err)
		}
		fmt.Printf("published %s %s %d as %s\n", event.Action, event.Entity, event.EntityID, id)
	}

	if *malformed {
		id, err := client.XAdd(ctx, &redis.XAddArgs{
			Stream: *stream,
			Values: map[string]interface{}{"data": "{not json"},
		}).Result()
		if err != nil {
			log.Fatalf("Failed to publish: %v", err)
		}
		fmt.Printf("published malformed message as %s\n", id)
	}
}
