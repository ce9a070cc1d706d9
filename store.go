package hashbench

import (
	"github.com/MrEthical07/hashbench/internal/stores"
	"github.com/redis/go-redis/v9"
)

// NewRedisUserStore describes the newredisuserstore operation and its observable behavior.
//
// NewRedisUserStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewRedisUserStore(client redis.UniversalClient, prefix string) UserStore {
	return stores.NewUserStore(client, prefix)
}
