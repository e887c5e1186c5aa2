package mock

import (
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis bundles a miniredis server with a client pointed at it.
type Redis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

// NewRedis starts an in-process Redis for the session mirror.
func NewRedis() *Redis {
	server, err := miniredis.Run()
	if err != nil {
		panic("failed to start miniredis: " + err.Error())
	}

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	return &Redis{Server: server, Client: client}
}

// Close stops the client and the server.
func (r *Redis) Close() {
	_ = r.Client.Close()
	r.Server.Close()
}
