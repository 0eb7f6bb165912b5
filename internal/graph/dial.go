package graph

import (
	"context"

	"github.com/vanshika/airnet/internal/config"
)

// Dial opens a Neo4j client described by the graph section of the config.
func Dial(ctx context.Context, cfg config.GraphConfig) (Client, error) {
	return NewNeo4jClient(ctx, Options{
		URI:            cfg.URI,
		Database:       cfg.Database,
		Username:       cfg.Username,
		Password:       cfg.Password,
		MaxConnections: cfg.MaxConnections,
	})
}
