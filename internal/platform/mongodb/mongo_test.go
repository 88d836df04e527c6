package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnect_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set; skipping MongoDB integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := Connect(ctx, uri)
	require.NoError(t, err)
	require.NoError(t, client.Disconnect(ctx))
}

func TestConnect_InvalidURI(t *testing.T) {
	_, err := Connect(context.Background(), "not-a-mongo-uri")
	require.Error(t, err)
}
