package mongo

import (
	"context"
	"time"

	gomongo "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

type Client struct {
	*gomongo.Client
}

func New(ctx context.Context, uri string) (*Client, error) {

	client, err := gomongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &Client{Client: client}, nil
}

// Healthy reports whether the database currently answers a ping.
func (c *Client) Healthy(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.Ping(pingCtx, readpref.Primary()) == nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.Disconnect(ctx)
}
