package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoDB_ConnectDoesNotBlockReaders(t *testing.T) {
	db := NewMongoDB(&MongoConfig{
		URI:            "mongodb://127.0.0.1:1/blog",
		MaxRetries:     3,
		RetryDelay:     200 * time.Millisecond,
		ConnectTimeout: 200 * time.Millisecond,
	})

	connectErr := make(chan error, 1)
	go func() { connectErr <- db.Connect(context.Background()) }()
	time.Sleep(50 * time.Millisecond)

	readerErr := make(chan error, 2)
	go func() {
		_, err := db.Collection(AuthorsCollection)
		readerErr <- err
		readerErr <- db.Ping(context.Background())
	}()

	for i := 0; i < 2; i++ {
		select {
		case err := <-readerErr:
			assert.ErrorIs(t, err, ErrNotConnected)
		case <-time.After(100 * time.Millisecond):
			t.Fatal("reader blocked behind an in-progress Connect")
		}
	}

	select {
	case err := <-connectErr:
		require.Error(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Connect did not give up")
	}

	_, err := db.Collection(AuthorsCollection)
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.NoError(t, db.Close(context.Background()))
}
