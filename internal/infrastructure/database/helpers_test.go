package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestParseID(t *testing.T) {
	id, ok := ParseID("65f2a1b2c3d4e5f601234567")
	assert.True(t, ok)
	assert.Equal(t, "65f2a1b2c3d4e5f601234567", id.Hex())

	for _, bad := range []string{"", "xyz", "65f2a1b2c3d4e5f60123456"} {
		_, ok := ParseID(bad)
		assert.False(t, ok, bad)
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(mongo.ErrNoDocuments))
	assert.True(t, IsNotFound(fmt.Errorf("find: %w", mongo.ErrNoDocuments)))
	assert.False(t, IsNotFound(errors.New("other")))
}

func TestIsDuplicateKey(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}

	assert.True(t, IsDuplicateKey(dup))
	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(errors.New("E11000 lookalike")))
}

func TestMemory_Lifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	assert.ErrorIs(t, m.Ping(ctx), ErrNotConnected)
	assert.NoError(t, m.Connect(ctx))
	assert.NoError(t, m.Ping(ctx))
	assert.NoError(t, m.Close(ctx))
	assert.ErrorIs(t, m.Ping(ctx), ErrNotConnected)
}

func TestMongoDB_NotConnected(t *testing.T) {
	db := NewMongoDB(&MongoConfig{URI: "mongodb://localhost:27017/blog"})

	_, err := db.Collection(AuthorsCollection)
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.ErrorIs(t, db.Ping(context.Background()), ErrNotConnected)
	assert.NoError(t, db.Close(context.Background()))
	assert.Equal(t, "blog", db.databaseName())
}
