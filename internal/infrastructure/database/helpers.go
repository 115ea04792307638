package database

import (
	"context"
	"errors"
	"log"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// IsDuplicateKey reports whether err is a unique index violation (E11000).
func IsDuplicateKey(err error) bool {
	return err != nil && mongo.IsDuplicateKeyError(err)
}

// IsNotFound reports whether err means the query matched no document.
func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// ParseID parses a hex ObjectID. ok is false for malformed input.
func ParseID(hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// Memory is the lifecycle of the in-process store. There is nothing to
// dial, it only tracks whether it is open.
type Memory struct {
	open atomic.Bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Connect(ctx context.Context) error {
	m.open.Store(true)
	log.Println("[DATABASE] Using in-memory store")
	return nil
}

func (m *Memory) Ping(ctx context.Context) error {
	if !m.open.Load() {
		return ErrNotConnected
	}
	return nil
}

func (m *Memory) Close(ctx context.Context) error {
	m.open.Store(false)
	return nil
}
