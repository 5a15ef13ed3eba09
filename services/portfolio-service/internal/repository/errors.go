package repository

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

var (
	ErrInvalidID    = errors.New("invalid object id")
	ErrNotFound     = errors.New("document not found")
	ErrNoUpdates    = errors.New("no documents were updated")
	ErrDuplicateKey = errors.New("duplicate key")
)

func mapMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	default:
		return err
	}
}

// ParseID parses a hex object id, returning ErrInvalidID when it is malformed.
func ParseID(id string) (bson.ObjectID, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return objectID, nil
}
