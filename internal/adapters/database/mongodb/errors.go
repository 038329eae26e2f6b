package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arkival/article_archiver_app/internal/apperrors"
)

// mapWriteError translates driver write errors to domain sentinels so
// callers never depend on driver error types.
func mapWriteError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s already exists: %w", entity, apperrors.ErrDuplicate)
	}
	return fmt.Errorf("failed to save %s: %w", entity, err)
}

// mapFindError translates driver read errors. A missing document maps to
// ErrNotFound; everything else is wrapped as-is.
func mapFindError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", entity, apperrors.ErrNotFound)
	}
	return fmt.Errorf("failed to find %s: %w", entity, err)
}
