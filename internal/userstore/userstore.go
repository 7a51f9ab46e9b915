// Package userstore keeps the whole list of user records as one JSON array
// under a single storage key.
package userstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/haguru/sakura/internal/interfaces"
	"github.com/haguru/sakura/internal/models"
	"github.com/haguru/sakura/pkg/helper"
)

// UserStore implements interfaces.UserStore over a KVStore.
type UserStore struct {
	kv     interfaces.KVStore
	key    string
	Logger interfaces.Logger
}

// NewUserStore creates a store that reads and writes key in kv.
func NewUserStore(kv interfaces.KVStore, key string, logger interfaces.Logger) *UserStore {
	return &UserStore{
		kv:     kv,
		key:    key,
		Logger: logger,
	}
}

// LoadAll returns every stored record in insertion order. An absent key,
// a null value, or a value that is not a JSON array all load as an empty
// list. Inside an array each element is read on its own, so one odd
// element never hides the others and SaveAll writes it back unchanged.
// Only backend failures are returned as errors.
func (s *UserStore) LoadAll(ctx context.Context) ([]models.UserRecord, error) {
	funcName := helper.GetFuncName()

	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.Logger.Error(ErrReadingStorage, "func", funcName, "key", s.key, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrReadingStorage, err)
	}
	if !found {
		s.Logger.Debug("Storage key absent, starting empty", "func", funcName, "key", s.key)
		return []models.UserRecord{}, nil
	}

	var records []models.UserRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.Logger.Warn(ErrMalformedContent, "func", funcName, "key", s.key, "error", err)
		return []models.UserRecord{}, nil
	}
	if records == nil {
		records = []models.UserRecord{}
	}
	return records, nil
}

// SaveAll overwrites the stored list with records.
func (s *UserStore) SaveAll(ctx context.Context, records []models.UserRecord) error {
	funcName := helper.GetFuncName()
	if records == nil {
		records = []models.UserRecord{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrEncodingRecords, err)
	}

	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		s.Logger.Error(ErrWritingStorage, "func", funcName, "key", s.key, "error", err)
		return fmt.Errorf("%s: %w", ErrWritingStorage, err)
	}
	s.Logger.Debug("Storage key written", "func", funcName, "key", s.key, "records", len(records))
	return nil
}
