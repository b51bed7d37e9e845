// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package reports

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/coursepath/internal/logging"
	"github.com/tomtom215/coursepath/internal/metrics"
)

const latestKeyPrefix = "latest:"

// ErrNotFound is returned when a student has no stored report.
var ErrNotFound = errors.New("report not found")

// Report is one stored payload. Payload holds the JSON recommendation
// payload exactly as it was produced.
type Report struct {
	StudentID   int             `json:"student_id"`
	RunID       string          `json:"run_id"`
	RequestID   string          `json:"request_id,omitempty"`
	GeneratedAt time.Time       `json:"generated_at"`
	Payload     json.RawMessage `json:"payload"`
}

// Store is a BadgerDB-backed report store.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store under path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, fmt.Errorf("create reports directory %s: %w", path, err)
	}
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open reports store: %w", err)
	}
	logging.Info().Str("path", path).Msg("Reports store opened")
	return &Store{db: db}, nil
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open in-memory reports store: %w", err)
	}
	return &Store{db: db}, nil
}

func latestKey(studentID int) []byte {
	return []byte(latestKeyPrefix + strconv.Itoa(studentID))
}

// Save replaces the student's latest report unless the stored one is newer.
func (s *Store) Save(_ context.Context, report *Report) error {
	if report.StudentID <= 0 {
		return fmt.Errorf("save report: invalid student id %d", report.StudentID)
	}
	if len(report.Payload) == 0 {
		return errors.New("save report: empty payload")
	}

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		key := latestKey(report.StudentID)
		item, err := txn.Get(key)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
		case err != nil:
			return fmt.Errorf("get report: %w", err)
		default:
			var existing Report
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &existing)
			}); err != nil {
				return fmt.Errorf("decode existing report: %w", err)
			}
			if existing.GeneratedAt.After(report.GeneratedAt) {
				return nil
			}
		}
		return txn.Set(key, data)
	})
	metrics.RecordReportStored(err)
	return err
}

// Latest returns the student's latest report or ErrNotFound.
func (s *Store) Latest(_ context.Context, studentID int) (*Report, error) {
	var report Report
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(latestKey(studentID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get report: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &report)
		})
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Count returns the number of stored reports.
func (s *Store) Count(_ context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(latestKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// RunGC reclaims value-log space. It returns nil when there was nothing
// to collect.
func (s *Store) RunGC() error {
	err := s.db.RunValueLogGC(0.5)
	if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
		return nil
	}
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
