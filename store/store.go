// Package store keeps a history of comparison runs in BadgerDB.
//
// Records are JSON encoded and lz4 compressed. Each run is stored under
// "run:<id>" and, when it has a fingerprint, indexed under "fp:<fingerprint>"
// so an identical comparison can be found without rerunning it.
package store

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/pierrec/lz4/v4"
	"golang.org/x/crypto/blake2b"

	"github.com/tsawler/golden/classify"
	"github.com/tsawler/golden/model"
)

// ErrNotFound is returned when no record matches
var ErrNotFound = errors.New("record not found")

const (
	runPrefix         = "run:"
	fingerprintPrefix = "fp:"
)

// Record is one stored comparison run
type Record struct {
	ID          string                  `json:"id"`
	CreatedAt   time.Time               `json:"created_at"`
	Golden      string                  `json:"golden"`
	Target      string                  `json:"target"`
	Fingerprint string                  `json:"fingerprint,omitempty"`
	Status      string                  `json:"status"`
	Result      *model.ComparisonResult `json:"result"`
}

// Store wraps BadgerDB for run history
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store at path. An empty path opens an in-memory
// store.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a record and returns its ID. A new ID, creation time and
// status are filled in when missing.
func (s *Store) Save(ctx context.Context, rec Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if rec.Result == nil {
		return "", fmt.Errorf("record has no result")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.Status == "" {
		rec.Status = rec.Result.Status()
	}

	val, err := encode(rec)
	if err != nil {
		return "", err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(runPrefix+rec.ID), val); err != nil {
			return err
		}
		if rec.Fingerprint != "" {
			return txn.Set([]byte(fingerprintPrefix+rec.Fingerprint), []byte(rec.ID))
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("save %s: %w", rec.ID, err)
	}
	return rec.ID, nil
}

// Get returns the record with the given ID
func (s *Store) Get(id string) (Record, error) {
	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = getRun(txn, id)
		return err
	})
	return rec, err
}

// Lookup returns the latest record saved with a fingerprint
func (s *Store) Lookup(fingerprint string) (Record, error) {
	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(fingerprintPrefix + fingerprint))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("fingerprint %s: %w", fingerprint, ErrNotFound)
		}
		if err != nil {
			return err
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		rec, err = getRun(txn, string(id))
		return err
	})
	return rec, err
}

// List returns up to limit records, newest first. limit <= 0 means all.
func (s *Store) List(limit int) ([]Record, error) {
	var records []Record
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(runPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			rec, err := decode(val)
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func getRun(txn *badger.Txn, id string) (Record, error) {
	item, err := txn.Get([]byte(runPrefix + id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Record{}, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Record{}, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return Record{}, err
	}
	return decode(val)
}

func encode(rec Record) ([]byte, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(raw); err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(val []byte) (Record, error) {
	raw, err := io.ReadAll(lz4.NewReader(bytes.NewReader(val)))
	if err != nil {
		return Record{}, fmt.Errorf("decompression failed: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Fingerprint hashes both documents, the thresholds and any extra run
// parameters (page range, masking) with BLAKE2b-256.
func Fingerprint(golden, target []model.PageFragments, cfg classify.Config, params ...string) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	payload := struct {
		Golden []model.PageFragments `json:"golden"`
		Target []model.PageFragments `json:"target"`
		Config classify.Config       `json:"config"`
		Params []string              `json:"params"`
	}{golden, target, cfg, params}
	if err := json.NewEncoder(h).Encode(payload); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
