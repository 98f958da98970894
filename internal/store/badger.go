package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// BadgerStore implements Store on an embedded Badger database, for single
// instances that must survive restarts without external infrastructure.
// Badger evicts expired entries itself, so there is no janitor here.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
}

var _ Store = (*BadgerStore)(nil)

// NewBadgerStore opens (or creates) a Badger database at path.
func NewBadgerStore(path string, ttl time.Duration, logger zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(badgerLogger{log: logger})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %s: %w", path, err)
	}

	return &BadgerStore{db: db, ttl: ttl}, nil
}

// NewBadgerStoreInMemory opens a Badger database that lives only in RAM,
// for tests.
func NewBadgerStoreInMemory(ttl time.Duration) (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory badger: %w", err)
	}

	return &BadgerStore{db: db, ttl: ttl}, nil
}

func (b *BadgerStore) sessionKey(sessionID string) []byte {
	return []byte("ussd:session:" + sessionID)
}

// Get loads a session from Badger.
func (b *BadgerStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	var session Session
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.sessionKey(sessionID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &session)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session from badger: %w", err)
	}

	return &session, nil
}

// Put writes a session with the configured TTL.
func (b *BadgerStore) Put(ctx context.Context, sessionID string, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(b.sessionKey(sessionID), data).WithTTL(b.ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("failed to save session to badger: %w", err)
	}

	return nil
}

// Delete removes a session. Badger treats deleting an absent key as a
// no-op.
func (b *BadgerStore) Delete(ctx context.Context, sessionID string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(b.sessionKey(sessionID))
	})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// Close closes the database.
func (b *BadgerStore) Close() error {
	return b.db.Close()
}

// badgerLogger adapts zerolog to Badger's internal logger interface.
// Badger is chatty at info level, so info goes to debug.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}
