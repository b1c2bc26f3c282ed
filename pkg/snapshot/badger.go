package snapshot

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	badger "github.com/dgraph-io/badger/v4"
)

// keyPrefix namespaces snapshot records in the database.
const keyPrefix = "snapshot:"

func key(id string) []byte {
	return []byte(keyPrefix + id)
}

// Badger is a Store backed by BadgerDB v4.
type Badger struct {
	db *badger.DB
}

// BadgerOptions configures the BadgerDB store.
type BadgerOptions struct {
	// Dir is the directory for BadgerDB data files.
	// Required unless InMemory is set.
	Dir string

	// InMemory runs BadgerDB without disk persistence.
	InMemory bool

	// Logger receives badger's warnings and errors. Info and debug output is
	// logged at debug level. Defaults to slog.Default().
	Logger *slog.Logger
}

// NewBadger opens a BadgerDB-backed Store.
func NewBadger(opts BadgerOptions) (*Badger, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("snapshot: BadgerOptions.Dir is required for on-disk mode")
	}
	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	dbOpts = dbOpts.WithLogger(badgerLogger{l: logger.With("component", "badger")})

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open badger: %w", err)
	}
	return &Badger{db: db}, nil
}

func (b *Badger) Save(_ context.Context, s *Snapshot) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(s.ID), data)
	})
}

func (b *Badger) Load(_ context.Context, id string) (*Snapshot, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("snapshot: %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func (b *Badger) Delete(_ context.Context, id string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(id))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	return err
}

func (b *Badger) List(_ context.Context) iter.Seq2[Info, error] {
	prefix := []byte(keyPrefix)
	return func(yield func(Info, error) bool) {
		stopped := false
		err := b.db.View(func(txn *badger.Txn) error {
			iterOpts := badger.DefaultIteratorOptions
			iterOpts.Prefix = prefix
			it := txn.NewIterator(iterOpts)
			defer it.Close()

			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				data, err := it.Item().ValueCopy(nil)
				if err != nil {
					if !yield(Info{}, err) {
						stopped = true
						return nil
					}
					continue
				}
				s, err := decode(data)
				if err != nil {
					if !yield(Info{}, err) {
						stopped = true
						return nil
					}
					continue
				}
				if !yield(s.Info(), nil) {
					stopped = true
					return nil
				}
			}
			return nil
		})
		if err != nil && !stopped {
			yield(Info{}, err)
		}
	}
}

func (b *Badger) Close() error {
	return b.db.Close()
}

// badgerLogger routes badger's log output through slog.
type badgerLogger struct {
	l *slog.Logger
}

func (g badgerLogger) Errorf(f string, v ...any) { g.l.Error(fmt.Sprintf(f, v...)) }
func (g badgerLogger) Warningf(f string, v ...any) {
	g.l.Warn(fmt.Sprintf(f, v...))
}
func (g badgerLogger) Infof(f string, v ...any)  { g.l.Debug(fmt.Sprintf(f, v...)) }
func (g badgerLogger) Debugf(f string, v ...any) { g.l.Debug(fmt.Sprintf(f, v...)) }
