package storage

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/pders01/fluidcss/internal/cssgen"
	"github.com/pders01/fluidcss/internal/scale"
	"github.com/pders01/fluidcss/internal/table"
)

var (
	parametersBucket = []byte("parameters")
	tablesBucket     = []byte("tables")
)

// parametersKey is the single slot holding the shared settings record.
var parametersKey = []byte("current")

// Store persists the shared generation parameters and the three entry
// tables as opaque JSON blobs. The core treats it as the persistence
// collaborator: no schema versioning, no conflict resolution.
type Store struct {
	db *bolt.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{parametersBucket, tablesBucket} {
			if _, createErr := tx.CreateBucketIfNotExists(bucket); createErr != nil {
				return createErr
			}
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SaveParameters(params scale.Parameters) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(parametersBucket)
		data, err := json.Marshal(params)
		if err != nil {
			return err
		}
		return b.Put(parametersKey, data)
	})
}

// LoadParameters returns the persisted settings record, or the defaults
// when none has been saved yet. Loaded values are re-normalized so a
// hand-edited or stale blob can never smuggle in an invalid range.
func (s *Store) LoadParameters() (scale.Parameters, error) {
	params := scale.DefaultParameters()
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(parametersBucket)
		data := b.Get(parametersKey)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &params)
	})
	if err != nil {
		return scale.Parameters{}, fmt.Errorf("loading parameters: %w", err)
	}
	params.Normalize()
	return params, nil
}

func (s *Store) SaveTable(kind cssgen.Kind, st table.State) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(tablesBucket)
		data, err := json.Marshal(st)
		if err != nil {
			return err
		}
		return b.Put([]byte(kind.String()), data)
	})
}

// LoadTable rebuilds one kind's table. A kind that has never been saved
// comes back seeded with the canonical default entries.
func (s *Store) LoadTable(kind cssgen.Kind) (*table.Table, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(tablesBucket)
		if v := b.Get([]byte(kind.String())); v != nil {
			data = append(data, v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading %s table: %w", kind, err)
	}
	if data == nil {
		return table.NewWithDefaults(), nil
	}

	var st table.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decoding %s table: %w", kind, err)
	}
	t, err := table.FromState(st)
	if err != nil {
		return nil, fmt.Errorf("restoring %s table: %w", kind, err)
	}
	return t, nil
}

// LoadTables rebuilds all three kind tables.
func (s *Store) LoadTables() (map[cssgen.Kind]*table.Table, error) {
	tables := make(map[cssgen.Kind]*table.Table, 3)
	for _, kind := range cssgen.Kinds() {
		t, err := s.LoadTable(kind)
		if err != nil {
			return nil, err
		}
		tables[kind] = t
	}
	return tables, nil
}

// SaveAll persists the settings record and every table in one pass.
func (s *Store) SaveAll(params scale.Parameters, tables map[cssgen.Kind]*table.Table) error {
	if err := s.SaveParameters(params); err != nil {
		return err
	}
	for kind, t := range tables {
		if err := s.SaveTable(kind, t.State()); err != nil {
			return err
		}
	}
	return nil
}
