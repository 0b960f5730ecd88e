package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/pid2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

// Persistence stores the gains of controllers. Gains are grouped by node
// (one bucket per controller family) and keyed by loop id.
type Persistence interface {
	Init() error

	// LoadGains decodes the gains stored for id into target. Returns
	// os.ErrNotExist if nothing is stored.
	LoadGains(node string, id string, target interface{}) error
	SaveGains(node string, id string, gains interface{}) error
	DeleteGains(node string, id string) error

	// ListGains returns the raw JSON of all gains stored under node, keyed by id.
	ListGains(node string) (map[string]json.RawMessage, error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SaveGains saves the given gains to persistence
func (p persistence) SaveGains(node string, id string, gains interface{}) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(gains)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(node))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		return b.Put([]byte(id), data)
	})
}

// LoadGains loads the gains of the given loop from persistence
func (p persistence) LoadGains(node string, id string, target interface{}) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	corrupt := false
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(node))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(id))
		if v == nil {
			return os.ErrNotExist
		}

		err := json.Unmarshal(v, target)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved gains for %s: %v", id, err)
			corrupt = true
			err := b.Delete([]byte(id))
			if err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", id, err)
			}
		}

		// the delete above only commits if the closure returns nil
		return nil
	})
	if err != nil {
		return err
	}
	if corrupt {
		return os.ErrNotExist
	}
	return nil
}

func (p persistence) DeleteGains(node string, id string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(node))
		if b == nil {
			// no bucket yet
			return nil
		}
		v := b.Get([]byte(id))
		if v == nil {
			// no data for given key
			return nil
		}

		return b.Delete([]byte(id))
	})
}

func (p persistence) ListGains(node string) (map[string]json.RawMessage, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	result := map[string]json.RawMessage{}
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(node))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			// values are only valid during the transaction
			data := make([]byte, len(v))
			copy(data, v)
			result[string(k)] = data
			return nil
		})
	})

	return result, err
}
