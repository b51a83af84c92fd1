// Package badgr is an adapter for the badgerDB. It keeps two kinds of
// short-lived data: a snapshot of the active sessions dumped at shutdown
// and the cache of vocabulary embeddings.
package badgr

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"math"

	"github.com/dgraph-io/badger"

	"github.com/kodekulture/contexto-server/game"
	"github.com/kodekulture/contexto-server/repository"
)

var _ repository.Snapshot = new(SnapshotRepo)

const sessionPrefix = "session/"

type SnapshotRepo struct {
	db *badger.DB
}

func New(db *badger.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Dump implements repository.Snapshot.
func (r *SnapshotRepo) Dump(sessions []*game.Session) error {
	for _, s := range sessions {
		err := r.db.Update(func(txn *badger.Txn) error {
			b, err := json.Marshal(s)
			if err != nil {
				return err
			}
			e := badger.NewEntry([]byte(sessionPrefix+s.ID.String()), b)
			return txn.SetEntry(e)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Load implements repository.Snapshot. Restored sessions carry no runtime
// collaborators; the service rebinds them lazily.
func (r *SnapshotRepo) Load() ([]*game.Session, error) {
	var sessions []*game.Session
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(sessionPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var s game.Session
			err := it.Item().Value(func(v []byte) error {
				return json.Unmarshal(v, &s)
			})
			if err != nil {
				return err
			}
			sessions = append(sessions, &s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// Drop implements repository.Snapshot.
func (r *SnapshotRepo) Drop() error {
	return r.db.DropPrefix([]byte(sessionPrefix))
}

// VectorStore persists embeddings in badger, one vector per key, encoded
// as little-endian float32 bits. It implements embedding.Store.
type VectorStore struct {
	db *badger.DB
}

func NewVectorStore(db *badger.DB) *VectorStore {
	return &VectorStore{db: db}
}

const vectorPrefix = "vec/"

func (s *VectorStore) GetVector(key string) ([]float32, bool, error) {
	var vec []float32
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(vectorPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			vec = decodeVector(v)
			if vec == nil {
				return errors.New("corrupt vector entry")
			}
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return vec, true, nil
}

func (s *VectorStore) PutVector(key string, vec []float32) error {
	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(vectorPrefix+key), encodeVector(vec))
		return txn.SetEntry(e)
	})
}

func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4+len(vec)*4)
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(vec)))
	off := 4
	for _, v := range vec {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
		off += 4
	}
	return buf
}

func decodeVector(data []byte) []float32 {
	if len(data) < 4 {
		return nil
	}
	length := int(binary.LittleEndian.Uint32(data[:4]))
	data = data[4:]
	if len(data) != length*4 {
		return nil
	}
	vec := make([]float32, length)
	for i := 0; i < length; i++ {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4 : (i+1)*4]))
	}
	return vec
}
