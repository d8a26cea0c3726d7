package bbolt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/fxamacker/cbor"
	log "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"go.etcd.io/bbolt"

	"github.com/insartools/sarcut"
)

var _ sarcut.Store = (*Storage)(nil)

var (
	regionBucket = []byte("region")
	infoBucket   = []byte("info")
)

// OperationStorageError is returned when the DB content is not what is expected
type OperationStorageError string

func (e OperationStorageError) Error() string {
	return string(e)
}

// Storage region storage
type Storage struct {
	*bbolt.DB
	logger log.Logger
}

// NewStorage returns a region storage using bboltdb
func NewStorage(path string, logger log.Logger) (*Storage, func() error, error) {
	// Creating DB
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, nil, fmt.Errorf("can't open database %w", err)
	}

	return &Storage{
		DB:     db,
		logger: logger,
	}, db.Close, nil
}

// NewROStorage returns a read only storage using bboltdb
func NewROStorage(path string, logger log.Logger) (*Storage, func() error, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{ReadOnly: true, Timeout: time.Second})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open DB for reading at %s: %w", path, err)
	}

	return &Storage{
		DB:     db,
		logger: logger,
	}, db.Close, nil
}

// Index stores regions and the index infos, replacing any previous content
func (s *Storage) Index(rs sarcut.RegionSet, fileName, version string) error {
	logger := log.With(s.logger, "component", "indexer")

	err := s.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{regionBucket, infoBucket} {
			if tx.Bucket(name) != nil {
				if err := tx.DeleteBucket(name); err != nil {
					return err
				}
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("can't create bucket into DB: %w", err)
	}

	var count uint32
	err = s.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(regionBucket)
		for _, r := range rs {
			buf := new(bytes.Buffer)
			enc := cbor.NewEncoder(buf, cbor.CanonicalEncOptions())
			rst := &sarcut.RegionStorage{Name: r.Name, Coords: r.Ring()}
			if err := enc.Encode(rst); err != nil {
				return fmt.Errorf("can't encode RegionStorage: %w", err)
			}

			if err := b.Put(sarcut.RegionKey(count), buf.Bytes()); err != nil {
				return err
			}

			level.Debug(logger).Log(
				"msg", "stored region",
				"region_id", count,
				"region_name", r.Name,
				"vertex_count", r.NumVertices(),
			)
			count++
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed store regions into DB: %w", err)
	}

	return s.writeInfos(count, fileName, version)
}

func (s *Storage) writeInfos(rcount uint32, fileName, version string) error {
	infoBytes := new(bytes.Buffer)

	infos := &sarcut.IndexInfos{
		Filename:       fileName,
		IndexTime:      time.Now(),
		IndexerVersion: version,
		RegionCount:    rcount,
	}

	enc := cbor.NewEncoder(infoBytes, cbor.CanonicalEncOptions())
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("failed encoding IndexInfos: %w", err)
	}

	err := s.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(infoBucket)

		return b.Put(sarcut.InfoKey(), infoBytes.Bytes())
	})
	if err != nil {
		return fmt.Errorf("failed storing IndexInfos: %w", err)
	}

	return nil
}

// LoadRegion loads one region from the DB
func (s *Storage) LoadRegion(id uint32) (*sarcut.Region, error) {
	rst := &sarcut.RegionStorage{}
	err := s.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(regionBucket)
		if b == nil {
			return OperationStorageError("can't find region bucket, invalid DB")
		}
		v := b.Get(sarcut.RegionKey(id))
		if v == nil {
			return OperationStorageError(fmt.Sprintf("region id not found: %d", id))
		}

		dec := cbor.NewDecoder(bytes.NewReader(v))
		return dec.Decode(rst)
	})
	if err != nil {
		return nil, fmt.Errorf("error loading region %w", err)
	}

	return sarcut.RegionFromStorage(id, rst)
}

// LoadAllRegions loads every region in id order
func (s *Storage) LoadAllRegions(add func(*sarcut.Region) error) error {
	return s.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(regionBucket)
		if b == nil {
			return OperationStorageError("can't find region bucket, invalid DB")
		}
		c := b.Cursor()
		prefix := []byte{sarcut.RegionPrefix()}
		for key, value := c.Seek(prefix); key != nil && bytes.HasPrefix(key, prefix); key, value = c.Next() {
			id := binary.BigEndian.Uint32(key[1:])

			rst := &sarcut.RegionStorage{}
			dec := cbor.NewDecoder(bytes.NewReader(value))
			if err := dec.Decode(rst); err != nil {
				return err
			}

			r, err := sarcut.RegionFromStorage(id, rst)
			if err != nil {
				return err
			}

			if err := add(r); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadIndexInfos loads index infos from the DB
func (s *Storage) LoadIndexInfos() (*sarcut.IndexInfos, error) {
	infos := &sarcut.IndexInfos{}

	err := s.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(infoBucket)
		if b == nil {
			return OperationStorageError("can't find infos bucket, invalid DB")
		}
		value := b.Get(sarcut.InfoKey())
		if value == nil {
			return OperationStorageError("can't find infos entries, invalid DB")
		}
		dec := cbor.NewDecoder(bytes.NewReader(value))

		return dec.Decode(infos)
	})

	return infos, err
}
