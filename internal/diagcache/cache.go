package diagcache

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/sync/singleflight"

	"github.com/alex65536/fenboard/internal/util/slogx"
)

type Options struct {
	Path string        `toml:"path"`
	TTL  time.Duration `toml:"ttl"`
}

func (o *Options) FillDefaults() {
	if o.TTL == 0 {
		o.TTL = 24 * time.Hour
	}
}

type Key struct {
	Layout     string
	SquareSize int
	Rotated    bool
	Coords     bool
	Palette    string
}

func (k Key) String() string {
	var b strings.Builder
	_, _ = b.WriteString("diagram/")
	_, _ = b.WriteString(k.Layout)
	_ = b.WriteByte('/')
	_, _ = b.WriteString(strconv.Itoa(k.SquareSize))
	_ = b.WriteByte('/')
	_, _ = b.WriteString(strconv.FormatBool(k.Rotated))
	_ = b.WriteByte('/')
	_, _ = b.WriteString(strconv.FormatBool(k.Coords))
	if k.Palette != "" {
		_ = b.WriteByte('/')
		_, _ = b.WriteString(k.Palette)
	}
	return b.String()
}

// Cache stores rendered diagrams. If the path is empty, everything is kept in
// memory.
type Cache struct {
	db    *badger.DB
	log   *slog.Logger
	o     Options
	group singleflight.Group
}

func Open(log *slog.Logger, o Options) (*Cache, error) {
	o.FillDefaults()
	bo := badger.DefaultOptions(o.Path).WithLogger(nil)
	if o.Path == "" {
		bo = bo.WithInMemory(true)
	}
	log.Info("opening diagram cache", slog.Bool("in_memory", o.Path == ""))
	db, err := badger.Open(bo)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Cache{db: db, log: log, o: o}, nil
}

func (c *Cache) Close() {
	if err := c.db.Close(); err != nil {
		c.log.Error("could not close diagram cache", slogx.Err(err))
	}
}

// Get returns the cached data and true, or nil and false if the key is not
// cached.
func (c *Cache) Get(key Key) ([]byte, bool, error) {
	var data []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key.String()))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get: %w", err)
	}
	return data, true, nil
}

func (c *Cache) Put(key Key, data []byte) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key.String()), data).WithTTL(c.o.TTL))
	})
	if err != nil {
		return fmt.Errorf("put: %w", err)
	}
	return nil
}

// GetOrRender returns the cached diagram, or renders and stores it. Concurrent
// calls for the same key render only once. A failure to store the rendered
// data is logged and not returned.
func (c *Cache) GetOrRender(key Key, render func() ([]byte, error)) ([]byte, error) {
	data, ok, err := c.Get(key)
	if err != nil {
		c.log.Warn("could not read diagram cache", slogx.Err(err))
	} else if ok {
		return data, nil
	}
	res, err, _ := c.group.Do(key.String(), func() (any, error) {
		data, err := render()
		if err != nil {
			return nil, err
		}
		if err := c.Put(key, data); err != nil {
			c.log.Warn("could not write diagram cache", slogx.Err(err))
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return res.([]byte), nil
}
