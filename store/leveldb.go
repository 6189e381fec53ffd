package store

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/syndtr/goleveldb/leveldb"
	leveldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Key prefixes separating score records from the display-name records that
// remember the casing of an item's first use
const (
	scoreKeyPrefix = "score:"
	nameKeyPrefix  = "name:"
)

// LevelDB is a ScoreStorer backed by a leveldb database. Increments take a
// process-wide mutex around the read-modify-write so AddPoint satisfies the
// atomicity contract for a single process owning the database
type LevelDB struct {
	Name     string
	mutex    sync.Mutex
	database *leveldb.DB
}

// NewLevelDB instantiates and opens a new LevelDB instance backed by a
// leveldb database. If the leveldb database doesn't exist, one is created
func NewLevelDB(name string, storagePath string) (ldb *LevelDB, err error) {
	// Expand '~' as the full home directory path if appropriate
	path, err := homedir.Expand(storagePath)
	if err != nil {
		return nil, err
	}

	fullPath := filepath.Join(path, name)
	db, err := leveldb.OpenFile(fullPath, nil)

	if _, ok := err.(*leveldberrors.ErrCorrupted); ok {
		return nil, errors.Wrap(err, fmt.Sprintf("leveldb corrupted. Consider deleting [%s] and restarting if you don't mind losing data", fullPath))
	} else if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to open file with path [%s]", fullPath))
	}

	return &LevelDB{Name: name, database: db}, nil
}

// Close closes the LevelDB
func (ldb *LevelDB) Close() (err error) {
	return ldb.database.Close()
}

// GetScore retrieves the current score for an item, with found set to false
// when the item has never been awarded a point
func (ldb *LevelDB) GetScore(item string) (score int, found bool, err error) {
	data, err := ldb.database.Get([]byte(scoreKeyPrefix+normalizeItem(item)), nil)
	if err == leveldb.ErrNotFound {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}

	score, err = cast.ToIntE(string(data))
	if err != nil {
		return 0, false, errors.Wrap(err, fmt.Sprintf("invalid stored score for [%s]", item))
	}

	return score, true, nil
}

// AddPoint increments the score of an item by one and returns the new value.
// The display casing of the item's first use is persisted alongside the score
func (ldb *LevelDB) AddPoint(item string) (newScore int, err error) {
	ldb.mutex.Lock()
	defer ldb.mutex.Unlock()

	key := normalizeItem(item)

	score, _, err := ldb.GetScore(item)
	if err != nil {
		return 0, err
	}

	newScore = score + 1
	err = ldb.database.Put([]byte(scoreKeyPrefix+key), []byte(strconv.Itoa(newScore)), nil)
	if err != nil {
		return 0, errors.Wrap(err, fmt.Sprintf("failed to persist score for [%s]", item))
	}

	if _, err := ldb.database.Get([]byte(nameKeyPrefix+key), nil); err == leveldb.ErrNotFound {
		err = ldb.database.Put([]byte(nameKeyPrefix+key), []byte(item), nil)
		if err != nil {
			return 0, errors.Wrap(err, fmt.Sprintf("failed to persist display name for [%s]", item))
		}
	}

	return newScore, nil
}

// TopScores returns up to count entries ordered by descending score, ties
// broken by item name
func (ldb *LevelDB) TopScores(count int) (entries []ScoreEntry, err error) {
	scores, err := ldb.scanPrefix(scoreKeyPrefix)
	if err != nil {
		return nil, err
	}

	names, err := ldb.scanPrefix(nameKeyPrefix)
	if err != nil {
		return nil, err
	}

	entries = make([]ScoreEntry, 0, len(scores))
	for key, rawScore := range scores {
		score, err := cast.ToIntE(rawScore)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("invalid stored score for [%s]", key))
		}

		item := key
		if name, ok := names[key]; ok {
			item = name
		}

		entries = append(entries, ScoreEntry{Item: item, Score: score})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score || (entries[i].Score == entries[j].Score && entries[i].Item < entries[j].Item)
	})

	if len(entries) > count {
		entries = entries[:count]
	}

	return entries, nil
}

// scanPrefix returns all entries under a key prefix, keyed by the remainder
// of the key past the prefix
func (ldb *LevelDB) scanPrefix(prefix string) (entries map[string]string, err error) {
	entries = map[string]string{}

	iter := ldb.database.NewIterator(util.BytesPrefix([]byte(prefix)), nil)
	for iter.Next() {
		key := strings.TrimPrefix(string(iter.Key()), prefix)
		entries[key] = string(iter.Value())
	}

	iter.Release()
	err = iter.Error()

	return entries, err
}

// normalizeItem folds an item identity to its storage key form. Thing
// identity is case-insensitive so casing variants accumulate onto a single
// record
func normalizeItem(item string) string {
	return strings.ToLower(item)
}
