package inmemorydb

import (
	"sort"
	"strings"
	"sync"

	"github.com/stevenspiel/heytaco/store"
)

// InMemoryDB implements the heytaco ScoreStorer interface keeping everything
// in memory. A mutex guards all accesses which trivially makes AddPoint
// atomic
type InMemoryDB struct {
	mutex  sync.Mutex
	scores map[string]int
	names  map[string]string
}

// New returns a new empty InMemoryDB
func New() (imdb *InMemoryDB) {
	imdb = new(InMemoryDB)
	imdb.scores = make(map[string]int)
	imdb.names = make(map[string]string)

	return imdb
}

// GetScore returns the current score for an item, with found set to false
// when the item has never been awarded a point
func (imdb *InMemoryDB) GetScore(item string) (score int, found bool, err error) {
	imdb.mutex.Lock()
	defer imdb.mutex.Unlock()

	score, found = imdb.scores[strings.ToLower(item)]
	return score, found, nil
}

// AddPoint increments the score of an item by one and returns the new value,
// remembering the display casing of the item's first use
func (imdb *InMemoryDB) AddPoint(item string) (newScore int, err error) {
	imdb.mutex.Lock()
	defer imdb.mutex.Unlock()

	key := strings.ToLower(item)

	imdb.scores[key] = imdb.scores[key] + 1
	if _, ok := imdb.names[key]; !ok {
		imdb.names[key] = item
	}

	return imdb.scores[key], nil
}

// TopScores returns up to count entries ordered by descending score, ties
// broken by item name
func (imdb *InMemoryDB) TopScores(count int) (entries []store.ScoreEntry, err error) {
	imdb.mutex.Lock()
	defer imdb.mutex.Unlock()

	entries = make([]store.ScoreEntry, 0, len(imdb.scores))
	for key, score := range imdb.scores {
		item := key
		if name, ok := imdb.names[key]; ok {
			item = name
		}

		entries = append(entries, store.ScoreEntry{Item: item, Score: score})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score || (entries[i].Score == entries[j].Score && entries[i].Item < entries[j].Item)
	})

	if len(entries) > count {
		entries = entries[:count]
	}

	return entries, nil
}

// Close is a no-op for the in-memory storer
func (imdb *InMemoryDB) Close() (err error) {
	return nil
}
