// Package store defines the scoring persistence contract along with a
// leveldb-backed implementation of it. Alternative backends live in
// sub-packages (datastoredb for google cloud datastore and inmemorydb for
// volatile storage)
package store

// ScoreEntry holds one item along with its current score. Item carries the
// display form of the identity (the casing of its first use for things)
type ScoreEntry struct {
	Item  string
	Score int
}

// ScoreStorer is implemented by backends persisting award counts keyed by
// item identity. Identity comparison is case-insensitive for thing names so
// implementations fold the item to lower case to form the storage key while
// preserving the display casing of first use.
//
// AddPoint must be atomic: a single indivisible increment-and-return so that
// concurrent award flows for the same item never lose updates. The dispatcher
// relies on this property instead of implementing its own locking
type ScoreStorer interface {
	// GetScore returns the current score for an item. found is false when
	// the item has never been awarded a point
	GetScore(item string) (score int, found bool, err error)

	// AddPoint atomically increments the item's score by one, creating the
	// record at 1 if absent, and returns the new score
	AddPoint(item string) (newScore int, err error)

	// TopScores returns up to count entries ordered by descending score
	TopScores(count int) (entries []ScoreEntry, err error)

	// Close closes the storer
	Close() (err error)
}
