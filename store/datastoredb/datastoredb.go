package datastoredb

import (
	"context"
	"strings"

	"cloud.google.com/go/datastore"
	"github.com/stevenspiel/heytaco/store"
	"google.golang.org/api/option"
)

// DatastoreDB implements the heytaco ScoreStorer interface. It maps the
// given name to the datastore entity Kind to isolate data between instances
// sharing a gcloud project
type DatastoreDB struct {
	client *datastore.Client
	kind   string
}

// scoreEntity is the entity stored per item. Item holds the display casing
// of the item's first use; the entity key holds the normalized identity
type scoreEntity struct {
	Item  string `datastore:",noindex"`
	Score int
}

// NewDatastoreDB returns a new instance of DatastoreDB for the given name (which maps to the
// datastore entity "Kind" and can be thought of as the namespace). This function also requires
// a gcloudProjectID as well as client options to provide gcloud credentials
func NewDatastoreDB(name string, gcloudProjectID string, gcloudClientOpts ...option.ClientOption) (dsdb *DatastoreDB, err error) {
	ctx := context.Background()
	client, err := datastore.NewClient(ctx, gcloudProjectID, gcloudClientOpts...)
	if err != nil {
		return nil, err
	}

	dsdb = new(DatastoreDB)
	dsdb.client = client
	dsdb.kind = name

	if err = dsdb.testDB(); err != nil {
		dsdb.Close()
		return nil, err
	}

	return dsdb, nil
}

// testDB makes a lightweight call to the datastore to validate connectivity and credentials
func (dsdb *DatastoreDB) testDB() (err error) {
	_, _, err = dsdb.GetScore("testConnectivity")
	return err
}

// GetScore returns the current score for an item, with found set to false
// when the item has never been awarded a point
func (dsdb *DatastoreDB) GetScore(item string) (score int, found bool, err error) {
	ctx := context.Background()

	var e scoreEntity
	k := datastore.NameKey(dsdb.kind, normalizeItem(item), nil)
	if err := dsdb.client.Get(ctx, k, &e); err == datastore.ErrNoSuchEntity {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}

	return e.Score, true, nil
}

// AddPoint increments the score of an item by one inside a transaction and
// returns the new value. The entity is created at 1 on the first award with
// the item's display casing
func (dsdb *DatastoreDB) AddPoint(item string) (newScore int, err error) {
	ctx := context.Background()
	k := datastore.NameKey(dsdb.kind, normalizeItem(item), nil)

	_, err = dsdb.client.RunInTransaction(ctx, func(tx *datastore.Transaction) error {
		var e scoreEntity

		err := tx.Get(k, &e)
		if err == datastore.ErrNoSuchEntity {
			e = scoreEntity{Item: item}
		} else if err != nil {
			return err
		}

		e.Score = e.Score + 1
		newScore = e.Score

		_, err = tx.Put(k, &e)
		return err
	})

	if err != nil {
		return 0, err
	}

	return newScore, nil
}

// TopScores returns up to count entries ordered by descending score
func (dsdb *DatastoreDB) TopScores(count int) (entries []store.ScoreEntry, err error) {
	ctx := context.Background()

	var vals []*scoreEntity
	_, err = dsdb.client.GetAll(ctx, datastore.NewQuery(dsdb.kind).Order("-Score").Limit(count), &vals)
	if err != nil {
		return nil, err
	}

	entries = make([]store.ScoreEntry, 0, len(vals))
	for _, e := range vals {
		entries = append(entries, store.ScoreEntry{Item: e.Item, Score: e.Score})
	}

	return entries, nil
}

// Close closes the underlying datastore client
func (dsdb *DatastoreDB) Close() (err error) {
	return dsdb.client.Close()
}

func normalizeItem(item string) string {
	return strings.ToLower(item)
}
