// Package datastoredb provides an implementation of the score storer
// contract backed by google cloud datastore. Increments run inside a
// datastore transaction which supplies the linearizable-per-key atomicity
// the dispatcher requires of its storage collaborator
package datastoredb
