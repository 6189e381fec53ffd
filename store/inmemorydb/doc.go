// Package inmemorydb provides a volatile implementation of the score storer
// contract. It is meant for tests and for running the bot without persistent
// storage; scores are lost when the process exits
package inmemorydb
