// Package mocks contains a mock of the store package interfaces
package mocks

import (
	"github.com/stevenspiel/heytaco/store"
	"github.com/stretchr/testify/mock"
)

// ScoreStorer holds a mock implementing the ScoreStorer interface
type ScoreStorer struct {
	mock.Mock
}

// GetScore mocks an implementation of GetScore
func (ms *ScoreStorer) GetScore(item string) (score int, found bool, err error) {
	args := ms.Called(item)

	return args.Int(0), args.Bool(1), args.Error(2)
}

// AddPoint mocks an implementation of AddPoint
func (ms *ScoreStorer) AddPoint(item string) (newScore int, err error) {
	args := ms.Called(item)

	return args.Int(0), args.Error(1)
}

// TopScores mocks an implementation of TopScores
func (ms *ScoreStorer) TopScores(count int) (entries []store.ScoreEntry, err error) {
	args := ms.Called(count)

	return args.Get(0).([]store.ScoreEntry), args.Error(1)
}

// Close mocks an implementation of Close
func (ms *ScoreStorer) Close() (err error) {
	args := ms.Called()

	return args.Error(0)
}
