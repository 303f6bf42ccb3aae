package model

import "time"

// AssignmentLock is an advisory lock document. Inserting a second document
// with the same _id fails with a duplicate key error, which serializes
// concurrent assignment passes over the fleet pool.
type AssignmentLock struct {
	ID        string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}
