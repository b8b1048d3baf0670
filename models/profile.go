package models

import "time"

// User is the minimal profile the service keeps. Authentication lives in the
// upstream identity layer; this record only supports lookup and friend search.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
