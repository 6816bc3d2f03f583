package models

import "time"

// Subject is a course a user tracks work under. Assignments reference a
// subject owned by the same user.
type Subject struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
