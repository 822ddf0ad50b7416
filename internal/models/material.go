package models

import "time"

// Material represents a learning material row. Read-only for this service;
// uploads live in the content pipeline.
type Material struct {
	ID         string    `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Subject    string    `db:"subject" json:"subject"`
	Department string    `db:"department" json:"department"`
	ViewCount  int       `db:"view_count" json:"view_count"`
	CreatedBy  string    `db:"created_by" json:"created_by"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
