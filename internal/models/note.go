package models

import "time"

type Note struct {
	ID        int64
	Owner     string
	Body      string
	CreatedAt time.Time
}
