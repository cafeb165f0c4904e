package service

import (
	"time"

	"github.com/pageza/vitaltrack/backend/internal/models"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

// Now is the clock used for "today". Tests replace it.
var Now = time.Now

func requireSession(sess *types.Session) error {
	if !sess.Valid() {
		return ErrNoSession
	}
	return nil
}

// Today is the current date in UTC, formatted like every *_date column.
func Today() string {
	return Now().UTC().Format(models.DateLayout)
}

// resolveDate defaults an empty date to today and rejects malformed ones.
func resolveDate(date string) (string, error) {
	if date == "" {
		return Today(), nil
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return "", ErrInvalidDate
	}
	return date, nil
}

// daysBefore returns the date n days before date.
func daysBefore(date string, n int) string {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, -n).Format(models.DateLayout)
}

// DataChange is the payload of a data.changed event.
type DataChange struct {
	Kind string `json:"kind"`
}

func changed(kind string) DataChange { return DataChange{Kind: kind} }
