package models

import "time"

// PlayResult is the outcome of a single play attempt
type PlayResult struct {
	Win       bool
	Contest   *Contest
	Prize     *Prize
	Timestamp time.Time
}
