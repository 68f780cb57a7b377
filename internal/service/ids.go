package service

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	userIDLength = 8
	noteIDLength = 8
	tokenLength  = 24
)

// newID returns a URL-safe random string of the given length.
var newID = func(length int) (string, error) {
	return gonanoid.New(length)
}
