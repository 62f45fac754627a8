package utils

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// GenerateID returns a lowercase, time-sortable identifier such as "file-01hq...".
// An empty prefix yields the bare ULID.
func GenerateID(prefix string) (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", err
	}
	s := strings.ToLower(id.String())
	if prefix == "" {
		return s, nil
	}
	return prefix + "-" + s, nil
}
