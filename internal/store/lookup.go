package store

import (
	"context"
	"strconv"
)

// FindByKey looks up documents whose field equals key. Writers outside this
// service sometimes store numeric codes as numbers, so when nothing matches
// the string form and key is a canonical number, the numeric form is tried.
func FindByKey(ctx context.Context, s Store, collection, field, key string) ([]Record, error) {
	recs, err := s.FindBy(ctx, collection, field, key)
	if err != nil || len(recs) > 0 {
		return recs, err
	}
	n, ok := numericKey(key)
	if !ok {
		return nil, nil
	}
	return s.FindBy(ctx, collection, field, n)
}

// numericKey accepts only keys that survive a float round trip, so "007" or
// "1e3" stay strings.
func numericKey(key string) (float64, bool) {
	f, err := strconv.ParseFloat(key, 64)
	if err != nil || strconv.FormatFloat(f, 'f', -1, 64) != key {
		return 0, false
	}
	return f, true
}
