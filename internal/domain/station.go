package domain

import (
	"fmt"
	"sort"
	"strings"
)

// StationSet is the set of distinct station identifiers seen on valid rows.
type StationSet map[string]struct{}

func (s StationSet) add(name string) {
	s[name] = struct{}{}
}

// Len returns the number of distinct identifiers.
func (s StationSet) Len() int {
	return len(s)
}

// Contains reports whether name was observed.
func (s StationSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the identifiers in lexical order.
func (s StationSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Name returns the single station identifier. Input is assumed to cover one
// station: an empty set returns ErrNoStation and more than one identifier
// returns ErrMultipleStations.
func (s StationSet) Name() (string, error) {
	switch len(s) {
	case 0:
		return "", ErrNoStation
	case 1:
		for name := range s {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrMultipleStations, strings.Join(s.Sorted(), ", "))
}
