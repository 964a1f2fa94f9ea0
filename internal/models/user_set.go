package models

import (
	"sort"
)

// UserSet is a set of usernames. Iteration order is imposed by Sorted.
type UserSet struct {
	items map[string]struct{}
}

// NewUserSet creates a set holding the given non-empty usernames
func NewUserSet(usernames ...string) *UserSet {
	s := &UserSet{items: make(map[string]struct{}, len(usernames))}
	for _, u := range usernames {
		s.Add(u)
	}
	return s
}

// Add inserts a username; empty names are ignored
func (s *UserSet) Add(username string) {
	if username == "" {
		return
	}
	s.items[username] = struct{}{}
}

// Has reports whether the username is in the set
func (s *UserSet) Has(username string) bool {
	_, ok := s.items[username]
	return ok
}

// Len returns the number of distinct usernames
func (s *UserSet) Len() int {
	return len(s.items)
}

// Sorted returns the usernames in ascending order
func (s *UserSet) Sorted() []string {
	users := make([]string, 0, len(s.items))
	for u := range s.items {
		users = append(users, u)
	}
	sort.Strings(users)
	return users
}
