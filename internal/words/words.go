// internal/words/words.go
//
// Word dictionaries for the puzzle engine.
//
// Two independent dictionaries are used:
//   - "validation": what players may submit.
//   - "generation": words the board generator embeds into a puzzle.
//
// Both share the same shape: words bucketed by length, uppercase internally.
// Lookups are case-insensitive and tolerate unknown lengths (an empty bucket
// simply means no valid words of that length).
//
// A prefix index is built alongside the word set so callers that enumerate
// letter sequences can stop as soon as no dictionary word can follow.

package words

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
)

// Dictionary is an immutable set of uppercase words bucketed by length.
// It is safe for concurrent reads once built.
type Dictionary struct {
	byLength map[int][]string    // sorted, deduplicated
	set      map[string]struct{} // all words
	prefixes map[string]struct{} // every proper prefix of every word
}

// New builds a Dictionary from raw words. Entries are trimmed, uppercased and
// kept only when alphabetic; each word lands in the bucket of its own length.
func New(list []string) *Dictionary {
	d := &Dictionary{
		byLength: make(map[int][]string),
		set:      make(map[string]struct{}, len(list)),
		prefixes: make(map[string]struct{}),
	}
	for _, raw := range list {
		w := normalize(raw)
		if w == "" || !isAlpha(w) {
			continue
		}
		if _, dup := d.set[w]; dup {
			continue
		}
		d.set[w] = struct{}{}
		d.byLength[len(w)] = append(d.byLength[len(w)], w)
		for i := 1; i < len(w); i++ {
			d.prefixes[w[:i]] = struct{}{}
		}
	}
	for n := range d.byLength {
		sort.Strings(d.byLength[n])
	}
	return d
}

// Parse decodes the length-keyed JSON format ({"5": ["apple", ...], ...}).
// Keys are informational only: words are re-bucketed by their real length.
func Parse(data []byte) (*Dictionary, error) {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("words: dictionary is empty")
	}
	var all []string
	for _, bucket := range raw {
		all = append(all, bucket...)
	}
	d := New(all)
	if len(d.set) == 0 {
		return nil, errors.New("words: dictionary has no usable words")
	}
	return d, nil
}

// Contains reports whether w is a word in the dictionary (case-insensitive).
func (d *Dictionary) Contains(w string) bool {
	if d == nil {
		return false
	}
	_, ok := d.set[normalize(w)]
	return ok
}

// HasPrefix reports whether some word strictly longer than p starts with p.
func (d *Dictionary) HasPrefix(p string) bool {
	if d == nil {
		return false
	}
	_, ok := d.prefixes[normalize(p)]
	return ok
}

// Bucket returns the words of length n. The slice must not be modified.
func (d *Dictionary) Bucket(n int) []string {
	if d == nil {
		return nil
	}
	return d.byLength[n]
}

// Lengths returns the populated word lengths in ascending order.
func (d *Dictionary) Lengths() []int {
	if d == nil {
		return nil
	}
	out := make([]int, 0, len(d.byLength))
	for n := range d.byLength {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Len returns the total number of words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.set)
}

// normalize trims and uppercases a word.
func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
