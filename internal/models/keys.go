// Package models defines the data structures shared by the ingestion
// pipeline and the graph store.
package models

import (
	"strings"
	"unicode"
)

// maxKeyLen bounds record ids so generated keys stay readable in queries.
const maxKeyLen = 64

// NormalizeKey converts a free-form name into the natural key used as a
// graph record id: lower-cased, runs of non-alphanumerics collapsed to a
// single underscore. Two spellings that differ only in case or
// punctuation map to the same canonical node.
func NormalizeKey(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastUnderscore := true // suppress leading underscore
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	key := strings.TrimRight(b.String(), "_")
	if len(key) > maxKeyLen {
		key = key[:maxKeyLen]
	}
	return key
}

// CandidateID derives the durable candidate record id from the
// storage-unique file name. Re-processing the same stored document
// always maps to the same id.
func CandidateID(storageName string) string {
	return NormalizeKey(storageName)
}
