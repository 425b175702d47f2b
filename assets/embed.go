// Package assets embeds the default dictionaries and SQL migrations so the
// server runs without any files configured.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed valid-words-by-length.json generate-words-by-length.json
var FS embed.FS

//go:embed sql/*.sql
var migrations embed.FS

const (
	ValidWordsFile    = "valid-words-by-length.json"
	GenerateWordsFile = "generate-words-by-length.json"
)

// ValidWords returns the raw embedded validation dictionary.
func ValidWords() ([]byte, error) {
	return FS.ReadFile(ValidWordsFile)
}

// GenerateWords returns the raw embedded generation dictionary.
func GenerateWords() ([]byte, error) {
	return FS.ReadFile(GenerateWordsFile)
}

// Migrations exposes the sql/ directory as its own root.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "sql")
	if err != nil {
		// sql/ is embedded at build time; Sub only fails on a malformed path.
		panic(err)
	}
	return sub
}
