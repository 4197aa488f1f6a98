// Package gamedata provides embedded game content and utilities for loading it.
//
// Content is data, not logic: enemy variants, items, locations, clues,
// recipes and skills are all declared in JSON and handed to the engines.
package gamedata

import (
	"embed"
	"io/fs"
)

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS

// FS returns the embedded filesystem containing game data.
func FS() fs.FS {
	return dataFS
}
