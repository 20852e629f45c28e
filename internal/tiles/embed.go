package tiles

import "embed"

// dataFS embeds the tileset definition at build time.
//
//go:embed tileset.json
var dataFS embed.FS
