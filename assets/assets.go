// Package assets embeds the static web page.
package assets

import _ "embed"

// Index is the search form served at "/".
//
//go:embed index.html
var Index []byte
