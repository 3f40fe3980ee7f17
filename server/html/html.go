package html

import (
	"embed"
)

//go:embed index.html
var HTML embed.FS
