package static

import "embed"

// FS holds the site stylesheet and the page script served under /static/.
//
//go:embed site.css site.js
var FS embed.FS
