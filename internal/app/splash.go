package app

import _ "embed"

// splashText is painted when the editor starts without a file.
//
//go:embed splash.txt
var splashText string
