// Package main provides the entry point for the clearlabel CLI.
//
// clearlabel analyzes cosmetic-ingredient label text against a curated
// hazard database and reports a per-ingredient verdict plus an aggregate
// product safety score.
//
// Usage:
//
//	clearlabel analyze "Aqua, Glycerin, Methylparaben"
//	clearlabel analyze --file label.txt --json
//	clearlabel lookup methylparaben
//
// See --help for all available options.
package main

func main() {
	Execute()
}
