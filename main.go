// clockprose builds a corpus of literary quotes keyed by the minute of
// day they mention. It scrapes public-domain books and movie scripts,
// recognises natural-language time references, and deduplicates the
// extracted quotes into a time-keyed corpus.
package main

import (
	"os"

	"github.com/clockprose/clockprose-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
