package seed

import (
	_ "embed"
)

//go:embed trivia.yaml
var sampleData []byte

// Sample returns the bundled starter catalog.
func Sample() (*File, error) {
	return Parse(sampleData)
}
