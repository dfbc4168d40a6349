package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/philipparndt/partview/pkg/config"
	"github.com/philipparndt/partview/pkg/fetch"
	"github.com/philipparndt/partview/pkg/stl"
)

// loadSettings reads the settings file. A broken file aborts instead of
// silently running with defaults.
func loadSettings() config.Settings {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}
	return settings
}

// loadModel reads src from disk or fetches it over HTTP, then decodes it.
func loadModel(src, proxyTemplate string) (*stl.Model, error) {
	data, err := readSource(src, proxyTemplate)
	if err != nil {
		return nil, err
	}
	return stl.Decode(data)
}

func readSource(src, proxyTemplate string) ([]byte, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		fetcher := fetch.NewFetcher(nil, nil)
		return fetcher.Fetch(context.Background(), src, proxyTemplate)
	}
	return os.ReadFile(strings.TrimPrefix(src, "file://"))
}
