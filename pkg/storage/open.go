package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

// Open resolves a location string to a backend:
//
//	s3://bucket/prefix   S3Store using the default AWS credential chain
//	badger:///var/lib/x  BadgerStore on disk
//	mem://               in-memory BadgerStore
//	file:///dir or dir   LocalStore
//
// Callers release the result with Close.
func Open(ctx context.Context, location string) (BlobStore, error) {
	if !strings.Contains(location, "://") {
		if location == "" {
			location = "."
		}
		return NewLocalStore(location), nil
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("storage: invalid location %q: %w", location, err)
	}

	switch u.Scheme {
	case "file":
		return NewLocalStore(u.Host + u.Path), nil
	case "s3":
		if u.Host == "" {
			return nil, fmt.Errorf("storage: %q has no bucket", location)
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load aws config: %w", err)
		}
		return NewS3Store(cfg, u.Host, u.Path), nil
	case "badger":
		return NewBadgerStore(BadgerOptions{Dir: u.Host + u.Path})
	case "mem":
		return NewBadgerStore(BadgerOptions{InMemory: true})
	default:
		return nil, fmt.Errorf("storage: unsupported scheme %q", u.Scheme)
	}
}
