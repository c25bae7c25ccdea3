package openapi

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-propgen/pkg/schema"
)

// Loader fetches raw documents from a Source.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// Parser derives property schemas from a Document: one schema per named
// object entry under components.schemas.
type Parser interface {
	Schemas(ctx context.Context, doc Document) (map[string]*schema.PropertySchema, error)
}

// LoaderOptions configures document loading strategies.
type LoaderOptions struct {
	// FileSystem backs fs.FS sources. Nil disables them.
	FileSystem fs.FS

	// HTTPClient overrides the client used for URL sources.
	HTTPClient *http.Client

	// AllowHTTPFallback enables URL sources with a default client when no
	// HTTPClient was supplied.
	AllowHTTPFallback bool

	// RequestTimeout bounds URL fetches.
	RequestTimeout time.Duration
}

// NewLoaderOptions returns options with HTTP enabled and a conservative
// request timeout.
func NewLoaderOptions() LoaderOptions {
	return LoaderOptions{
		AllowHTTPFallback: true,
		RequestTimeout:    30 * time.Second,
	}
}

// ParserOptions configures schema derivation.
type ParserOptions struct {
	// AllowPartialDocuments skips the error when a document declares no
	// usable component schemas.
	AllowPartialDocuments bool
}

// NewParserOptions returns the default parser configuration.
func NewParserOptions() ParserOptions {
	return ParserOptions{}
}
