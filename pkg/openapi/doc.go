// Package openapi defines the public surface for deriving property schemas
// from OpenAPI documents: a Source abstraction over files, fs.FS entries, and
// URLs, a Document wrapper keeping the API decoupled from kin-openapi, and
// the Loader/Parser contracts implemented under internal/openapi.
package openapi
