// Package util collects small path-normalization helpers shared by the
// CLI and the HTTP/MCP wrappers, so all three surfaces agree on how a
// submitted file path maps to a URI and back.
package util

import (
	"net/url"
	"path/filepath"
	"strings"
)

// ToUri resolves path into a file:// locator. A path that already
// parses with a scheme (e.g. a client-submitted "file://..." path) is
// returned unchanged; a relative path is first joined onto rootPath.
func ToUri(path, rootPath string) (string, error) {
	if u, err := url.Parse(path); err == nil && u.Scheme != "" {
		return path, nil
	}

	abs := path
	if !filepath.IsAbs(path) {
		abs = filepath.Join(rootPath, path)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// ToRelativePath expresses fullPath relative to rootPath, falling back
// to fullPath unchanged if the two don't share a common root.
func ToRelativePath(rootPath, fullPath string) string {
	rel, err := filepath.Rel(rootPath, fullPath)
	if err != nil {
		return fullPath
	}
	return rel
}

// fileURIPrefix is the scheme ToUri emits and ExtractPathFromURI
// strips back off.
const fileURIPrefix = "file://"

// ExtractPathFromURI strips a leading "file://" scheme from uri,
// leaving any other string untouched. Used when accepting paths from
// callers (the HTTP and MCP wrappers) that may submit either a bare
// relative path or a full file:// locator.
func ExtractPathFromURI(uri string) string {
	return strings.TrimPrefix(uri, fileURIPrefix)
}

// Ptr returns a pointer to a copy of v, useful for populating an
// optional *T config field (e.g. max_token_offset, where nil must mean
// "unconfigured" and not merely "zero") from a plain value.
func Ptr[T any](v T) *T {
	return &v
}
