package assets

import "errors"

// Lookup failures. The resolver falls back to the embedded copy only on
// the two not-found errors.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
)

// Rejections of an --asset-path directory or a name inside it.
var (
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid asset directory")
	ErrPathTraversal    = errors.New("asset path escapes the asset directory")
	ErrAssetRead        = errors.New("failed to read asset")
)
