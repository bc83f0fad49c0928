package generator

import "errors"

// ErrUnsupportedCategory is returned for a category name no generator handles.
var ErrUnsupportedCategory = errors.New("unsupported recipe category")
