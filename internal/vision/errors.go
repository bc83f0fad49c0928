package vision

import "errors"

// ErrInvalidImage is returned for uploads that are not a decodable image of
// an accepted format.
var ErrInvalidImage = errors.New("invalid image")
