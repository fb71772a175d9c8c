package cyclehighways

import "github.com/pkg/errors"

var (
	ErrNodeNotFound      = errors.New("node not found")
	ErrLinkNotFound      = errors.New("link not found")
	ErrDuplicateNode     = errors.New("node already exists")
	ErrDuplicateLink     = errors.New("link already exists")
	ErrMissingProperty   = errors.New("feature property is missing")
	ErrUnsupportedFormat = errors.New("file format is not supported")
)
