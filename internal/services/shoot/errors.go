package shoot

import "errors"

// Define errors
var (
	ErrNilConfig        = errors.New("config cannot be nil")
	ErrNilShootRepo     = errors.New("shoot repository cannot be nil")
	ErrNilNotifier      = errors.New("notifier cannot be nil")
	ErrEmptyCreatorName = errors.New("creator name cannot be empty")
	ErrEmptyArcherName  = errors.New("archer name cannot be empty")
)
