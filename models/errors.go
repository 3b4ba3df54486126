package models

import "errors"

// ErrNoRecord is returned by model lookups that match no document.
var ErrNoRecord = errors.New("models: no matching record found")
