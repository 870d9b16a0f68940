package settings

import "errors"

var (
	ErrSettingsNotFound = errors.New("leave settings not found")
)
