package mines

import "fmt"

var ErrInvalidParams = fmt.Errorf("invalid game params")

// ConfigError reports board dimensions or a mine count that cannot produce a
// playable board. It matches [ErrInvalidParams] with errors.Is.
type ConfigError struct {
	Width, Height, MineCount int
	Reason                   string
}

// [ConfigError] implements [error]
func (e *ConfigError) Error() string {
	return fmt.Sprintf(
		"cannot create a %dx%d board with %d mines: %s",
		e.Width, e.Height, e.MineCount, e.Reason,
	)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidParams
}
