package cli

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/growdashtech/webpconvert/internal/config"
)

// defaultQuality is used when the quality value is missing or cannot be parsed.
const defaultQuality = 80

type options struct {
	Prefix       string
	Suffix       string
	Quality      int
	ThreadsCount uint
	Lossless     bool
	Recursive    bool
	Mute         bool
}

func newOptionsWithDefaults() options {
	return options{
		Prefix:       "",
		Suffix:       "",
		Quality:      defaultQuality,
		ThreadsCount: uint(runtime.NumCPU()),
		Lossless:     false,
		Recursive:    false,
		Mute:         false,
	}
}

// UpdateFromConfigFile loads the configuration from the file and applies it to the options.
func (o *options) UpdateFromConfigFile(filePath string) error {
	if filePath == "" {
		return nil
	}

	if stat, err := os.Stat(filePath); err != nil || stat.IsDir() {
		return nil // skip missing files and directories
	}

	var cfg config.Config

	if err := cfg.FromFile(filePath); err != nil {
		return fmt.Errorf("failed to load the configuration file: %w", err)
	}

	setIfSourceNotNil(&o.Prefix, cfg.Prefix)
	setIfSourceNotNil(&o.Suffix, cfg.Suffix)
	setIfSourceNotNil(&o.Quality, cfg.Quality)
	setIfSourceNotNil(&o.ThreadsCount, cfg.Threads)
	setIfSourceNotNil(&o.Lossless, cfg.Lossless)

	o.Quality = clampQuality(o.Quality)

	return nil
}

// setIfSourceNotNil sets the target value to the source value if both are not nil.
func setIfSourceNotNil[T any](target, source *T) {
	if target == nil || source == nil {
		return
	}

	*target = *source
}

// SetQualityFromString parses and applies the quality value leniently: an unparseable value
// falls back to the default one, out-of-range values are clamped into the [0..100] range.
func (o *options) SetQualityFromString(raw string) {
	quality, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		quality = defaultQuality
	}

	o.Quality = clampQuality(quality)
}

func clampQuality(quality int) int { return min(max(quality, 0), 100) }

func (o *options) Validate() error {
	if o.ThreadsCount == 0 {
		return fmt.Errorf("threads count cannot be zero")
	}

	return nil
}
