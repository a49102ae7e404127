package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/growdashtech/webpconvert/internal/config"
)

func TestConfig_FromFile(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		giveContent   string
		wantStruct    config.Config
		wantErrSubstr string
	}{
		"empty file": {
			giveContent: "",
			wantStruct:  config.Config{},
		},
		"full config": {
			giveContent: `
prefix: webp_
suffix: _converted
quality: 75
threads: 4
lossless: true`,
			wantStruct: config.Config{
				Prefix:   toPtr("webp_"),
				Suffix:   toPtr("_converted"),
				Quality:  toPtr(75),
				Threads:  toPtr(uint(4)),
				Lossless: toPtr(true),
			},
		},
		"partial config": {
			giveContent: `quality: 42`,
			wantStruct: config.Config{
				Quality: toPtr(42),
			},
		},

		"broken yaml": {
			giveContent:   "%%%not-a-yaml%%%",
			wantErrSubstr: "failed to decode the config file",
		},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var filePath = filepath.Join(t.TempDir(), "webpconvert.yml")

			if err := os.WriteFile(filePath, []byte(tc.giveContent), 0o600); err != nil {
				t.Fatalf("failed to create a config file: %v", err)
			}

			var (
				c   config.Config
				err = c.FromFile(filePath)
			)

			if tc.wantErrSubstr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				// assert the structure
				if !reflect.DeepEqual(c, tc.wantStruct) {
					t.Fatalf("expected: %+v, got: %+v", tc.wantStruct, c)
				}

				return
			}

			if err == nil {
				t.Fatalf("expected an error, got nil")
			}

			if got := err.Error(); !strings.Contains(got, tc.wantErrSubstr) {
				t.Fatalf("expected error to contain %q, got %q", tc.wantErrSubstr, got)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		var c config.Config

		if err := c.FromFile(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
			t.Fatal("expected an error, got nil")
		} else if !strings.Contains(err.Error(), "failed to open the config file") {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("merge", func(t *testing.T) {
		var (
			tmpDir  = t.TempDir()
			config1 = filepath.Join(tmpDir, "config1.yml")
			config2 = filepath.Join(tmpDir, "config2.yml")
		)

		// create config files
		for _, err := range []error{
			os.WriteFile(config1, []byte(`
quality: 50
prefix: old_
`), 0o600),
			os.WriteFile(config2, []byte(`
quality: 90
`), 0o600),
		} {
			if err != nil {
				t.Fatalf("failed to create a config file: %v", err)
			}
		}

		var cfg config.Config

		// read the first file
		if err := cfg.FromFile(config1); err != nil {
			t.Fatalf("failed to read the first config file: %v", err)
		}

		// read the second file
		if err := cfg.FromFile(config2); err != nil {
			t.Fatalf("failed to read the second config file: %v", err)
		}

		// assert the structure
		if !reflect.DeepEqual(cfg, config.Config{
			Quality: toPtr(90),
			Prefix:  toPtr("old_"),
		}) {
			t.Fatalf("unexpected config: %+v", cfg)
		}
	})
}

func toPtr[T any](v T) *T { return &v }
