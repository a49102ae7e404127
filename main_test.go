package main

import (
	"os"
	"testing"

	"github.com/kami-zh/go-capturer"
	"github.com/stretchr/testify/assert"
)

func Test_MainHelp(t *testing.T) {
	origArgs := make([]string, 0)
	origArgs = append(origArgs, os.Args...)

	defer func() { os.Args = origArgs }()

	os.Args = []string{"webpconvert", "--help"}

	output := capturer.CaptureStdout(func() {
		main()
	})

	assert.Contains(t, output, "USAGE:")
	assert.Contains(t, output, "[source] [target]")
	assert.Contains(t, output, "GLOBAL OPTIONS:")

	for _, flag := range []string{
		"--prefix", "--suffix", "--quality", "--threads", "--lossless", "--mute", "--config", "--log-level",
	} {
		assert.Contains(t, output, flag)
	}
}

func Test_MainVersion(t *testing.T) {
	origArgs := make([]string, 0)
	origArgs = append(origArgs, os.Args...)

	defer func() { os.Args = origArgs }()

	os.Args = []string{"webpconvert", "--version"}

	output := capturer.CaptureStdout(func() {
		main()
	})

	assert.Contains(t, output, "webpconvert version")
}

func Test_RunWithUnknownFlag(t *testing.T) {
	origArgs := make([]string, 0)
	origArgs = append(origArgs, os.Args...)

	defer func() { os.Args = origArgs }()

	os.Args = []string{"webpconvert", "--unknown-flag"}

	var err error

	_ = capturer.CaptureStdout(func() { err = run() })

	assert.Error(t, err)
}
