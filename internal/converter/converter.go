// Package converter turns the found PNG and JPEG files into their WebP counterparts, mirroring
// the source directory structure below the target directory.
package converter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"

	"github.com/growdashtech/webpconvert/internal/finder"
	"github.com/growdashtech/webpconvert/internal/humanize"
	"github.com/growdashtech/webpconvert/internal/logger"
	"github.com/growdashtech/webpconvert/internal/validate"
	"github.com/growdashtech/webpconvert/pkg/webpenc"
)

// ImageEncoder re-encodes a single image stream into the WebP format.
type ImageEncoder interface {
	Convert(src io.Reader, dest io.Writer) (*webpenc.Result, error)
}

// Option allows to setup some internal converter properties from outside.
type Option func(*Converter)

// WithThreads setups the worker pool size (zero is ignored).
func WithThreads(count uint) Option {
	return func(c *Converter) {
		if count > 0 {
			c.threads = count
		}
	}
}

// WithRename setups the output file name decoration (`<prefix><name><suffix>.webp`).
func WithRename(prefix, suffix string) Option {
	return func(c *Converter) { c.prefix, c.suffix = prefix, suffix }
}

// Converter converts image files into the WebP format using a bounded worker pool.
type Converter struct {
	log   logger.Logger
	enc   ImageEncoder
	stats *StatsStorage

	threads        uint
	prefix, suffix string
}

// New creates new Converter instance. Every successful conversion is pushed into the passed
// stats storage.
func New(log logger.Logger, enc ImageEncoder, stats *StatsStorage, opts ...Option) *Converter {
	c := &Converter{
		log:     log,
		enc:     enc,
		stats:   stats,
		threads: 1,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Run expands the given glob set and converts every matched file, writing the results below
// targetDir with the source directory structure preserved. The first conversion failure cancels
// the remaining work and is returned; an interrupted run returns the context error.
func (c *Converter) Run(ctx context.Context, set finder.GlobSet, targetDir string) error {
	files, err := set.Expand(ctx)
	if err != nil {
		return errors.Wrap(err, "files searching failed")
	}

	if len(files) == 0 {
		c.log.Debug("Nothing to convert", "patterns="+strings.Join(set.Patterns(), ";"))

		return nil
	}

	c.log.Debug("Files found", fmt.Sprintf("count=%d", len(files)))

	var (
		runCtx, cancel = context.WithCancel(ctx)
		guard          = make(chan struct{}, max(1, int(c.threads)))
		wg             sync.WaitGroup

		errOnce  sync.Once
		firstErr error
	)

	defer cancel()

loop:
	for _, path := range files {
		select {
		case <-runCtx.Done(): // stop scheduling new files once canceled
			break loop

		case guard <- struct{}{}: // acquire a concurrency slot
			wg.Add(1)
		}

		go func(path string) {
			defer func() {
				<-guard // release the concurrency slot
				wg.Done()
			}()

			if err := c.convertFile(runCtx, path, set.Base(), targetDir); err != nil {
				errOnce.Do(func() {
					firstErr = err

					cancel()
				})
			}
		}(path)
	}

	wg.Wait()

	if firstErr != nil {
		return firstErr
	}

	return ctx.Err()
}

// convertFile converts a single file. The WebP data is encoded into a temporary file next to the
// final location first and renamed when complete, so a failed conversion never leaves a partial
// output file behind.
func (c *Converter) convertFile(ctx context.Context, path, baseDir, targetDir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rel, outPath, err := c.outputPath(path, baseDir, targetDir)
	if err != nil {
		return err
	}

	srcFile, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "source file opening failed")
	}

	defer func() { _ = srcFile.Close() }()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return errors.Wrapf(err, "source file reading failed (%s)", path)
	}

	if ok, mime, checkErr := validate.IsImage(srcFile); checkErr != nil {
		return errors.Wrapf(checkErr, "content checking failed (%s)", path)
	} else if !ok {
		return errors.Errorf("%s is not an image (%s detected)", path, mime)
	}

	if err = os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return errors.Wrap(err, "target directory creation failed")
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(outPath), "*.webp.tmp")
	if err != nil {
		return errors.Wrap(err, "temporary file creation failed")
	}

	res, err := c.enc.Convert(srcFile, tmpFile)

	if closeErr := tmpFile.Close(); err == nil && closeErr != nil {
		err = closeErr
	}

	if err == nil {
		err = os.Rename(tmpFile.Name(), outPath)
	}

	if err != nil {
		_ = os.Remove(tmpFile.Name())

		return errors.Wrapf(err, "converting failed (%s)", path)
	}

	var origSize, newSize = uint64(srcInfo.Size()), uint64(res.BytesWritten)

	c.stats.Push(Stat{
		Path:          rel,
		Format:        res.Format,
		OriginalSize:  origSize,
		ConvertedSize: newSize,
	})

	pterm.Success.Printfln(
		"%s converted (%s → %s, %s)",
		rel, humanize.IBytes(origSize), humanize.IBytes(newSize), humanize.PercentageDiff(newSize, origSize),
	)

	return nil
}

// outputPath calculates the source-relative path of the file and the full path of its WebP
// counterpart below the target directory.
func (c *Converter) outputPath(path, baseDir, targetDir string) (rel, out string, err error) {
	rel, err = filepath.Rel(baseDir, path)
	if err != nil {
		return "", "", errors.Wrapf(err, "relative path resolving failed (%s)", path)
	}

	var (
		name = filepath.Base(rel)
		stem = strings.TrimSuffix(name, filepath.Ext(name))
	)

	out = filepath.Join(targetDir, filepath.Dir(rel), c.prefix+stem+c.suffix+".webp")

	return
}
