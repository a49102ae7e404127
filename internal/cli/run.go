package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"

	"github.com/growdashtech/webpconvert/internal/converter"
	"github.com/growdashtech/webpconvert/internal/copier"
	"github.com/growdashtech/webpconvert/internal/errgroup"
	"github.com/growdashtech/webpconvert/internal/finder"
	"github.com/growdashtech/webpconvert/internal/humanize"
	"github.com/growdashtech/webpconvert/internal/logger"
	"github.com/growdashtech/webpconvert/pkg/webpenc"
)

// run performs the whole tool work: locates the images below the source path, converts them into
// the target directory (two awaited passes, PNG and JPEG), and copies the non-image rest of the
// source tree when the target differs from the source.
func run(ctx context.Context, log logger.Logger, opts options, source, target string) error {
	absSource, err := filepath.Abs(source)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve the source path (%s)", source)
	}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve the target path (%s)", target)
	}

	var (
		srcIsFile = finder.IsFilePath(absSource)
		targetDir = absTarget
	)

	if finder.IsFilePath(absTarget) {
		targetDir = filepath.Dir(absTarget)
	}

	if opts.Recursive {
		log.Debug("The recursive flag has no effect (directories are always walked recursively)")
	}

	log.Debug("Run details",
		"source="+absSource,
		"target="+targetDir,
		fmt.Sprintf("quality=%d", opts.Quality),
		fmt.Sprintf("threads=%d", opts.ThreadsCount),
		fmt.Sprintf("lossless=%t", opts.Lossless),
	)

	var (
		pngSet, jpgSet = finder.BuildSets(absSource)

		stats = converter.NewStatsStorage()
		conv  = converter.New(
			log,
			webpenc.NewEncoder(webpenc.WithQuality(opts.Quality), webpenc.WithLossless(opts.Lossless)),
			stats,
			converter.WithThreads(opts.ThreadsCount),
			converter.WithRename(opts.Prefix, opts.Suffix),
		)
	)

	eg, _ := errgroup.New(ctx)

	eg.Go(func(ctx context.Context) error { return conv.Run(ctx, pngSet, targetDir) })
	eg.Go(func(ctx context.Context) error { return conv.Run(ctx, jpgSet, targetDir) })

	if err = eg.Wait(); err != nil {
		return err
	}

	// the copy step is best-effort: its failure is reported but never changes the exit status
	if !srcIsFile && targetDir != absSource {
		if copyErr := copier.New(log).Run(ctx, absSource, targetDir); copyErr != nil {
			log.Error(copyErr.Error())
		}
	}

	renderSummary(stats)

	return nil
}

// renderSummary prints the conversion results table to the standard output.
func renderSummary(stats *converter.StatsStorage) {
	if stats.TotalFiles() == 0 {
		pterm.Info.Println("No images were found to convert")

		return
	}

	var data = pterm.TableData{{"File Name", "Type", "Size Difference", "Saved"}}

	for _, stat := range stats.History() {
		data = append(data, []string{
			stat.Path,
			stat.Format,
			fmt.Sprintf("%s → %s", humanize.IBytes(stat.OriginalSize), humanize.IBytes(stat.ConvertedSize)),
			fmt.Sprintf("%s (%s)",
				humanize.IBytesDiff(stat.OriginalSize, stat.ConvertedSize),
				humanize.PercentageDiff(stat.ConvertedSize, stat.OriginalSize),
			),
		})
	}

	if total := stats.TotalFiles(); total > 1 {
		data = append(data, []string{
			fmt.Sprintf("Total (%d files)", total),
			"",
			fmt.Sprintf("%s → %s", humanize.IBytes(stats.TotalOriginalSize()), humanize.IBytes(stats.TotalConvertedSize())),
			fmt.Sprintf("%s (%s)",
				humanize.IBytesDiff(stats.TotalOriginalSize(), stats.TotalConvertedSize()),
				humanize.PercentageDiff(stats.TotalConvertedSize(), stats.TotalOriginalSize()),
			),
		})
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
