package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/editor"
	"github.com/kozaktomas/album-editor/internal/fingerprint"
	"github.com/kozaktomas/album-editor/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <folder-path>",
	Short: "Probe a folder of images and import them as assets",
	Long: `Read the pixel dimensions of every image in a folder.

Without --into the asset list is printed as JSON. With --into the assets
are added to an exported project, and --fill places the unused ones on
new pages, --per-page at a time.

--dedupe skips photos that look like one already read in this run.

By default, only files in the specified folder are read (non-recursive).
Use -r to search recursively in subdirectories.

Example:
  album-editor import ~/Pictures/trip > assets.json
  album-editor import -r ~/Pictures/trip --into trip.json --fill -o trip.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolP("recursive", "r", false, "Search for images recursively in subdirectories")
	importCmd.Flags().String("into", "", "Project file to add the assets to")
	importCmd.Flags().Bool("fill", false, "Place imported assets on the project's pages")
	importCmd.Flags().Int("per-page", 3, "Photos per page when filling")
	importCmd.Flags().Int("concurrency", 4, "Number of files probed in parallel")
	importCmd.Flags().Bool("dedupe", false, "Skip photos that look like one already imported")
	importCmd.Flags().StringP("output", "o", "", "Write the result to a file instead of stdout")
}

func newImportBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Probing"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func runImport(cmd *cobra.Command, args []string) error {
	folder := args[0]
	info, err := os.Stat(folder)
	if err != nil {
		return fmt.Errorf("cannot access folder %s: %w", folder, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", folder)
	}

	paths, err := importer.ListImages(folder, mustGetBool(cmd, "recursive"))
	if err != nil {
		return fmt.Errorf("cannot read folder %s: %w", folder, err)
	}
	if len(paths) == 0 {
		logger.Warn("no image files found", "folder", folder)
		return nil
	}

	var s *editor.Session
	if into := mustGetString(cmd, "into"); into != "" {
		if s, err = readProject(into); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bar := newImportBar(len(paths))
	opts := importer.Options{
		Concurrency: mustGetInt(cmd, "concurrency"),
		OnProgress:  func(done, total int) { bar.Set(done) },
	}
	if mustGetBool(cmd, "dedupe") {
		opts.Dedupe = fingerprint.NewIndex(-1)
	}
	im := importer.New(opts)

	var sources []album.AssetSource
	summary, err := im.Import(ctx, paths, func(batch []album.AssetSource) int {
		if s != nil {
			return s.ImportAssets(batch)
		}
		sources = append(sources, batch...)
		return len(batch)
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("import interrupted: %w", err)
	}
	for _, f := range summary.Failed {
		logger.Warn("skipped", "file", f.Path, "error", f.Err)
	}
	for _, path := range summary.Duplicates {
		logger.Debug("duplicate skipped", "file", path)
	}
	logger.Info("import finished",
		"probed", summary.Probed,
		"accepted", summary.Accepted,
		"duplicates", len(summary.Duplicates),
		"failed", len(summary.Failed))

	output := mustGetString(cmd, "output")
	if s == nil {
		return writeJSON(output, sources)
	}
	if mustGetBool(cmd, "fill") {
		placed, err := fillPages(s, mustGetInt(cmd, "per-page"))
		if err != nil {
			return err
		}
		logger.Info("assets placed", "photos", placed, "pages", len(s.Pages()))
	}
	return writeJSON(output, s.Document(false))
}

// fillPages places unused assets, perPage at a time, on fresh pages and
// arranges each page in an automatic grid. An empty current page is used
// first. It returns the number of photos placed.
func fillPages(s *editor.Session, perPage int) (int, error) {
	if perPage <= 0 {
		return 0, fmt.Errorf("fill with %d photos per page: %w", perPage, editor.ErrInvalidValue)
	}
	var unused []string
	for _, a := range s.Assets() {
		if !a.Used {
			unused = append(unused, a.ID)
		}
	}

	var placed int
	for chunk := range slices.Chunk(unused, perPage) {
		if len(s.CurrentPage().Items) > 0 {
			if _, err := s.AddPage(); err != nil {
				return placed, err
			}
		}
		for _, id := range chunk {
			if _, err := s.PlaceAuto(id, 0); err != nil {
				return placed, err
			}
			placed++
		}
		if err := s.LayoutAuto(); err != nil {
			return placed, err
		}
	}
	return placed, nil
}
