package cmd

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Rizky28eka/portfolio/internal/config"
	"github.com/Rizky28eka/portfolio/internal/content"
	"github.com/Rizky28eka/portfolio/internal/logger"
	"github.com/Rizky28eka/portfolio/internal/render"
	"github.com/Rizky28eka/portfolio/internal/search"
	"github.com/Rizky28eka/portfolio/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from content, layouts, and static assets",
	Long: `The build command loads the site.yaml configuration registry,
validates every content entry against its collection schema, and
generates the site in the configured output directory (default
'./public/'): the home page, section listings, entry pages, tag pages,
the search shell, the search index, and copied static assets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(&appConfig, log)
	},
}

func runBuild(cfg *config.Config, log *logger.Logger) error {
	// Registry problems are fatal: every page depends on it.
	reg, err := site.Load(cfg.SiteFile)
	if err != nil {
		return err
	}

	lib, report := content.LoadLibrary(cfg.ContentDir)

	for _, col := range lib.All() {
		for _, entry := range col.All() {
			if entry.LegacyDate {
				log.Warn("legacy comma-separated date format, prefer YYYY-MM-DD",
					"file", entry.File, "date", entry.Date)
			}
		}
	}

	// Entry problems are reported in aggregate so authors fix
	// everything in one pass, then the build fails.
	if !report.OK() {
		for _, v := range report.Violations {
			log.Error("schema violation", "file", v.File, "field", v.Field, "reason", v.Err.Error())
		}

		return report.Err()
	}

	if cfg.Preview {
		log.Warn("preview mode: draft entries will be rendered")
	}

	log.Info("content loaded",
		"blog", lib.Blog.Len(),
		"projects", lib.Projects.Len(),
		"work", lib.Work.Len(),
		"education", lib.Education.Len(),
	)

	if err := os.RemoveAll(cfg.OutputDir); err != nil {
		return errors.Wrapf(err, "failed to remove output directory %s", cfg.OutputDir)
	}

	if err := os.MkdirAll(cfg.OutputDir, os.ModePerm); err != nil {
		return errors.Wrapf(err, "failed to create output directory %s", cfg.OutputDir)
	}

	if _, err := os.Stat(cfg.StaticDir); !os.IsNotExist(err) {
		if err := copyDirContents(cfg.StaticDir, cfg.OutputDir); err != nil {
			return errors.Wrap(err, "failed to copy static assets")
		}
		log.Debug("static assets copied", "from", cfg.StaticDir)
	}

	renderer, err := render.New(reg, cfg, log)
	if err != nil {
		return err
	}

	if err := renderer.Site(lib); err != nil {
		return err
	}

	records := search.BuildIndex(lib)
	if err := search.WriteIndex(cfg.OutputDir, records); err != nil {
		return err
	}

	log.Info("build completed", "output", cfg.OutputDir, "searchRecords", len(records))

	return nil
}

// copyDirContents recursively copies contents from src to dst.
func copyDirContents(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return errors.Wrapf(err, "failed to get relative path for %s", path)
		}
		dstPath := filepath.Join(dst, relPath)

		if d.IsDir() {
			if err := os.MkdirAll(dstPath, os.ModePerm); err != nil {
				return errors.Wrapf(err, "failed to create directory %s", dstPath)
			}
			return nil
		}

		return copyFile(path, dstPath)
	})
}

// copyFile copies a single file from srcFile to dstFile.
func copyFile(srcFile, dstFile string) error {
	srcF, err := os.Open(srcFile)
	if err != nil {
		return errors.Wrapf(err, "failed to open source file %s", srcFile)
	}
	defer srcF.Close()

	if err := os.MkdirAll(filepath.Dir(dstFile), os.ModePerm); err != nil {
		return errors.Wrapf(err, "failed to create destination directory for %s", dstFile)
	}

	dstF, err := os.Create(dstFile)
	if err != nil {
		return errors.Wrapf(err, "failed to create destination file %s", dstFile)
	}
	defer dstF.Close()

	if _, err := io.Copy(dstF, srcF); err != nil {
		return errors.Wrapf(err, "failed to copy %s to %s", srcFile, dstFile)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
