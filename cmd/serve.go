package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var serverPort int

// debounceDuration batches bursts of editor writes into one rebuild.
const debounceDuration = 500 * time.Millisecond

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and rebuilds on changes",
	Long: `The serve command performs an initial build, then starts a local
web server over the output directory. It watches the content, layouts,
and static directories plus site.yaml, and rebuilds when they change.
This is a local preview tool, not a production server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runBuild(&appConfig, log); err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}
		log.Info("initial build successful")

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer watcher.Close()

		go func() {
			var buildTimer *time.Timer

			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return
					}

					if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
						!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
						continue
					}

					log.Debug("change detected", "path", event.Name, "op", event.Op.String())

					// New subdirectories are not watched automatically.
					if event.Has(fsnotify.Create) && isDir(event.Name) {
						if err := watcher.Add(event.Name); err != nil {
							log.Error("failed to watch new directory", "path", event.Name, "error", err)
						}
					}

					if buildTimer != nil {
						buildTimer.Stop()
					}
					buildTimer = time.AfterFunc(debounceDuration, func() {
						log.Info("rebuilding site")
						if err := runBuild(&appConfig, log); err != nil {
							log.Error("rebuild failed", "error", err)
						} else {
							log.Info("site rebuilt")
						}
					})
				case err, ok := <-watcher.Errors:
					if !ok {
						return
					}
					log.Error("watcher error", "error", err)
				}
			}
		}()

		pathsToWatch := []string{
			appConfig.ContentDir,
			appConfig.LayoutsDir,
			appConfig.StaticDir,
			appConfig.SiteFile,
		}

		for _, rootPath := range pathsToWatch {
			if _, statErr := os.Stat(rootPath); os.IsNotExist(statErr) {
				log.Debug("path not found, not watching", "path", rootPath)
				continue
			}

			if !isDir(rootPath) {
				if err := watcher.Add(rootPath); err != nil {
					log.Error("failed to watch", "path", rootPath, "error", err)
				}
				continue
			}

			err = filepath.WalkDir(rootPath, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					log.Error("error walking for watch setup", "path", path, "error", err)
					return nil
				}
				if d.IsDir() {
					if watchErr := watcher.Add(path); watchErr != nil {
						log.Error("failed to watch", "path", path, "error", watchErr)
					}
				}
				return nil
			})
			if err != nil {
				log.Error("watch setup failed", "path", rootPath, "error", err)
			}
		}

		serverAddr := fmt.Sprintf(":%d", serverPort)
		log.Info("serving site", "dir", appConfig.OutputDir, "url", "http://localhost"+serverAddr)

		fileServer := http.FileServer(http.Dir(appConfig.OutputDir))
		http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
				_, err := os.Stat(filepath.Join(appConfig.OutputDir, r.URL.Path, "index.html"))
				if os.IsNotExist(err) {
					http.NotFound(w, r)
					return
				}
			}
			// No caching while iterating on content locally.
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
			fileServer.ServeHTTP(w, r)
		})

		return http.ListenAndServe(serverAddr, nil) // #nosec G114 -- local preview server
	},
}

func isDir(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}

	return fileInfo.IsDir()
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
