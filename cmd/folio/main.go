// Command folio stages Markdown content in SQLite and publishes it as
// a static site. Ingestion (add-*, rewrite-*, delete-*) and publishing
// (build) are separate commands sharing the staging database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/goliatone/go-logger/glog"
	"github.com/joho/godotenv"
	"github.com/radovskyb/watcher"

	"github.com/tbell/folio/internal/config"
	"github.com/tbell/folio/internal/ingest"
	"github.com/tbell/folio/internal/site"
	"github.com/tbell/folio/internal/store"
)

var configPath = flag.String("config", "", "Path to the site configuration file (default $FOLIO_CONFIG or folio.json)")

func usage() {
	fmt.Fprintf(os.Stderr, `usage: folio [-config file] <command>

Commands:
  init              create the staging database schema
  add-posts         ingest posts that are not staged yet
  add-projects      ingest projects that are not staged yet
  rewrite-posts     resync all posts (archives replaced rows)
  rewrite-projects  resync all projects (archives replaced rows)
  delete-post <slug>     archive one post
  delete-project <slug>  archive one project
  build             render the static site
  watch             rebuild on content, template, or static changes
`)
}

func main() {
	_ = godotenv.Load()
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	path := *configPath
	if path == "" {
		path = os.Getenv("FOLIO_CONFIG")
	}
	if path == "" {
		path = "folio.json"
	}

	conf, err := config.Read(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := glog.NewLogger(
		glog.WithLevel(logLevel(conf.LogLevel)),
		glog.WithLoggerTypeConsole(),
	)

	if err := run(conf, logger, flag.Args()); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func run(conf *config.Config, logger *glog.BaseLogger, args []string) error {
	ctx := context.Background()

	st, err := store.Open(conf.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	rec := ingest.New(st, conf, logger.GetLogger("ingest"))
	builder := site.NewBuilder(conf, st, logger.GetLogger("site"))

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "init":
		return st.Init(ctx)
	case "add-posts":
		return rec.AddNewPosts(ctx, conf.PostsDir())
	case "add-projects":
		return rec.AddNewProjects(ctx, conf.ProjectsDir())
	case "rewrite-posts":
		return rec.RewriteAllPosts(ctx, conf.PostsDir())
	case "rewrite-projects":
		return rec.RewriteAllProjects(ctx, conf.ProjectsDir())
	case "delete-post":
		if len(rest) != 1 {
			return fmt.Errorf("delete-post needs exactly one slug")
		}
		return rec.DeletePost(ctx, rest[0])
	case "delete-project":
		if len(rest) != 1 {
			return fmt.Errorf("delete-project needs exactly one slug")
		}
		return rec.DeleteProject(ctx, rest[0])
	case "build":
		return builder.Build(ctx)
	case "watch":
		return rebuildOnChange(ctx, conf, builder, logger)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// rebuildOnChange runs a full build now and again whenever content,
// templates, or static files change. Builds are never incremental.
func rebuildOnChange(ctx context.Context, conf *config.Config, builder *site.Builder, logger *glog.BaseLogger) error {
	if err := builder.Build(ctx); err != nil {
		return err
	}

	logger.Info("watching for changes",
		"content", conf.ContentDir,
		"templates", conf.TemplatesDir,
		"static", conf.StaticDir)

	w := watcher.New()
	w.SetMaxEvents(1)

	go func() {
		for {
			select {
			case <-w.Event:
				if err := builder.Build(ctx); err != nil {
					logger.Error("rebuild failed", "error", err)
				}
			case err := <-w.Error:
				logger.Error("watch error", "error", err)
			case <-w.Closed:
				return
			}
		}
	}()

	for _, dir := range []string{conf.ContentDir, conf.TemplatesDir, conf.StaticDir} {
		if err := w.AddRecursive(dir); err != nil {
			logger.Warn("not watching", "dir", dir, "error", err)
		}
	}

	return w.Start(200 * time.Millisecond)
}

func logLevel(level string) string {
	switch level {
	case "debug":
		return glog.Debug
	case "warn":
		return glog.Warn
	case "error":
		return glog.Error
	default:
		return glog.Info
	}
}
