// Command import loads a directory of markdown posts into the blog database.
// Files keep a stable id, so running it twice does not duplicate posts.
// Stop the server first: it keeps its own copy of the collection and its next
// save would overwrite the imported posts.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"gemblog/internal/app"
	"gemblog/internal/importer"
	"gemblog/internal/logger"
	"gemblog/internal/repository"
	"gemblog/internal/storage"
	"gemblog/internal/utils"
)

func main() {
	dir := flag.String("dir", "posts", "directory containing markdown files")
	dbPath := flag.String("db", "blog.db", "path to the blog database")
	flag.Parse()

	log := logger.New("gemblog-import")

	posts, err := importer.Dir(os.DirFS(*dir), time.Now(), log)
	if err != nil {
		log.Error("read posts", slog.String("dir", *dir), slog.Any("err", err))
		os.Exit(1)
	}

	db, err := utils.InitDatabase(*dbPath)
	if err != nil {
		log.Error("init database", slog.Any("err", err))
		os.Exit(1)
	}

	store := storage.NewPostStore(storage.NewSQLStore(repository.NewEntryRepository(db)), log)
	// the admin password is irrelevant here, nobody logs in
	ctrl := app.NewController(store, "", log)
	added := ctrl.Import(posts)

	log.Info("import finished", slog.Int("found", len(posts)), slog.Int("added", added))
}
