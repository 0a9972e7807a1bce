// Package main provides the command-line entry point for the MovieHub client.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"moviehub/config"
	"moviehub/database"
	"moviehub/models"
	"moviehub/services"
	"moviehub/session"
	"moviehub/stubserver"
	"moviehub/viewmodel"
)

// App wires the client-side components behind the CLI commands
type App struct {
	cfg    *config.Config
	store  *session.Store
	client *services.Client
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if fault, ok := services.AsFault(err); ok {
			fmt.Fprintln(os.Stderr, fault.UserMessage())
			log.Printf("Command failed: %v", err)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		printUsage()
		return fmt.Errorf("missing command")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store := session.NewStore(cfg.SessionFile)
	if err := store.Load(); err != nil {
		log.Printf("Warning: could not load session: %v", err)
	}

	client := services.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, store)
	client.OnSessionExpired(func() {
		fmt.Fprintln(os.Stderr, "Your session has expired. Please log in again.")
	})

	app := &App{cfg: cfg, store: store, client: client}

	command, rest := args[0], args[1:]
	switch command {
	case "login":
		return app.loginCmd(rest)
	case "register":
		return app.registerCmd(rest)
	case "logout":
		app.store.Logout()
		fmt.Println("Logged out")
		return nil
	case "whoami":
		return app.whoamiCmd()
	case "movies":
		return app.browseCmd(models.ContentTypeMovie, rest)
	case "series":
		return app.browseCmd(models.ContentTypeSeries, rest)
	case "detail":
		return app.detailCmd(rest)
	case "rate":
		return app.rateCmd(rest)
	case "review":
		return app.reviewCmd(rest)
	case "review-delete":
		return app.reviewDeleteCmd(rest)
	case "favorite":
		return app.favoriteCmd(rest)
	case "favorites":
		return app.favoritesCmd()
	case "admin-add", "admin-update":
		return app.adminUpsertCmd(command, rest)
	case "admin-delete":
		return app.adminDeleteCmd(rest)
	case "stub":
		return runStub(cfg.Stub)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: moviehub <command> [flags]

Commands:
  login, register, logout, whoami    manage the session
  movies, series                     browse the catalog
  detail                             show one item with reviews and ratings
  rate, review, review-delete        rate and review content
  favorite, favorites                manage favorites
  admin-add, admin-update,           manage the catalog (admin)
  admin-delete
  stub                               run the local stub backend`)
}

func (app *App) loginCmd(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	auth, err := app.client.Login(context.Background(), models.Credentials{
		Username: *username,
		Password: *password,
	})
	if err != nil {
		return err
	}
	if err := app.store.Login(*auth); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", auth.Username, auth.Role)
	return nil
}

func (app *App) registerCmd(args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	email := fs.String("e", "", "email (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	auth, err := app.client.Register(context.Background(), models.Registration{
		Username: *username,
		Password: *password,
		Email:    *email,
	})
	if err != nil {
		return err
	}
	if err := app.store.Login(*auth); err != nil {
		return err
	}
	fmt.Printf("Registered and logged in as %s\n", auth.Username)
	return nil
}

func (app *App) whoamiCmd() error {
	user := app.store.Current()
	if user == nil {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("%s (%s)\n", user.Username, user.Role)
	return nil
}

func (app *App) browseCmd(t models.ContentType, args []string) error {
	fs := flag.NewFlagSet(string(t), flag.ExitOnError)
	search := fs.String("search", "", "title search term")
	genre := fs.String("genre", "", "genre filter")
	year := fs.Int("year", 0, "release year filter")
	sortKey := fs.String("sort", "title", "sort key: title, releaseDate, rating")
	order := fs.String("order", "asc", "sort order: asc, desc")
	if err := fs.Parse(args); err != nil {
		return err
	}

	vm := viewmodel.NewContentViewModel(app.client)
	vm.SetSort(viewmodel.SortKey(*sortKey), viewmodel.SortDirection(*order))
	vm.SetFilter(*genre, *year)

	ctx := context.Background()
	var err error
	if *search != "" {
		if err = vm.Load(ctx, t); err == nil {
			err = vm.Search(ctx, *search)
		}
	} else {
		err = vm.Load(ctx, t)
	}
	if err != nil {
		return err
	}

	items := vm.View()
	if len(items) == 0 {
		fmt.Println("No results")
		return nil
	}
	for _, item := range items {
		fmt.Println(formatContentLine(&item))
	}
	return nil
}

// formatContentLine renders one catalog row for terminal output
func formatContentLine(item *models.ContentItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%4d  %s", item.ID, item.Title)
	if year := item.ReleaseYear(); year != 0 {
		fmt.Fprintf(&b, " (%d)", year)
	}
	if item.Genre != "" {
		fmt.Fprintf(&b, "  [%s]", item.Genre)
	}
	if value, ok := item.RatingValue(); ok {
		fmt.Fprintf(&b, "  %.1f/10", value)
	} else {
		b.WriteString("  unrated")
	}
	return b.String()
}

func parseTypeFlag(fs *flag.FlagSet, args []string) (models.ContentType, error) {
	typeName := fs.String("type", "movie", "content type: movie or series")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	return models.ParseContentType(*typeName)
}

func (app *App) detailCmd(args []string) error {
	fs := flag.NewFlagSet("detail", flag.ExitOnError)
	id := fs.Int("id", 0, "content id")
	t, err := parseTypeFlag(fs, args)
	if err != nil {
		return err
	}

	vm := viewmodel.NewDetailViewModel(app.client, app.store)
	if err := vm.Load(context.Background(), *id, t); err != nil {
		return err
	}

	item := vm.Item()
	fmt.Printf("%s\n", item.Title)
	if item.Description != "" {
		fmt.Println(item.Description)
	}
	agg := vm.Rating()
	if agg.RatingCount > 0 {
		fmt.Printf("Rating: %.1f/10 (%d ratings)\n", agg.AverageRating, agg.RatingCount)
	} else {
		fmt.Println("Rating: none yet")
	}
	if score := vm.UserScore(); score > 0 {
		fmt.Printf("Your rating: %d/10\n", score)
	}
	if vm.IsFavorite() {
		fmt.Println("In your favorites")
	}

	reviews := vm.Reviews()
	fmt.Printf("\nReviews (%d):\n", len(reviews))
	for _, review := range reviews {
		fmt.Printf("  #%d %s: %s\n", review.ID, review.AuthorName(), review.Content)
	}

	facets := vm.Facets()
	if facets.Any() {
		fmt.Fprintln(os.Stderr, "\nSome sections failed to load:")
		for name, err := range map[string]error{
			"reviews":     facets.Reviews,
			"rating":      facets.Rating,
			"your rating": facets.UserRating,
			"favorite":    facets.Favorite,
		} {
			if err != nil {
				fmt.Fprintf(os.Stderr, "  %s: %v\n", name, err)
			}
		}
	}
	return nil
}

func (app *App) rateCmd(args []string) error {
	fs := flag.NewFlagSet("rate", flag.ExitOnError)
	id := fs.Int("id", 0, "content id")
	score := fs.Int("score", 0, "score from 1 to 10")
	t, err := parseTypeFlag(fs, args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	vm := viewmodel.NewDetailViewModel(app.client, app.store)
	if err := vm.Load(ctx, *id, t); err != nil {
		return err
	}
	if err := vm.SubmitRating(ctx, *score); err != nil {
		return err
	}
	agg := vm.Rating()
	fmt.Printf("Rated %d/10; average is now %.1f (%d ratings)\n",
		*score, agg.AverageRating, agg.RatingCount)
	return nil
}

func (app *App) reviewCmd(args []string) error {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	id := fs.Int("id", 0, "content id")
	text := fs.String("text", "", "review text")
	t, err := parseTypeFlag(fs, args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	vm := viewmodel.NewDetailViewModel(app.client, app.store)
	if err := vm.Load(ctx, *id, t); err != nil {
		return err
	}
	if err := vm.SubmitReview(ctx, *text); err != nil {
		return err
	}
	fmt.Println("Review posted")
	return nil
}

func (app *App) reviewDeleteCmd(args []string) error {
	fs := flag.NewFlagSet("review-delete", flag.ExitOnError)
	id := fs.Int("id", 0, "content id")
	reviewID := fs.Int("review", 0, "review id")
	t, err := parseTypeFlag(fs, args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	vm := viewmodel.NewDetailViewModel(app.client, app.store)
	if err := vm.Load(ctx, *id, t); err != nil {
		return err
	}
	if err := vm.DeleteReview(ctx, *reviewID); err != nil {
		return err
	}
	fmt.Println("Review deleted")
	return nil
}

func (app *App) favoriteCmd(args []string) error {
	fs := flag.NewFlagSet("favorite", flag.ExitOnError)
	id := fs.Int("id", 0, "content id")
	t, err := parseTypeFlag(fs, args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	vm := viewmodel.NewDetailViewModel(app.client, app.store)
	if err := vm.Load(ctx, *id, t); err != nil {
		return err
	}
	if err := vm.ToggleFavorite(ctx); err != nil {
		return err
	}
	if vm.IsFavorite() {
		fmt.Println("Added to favorites")
	} else {
		fmt.Println("Removed from favorites")
	}
	return nil
}

func (app *App) favoritesCmd() error {
	vm := viewmodel.NewFavoritesViewModel(app.client, app.store)
	if err := vm.Load(context.Background()); err != nil {
		return err
	}

	movies, series := vm.Movies(), vm.Series()
	if len(movies) == 0 && len(series) == 0 {
		fmt.Println("No favorites yet")
		return nil
	}
	if len(movies) > 0 {
		fmt.Println("Movies:")
		for _, item := range movies {
			fmt.Println(formatContentLine(&item))
		}
	}
	if len(series) > 0 {
		fmt.Println("Series:")
		for _, item := range series {
			fmt.Println(formatContentLine(&item))
		}
	}
	return nil
}

func (app *App) adminUpsertCmd(command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	id := fs.Int("id", 0, "content id (update only)")
	title := fs.String("title", "", "title")
	description := fs.String("description", "", "description")
	genre := fs.String("genre", "", "comma-separated genres")
	releaseDate := fs.String("release", "", "release date (YYYY-MM-DD)")
	poster := fs.String("poster", "", "poster URL")
	director := fs.String("director", "", "director (movies)")
	duration := fs.Int("duration", 0, "duration in minutes (movies)")
	seasons := fs.Int("seasons", 0, "season count (series)")
	episodes := fs.Int("episodes", 0, "episode count (series)")
	status := fs.String("status", "", "series status: Ongoing, Completed, Cancelled")
	t, err := parseTypeFlag(fs, args)
	if err != nil {
		return err
	}

	item := models.ContentItem{
		Type:        t,
		Title:       *title,
		Description: *description,
		Genre:       *genre,
		ReleaseDate: *releaseDate,
		PosterURL:   *poster,
		Director:    *director,
		Duration:    *duration,
		Seasons:     *seasons,
		Episodes:    *episodes,
		Status:      models.SeriesStatus(*status),
	}

	ctx := context.Background()
	if command == "admin-update" {
		if err := app.client.UpdateContent(ctx, t, *id, &item); err != nil {
			return err
		}
		fmt.Printf("Updated %s %d\n", t, *id)
		return nil
	}

	created, err := app.client.CreateContent(ctx, t, &item)
	if err != nil {
		return err
	}
	fmt.Printf("Created %s %d: %s\n", t, created.ID, created.Title)
	return nil
}

func (app *App) adminDeleteCmd(args []string) error {
	fs := flag.NewFlagSet("admin-delete", flag.ExitOnError)
	id := fs.Int("id", 0, "content id")
	t, err := parseTypeFlag(fs, args)
	if err != nil {
		return err
	}

	if err := app.client.DeleteContent(context.Background(), t, *id); err != nil {
		return err
	}
	fmt.Printf("Deleted %s %d\n", t, *id)
	return nil
}

// runStub starts the local stub backend and blocks
func runStub(cfg config.StubConfig) error {
	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if err := db.InitSchema(); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      stubserver.NewServer(db, cfg.JWTSecret).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	log.Printf("Stub backend listening on %s", cfg.Addr)
	return server.ListenAndServe()
}
