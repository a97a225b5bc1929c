package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/desertthunder/tunes/internal/formatter"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
	"github.com/desertthunder/tunes/internal/tasks"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
)

// Search runs one catalog search and prints the ranked albums.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	term := strings.Join(cmd.Args().Slice(), " ")

	scopeName := cmd.String("scope")
	if scopeName == "" {
		scopeName = r.config.Search.Scope
	}
	scope, err := models.ParseScope(scopeName)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	query := models.NewSearchQuery(term, scope)
	if query.IsEmpty() {
		return fmt.Errorf("%w: search term is required", shared.ErrMissingArgument)
	}

	logger := shared.WithLogger(r.logger, "query", query.Text, "scope", query.Scope, "request_id", shared.GenerateID())
	logger.Debug("searching catalog")

	albums, err := r.catalog.SearchAlbums(ctx, query.Text, query.Scope, cmd.String("country"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	ranked := tasks.Rank(albums, query.Text, query.Scope)
	logger.Debug("search returned", "results", len(ranked))

	if cmd.Bool("choose") {
		if len(ranked) == 0 {
			return r.writePlain("No albums found.\n")
		}

		album, err := r.pick(ranked)
		if err != nil {
			return fmt.Errorf("album selection failed: %w", err)
		}
		return r.printDetail(ctx, album, format)
	}

	data, err := formatter.RenderAlbums(format, ranked)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

// Tracks prints an album header followed by its songs, or exports both to a directory.
func (r *Runner) Tracks(ctx context.Context, cmd *cli.Command) error {
	albumID, err := parseAlbumID(cmd.StringArg("album-id"))
	if err != nil {
		return err
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	album, err := r.catalog.LookupAlbum(ctx, albumID)
	if err != nil {
		return fmt.Errorf("album lookup failed: %w", err)
	}

	if dir := cmd.String("export"); dir != "" {
		detail, err := r.fetchDetail(ctx, album)
		if err != nil {
			return err
		}

		result, err := formatter.WriteMarkdownExport(detail, dir)
		if err != nil {
			return err
		}
		for _, w := range result.Warnings {
			r.logger.Warn(w)
		}
		for _, f := range result.Files {
			r.writePlain("✓ %s\n", f)
		}
		return nil
	}

	return r.printDetail(ctx, album, format)
}

// Artwork prints the artwork URL of an album, optionally downloading or opening it.
func (r *Runner) Artwork(ctx context.Context, cmd *cli.Command) error {
	albumID, err := parseAlbumID(cmd.StringArg("album-id"))
	if err != nil {
		return err
	}

	album, err := r.catalog.LookupAlbum(ctx, albumID)
	if err != nil {
		return fmt.Errorf("album lookup failed: %w", err)
	}

	url := album.Artwork()
	if url == "" {
		return fmt.Errorf("%w: album %d has no artwork", shared.ErrInvalidInput, albumID)
	}

	if path := cmd.String("output"); path != "" {
		data, err := formatter.DownloadImage(url)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write artwork: %w", err)
		}
		r.logger.Info("artwork saved", "path", path, "bytes", len(data))
	}

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(url); err != nil {
			return err
		}
	}

	return r.writePlain("%s\n", url)
}

func (r *Runner) fetchDetail(ctx context.Context, album models.Album) (formatter.AlbumDetail, error) {
	tracks, err := r.catalog.FetchTracks(ctx, album.ID)
	if err != nil {
		return formatter.AlbumDetail{}, fmt.Errorf("track lookup failed: %w", err)
	}
	return formatter.AlbumDetail{Album: album, Tracks: tracks}, nil
}

func (r *Runner) printDetail(ctx context.Context, album models.Album, format formatter.Format) error {
	detail, err := r.fetchDetail(ctx, album)
	if err != nil {
		return err
	}

	data, err := formatter.RenderDetail(format, detail)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

func parseAlbumID(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: album id is required", shared.ErrMissingArgument)
	}
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: album id must be a positive number, got %q", shared.ErrInvalidArgument, s)
	}
	return id, nil
}

// pickAlbum shows a [huh.Select] over albums. It needs an interactive terminal.
func pickAlbum(albums []models.Album) (models.Album, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return models.Album{}, fmt.Errorf("inspect stdin: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 {
		return models.Album{}, errors.New("interactive selection requires a terminal; drop --choose and use the tracks command")
	}

	options := lo.Map(albums, func(a models.Album, idx int) huh.Option[int] {
		return huh.NewOption(albumLabel(a), idx)
	})

	var idx int
	err = huh.NewSelect[int]().
		Title("Select an album").
		Description("Type / to filter. Enter shows the album's songs.").
		Options(options...).
		Value(&idx).
		Run()
	if err != nil {
		return models.Album{}, err
	}

	return albums[idx], nil
}

func albumLabel(a models.Album) string {
	label := fmt.Sprintf("%s - %s", a.CollectionName, a.ArtistName)
	if !a.ReleaseDate.IsZero() {
		label = fmt.Sprintf("%s (%d)", label, a.ReleaseDate.Year())
	}
	return label
}
