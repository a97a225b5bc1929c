// package formatter renders albums and their tracks in various formats (plain text, Markdown, CSV, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
	"github.com/dustin/go-humanize"
)

// Format is an output format accepted by the CLI.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
	CSV      Format = "csv"
	JSON     Format = "json"
)

// ParseFormat converts a --format value into a [Format].
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return Text, nil
	case "markdown", "md":
		return Markdown, nil
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want text, markdown, csv or json)", shared.ErrInvalidFlag, s)
	}
}

// AlbumDetail pairs an album with its songs.
type AlbumDetail struct {
	Album  models.Album   `json:"album"`
	Tracks []models.Track `json:"tracks"`
}

// ReleaseLine renders the release date the way the detail view shows it, e.g. "RELEASED SEPTEMBER 26, 1969".
func ReleaseLine(released time.Time) string {
	if released.IsZero() {
		return ""
	}
	return "RELEASED " + strings.ToUpper(released.UTC().Format("January 2, 2006"))
}

// ReleaseAge renders the time between released and now, e.g. "56 years ago".
func ReleaseAge(released, now time.Time) string {
	if released.IsZero() {
		return ""
	}
	return humanize.RelTime(released, now, "ago", "from now")
}

// CopyrightLine upper-cases the copyright notice.
func CopyrightLine(copyright string) string {
	return strings.ToUpper(strings.TrimSpace(copyright))
}

func releaseYear(a models.Album) string {
	if a.ReleaseDate.IsZero() {
		return ""
	}
	return strconv.Itoa(a.ReleaseDate.UTC().Year())
}

// AlbumsToText renders a numbered list of albums.
func AlbumsToText(albums []models.Album) ([]byte, error) {
	var buf bytes.Buffer

	if len(albums) == 0 {
		buf.WriteString("No albums found.\n")
		return buf.Bytes(), nil
	}

	for i, a := range albums {
		fmt.Fprintf(&buf, "%d. %s - %s", i+1, a.CollectionName, a.ArtistName)
		if year := releaseYear(a); year != "" {
			fmt.Fprintf(&buf, " (%s)", year)
		}
		fmt.Fprintf(&buf, " [%d tracks, id %d]\n", a.TrackCount, a.ID)
	}

	return buf.Bytes(), nil
}

// AlbumsToMarkdown renders albums as a Markdown table.
func AlbumsToMarkdown(albums []models.Album) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("| # | Album | Artist | Year | Tracks | ID |\n")
	buf.WriteString("|---|-------|--------|------|--------|----|\n")
	for i, a := range albums {
		fmt.Fprintf(&buf, "| %d | %s | %s | %s | %d | %d |\n",
			i+1, escapeCell(a.CollectionName), escapeCell(a.ArtistName), releaseYear(a), a.TrackCount, a.ID)
	}

	return buf.Bytes(), nil
}

// AlbumsToCSV renders albums with columns: ID, Album, Artist, Tracks, Released, Artwork, Copyright
func AlbumsToCSV(albums []models.Album) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Album", "Artist", "Tracks", "Released", "Artwork", "Copyright"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, a := range albums {
		released := ""
		if !a.ReleaseDate.IsZero() {
			released = a.ReleaseDate.UTC().Format(time.DateOnly)
		}
		record := []string{
			strconv.FormatInt(a.ID, 10),
			a.CollectionName,
			a.ArtistName,
			strconv.Itoa(a.TrackCount),
			released,
			a.Artwork(),
			a.Copyright,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderAlbums renders a search result list in format f.
func RenderAlbums(f Format, albums []models.Album) ([]byte, error) {
	switch f {
	case Markdown:
		return AlbumsToMarkdown(albums)
	case CSV:
		return AlbumsToCSV(albums)
	case JSON:
		if albums == nil {
			albums = []models.Album{}
		}
		return shared.MarshalJSON(albums, true)
	default:
		return AlbumsToText(albums)
	}
}

// DetailToText renders an album header followed by its numbered track list.
func DetailToText(d AlbumDetail, now time.Time) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n%s\n", d.Album.CollectionName, d.Album.ArtistName)
	if line := ReleaseLine(d.Album.ReleaseDate); line != "" {
		fmt.Fprintf(&buf, "%s (%s)\n", line, ReleaseAge(d.Album.ReleaseDate, now))
	}
	fmt.Fprintf(&buf, "%d tracks\n\n", d.Album.TrackCount)

	width := 0
	for _, t := range d.Tracks {
		width = max(width, len([]rune(t.Name)))
	}

	for i, t := range d.Tracks {
		pad := width - len([]rune(t.Name))
		fmt.Fprintf(&buf, "%2d. %s%s  %s\n", i+1, t.Name, strings.Repeat(" ", pad), shared.FormatDuration(t.DurationSeconds))
	}

	if c := CopyrightLine(d.Album.Copyright); c != "" {
		fmt.Fprintf(&buf, "\n%s\n", c)
	}

	return buf.Bytes(), nil
}

// DetailToMarkdown renders an album and its tracks with an optional cover image
func DetailToMarkdown(d AlbumDetail, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", d.Album.CollectionName)

	if imageFilename != "" {
		fmt.Fprintf(&buf, "![Cover](%s)\n\n", imageFilename)
	}

	fmt.Fprintf(&buf, "**Artist**: %s\n", d.Album.ArtistName)
	if line := ReleaseLine(d.Album.ReleaseDate); line != "" {
		fmt.Fprintf(&buf, "**Released**: %s\n", d.Album.ReleaseDate.UTC().Format("January 2, 2006"))
	}
	fmt.Fprintf(&buf, "**Tracks**: %d\n\n", len(d.Tracks))

	buf.WriteString("## Tracks\n\n")
	for i, t := range d.Tracks {
		fmt.Fprintf(&buf, "%d. %s [%s]\n", i+1, t.Name, shared.FormatDuration(t.DurationSeconds))
	}

	if c := CopyrightLine(d.Album.Copyright); c != "" {
		fmt.Fprintf(&buf, "\n_%s_\n", c)
	}

	return buf.Bytes(), nil
}

// TracksToCSV renders tracks with columns: Number, Name, Duration, Seconds
func TracksToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Number", "Name", "Duration", "Seconds"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, t := range tracks {
		record := []string{
			strconv.Itoa(i + 1),
			t.Name,
			shared.FormatDuration(t.DurationSeconds),
			strconv.Itoa(t.DurationSeconds),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderDetail renders an album detail in format f.
func RenderDetail(f Format, d AlbumDetail) ([]byte, error) {
	if d.Tracks == nil {
		d.Tracks = []models.Track{}
	}

	switch f {
	case Markdown:
		return DetailToMarkdown(d, "")
	case CSV:
		return TracksToCSV(d.Tracks)
	case JSON:
		return shared.MarshalJSON(d, true)
	default:
		return DetailToText(d, time.Now())
	}
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty URL provided", shared.ErrInvalidInput)
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
	Warnings   []string
}

// WriteMarkdownExport writes an album detail to {dir}/README.md and, when the album has artwork,
// downloads it to {dir}/cover.jpg.
//
// Directory name defaults to the album ID. A failed cover download is reported as a warning.
func WriteMarkdownExport(d AlbumDetail, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = strconv.FormatInt(d.Album.ID, 10)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if imageURL := d.Album.Artwork(); imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("failed to download cover image: %v", err))
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := filepath.Join(outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("failed to save cover image: %v", err))
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData, err := DetailToMarkdown(d, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
