// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: text, markdown, csv or json",
		Value:   "text",
	}
}

// searchCommand searches albums by album or artist name
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Aliases:   []string{"s"},
		Usage:     "Search albums by album or artist name",
		ArgsUsage: "<term>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "scope",
				Usage: "Match against album or artist names (default from config)",
			},
			&cli.StringFlag{
				Name:  "country",
				Usage: "Two-letter storefront code (default from config or locale)",
			},
			formatFlag(),
			&cli.BoolFlag{
				Name:  "choose",
				Usage: "Pick an album interactively and show its tracks",
			},
		},
		Action: r.Search,
	}
}

// tracksCommand shows an album with its songs
func tracksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "tracks",
		Aliases:   []string{"t"},
		Usage:     "Show an album and its songs",
		ArgsUsage: "<album-id>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "album-id"},
		},
		Flags: []cli.Flag{
			formatFlag(),
			&cli.StringFlag{
				Name:  "export",
				Usage: "Write README.md and cover.jpg to this directory instead of printing",
			},
		},
		Action: r.Tracks,
	}
}

// artworkCommand prints, downloads or opens album artwork
func artworkCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "artwork",
		Usage:     "Print the artwork URL of an album",
		ArgsUsage: "<album-id>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "album-id"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the artwork in the default browser",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Download the artwork to this file",
			},
		},
		Action: r.Artwork,
	}
}

// tuiCommand returns the top-level TUI command for interactive search.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive album search",
		Action:  r.TUI,
	}
}

// setupCommand handles first-run setup.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a commented config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Where to write the file (default: XDG config dir)",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// apiCommand handles direct catalog API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the iTunes Search API",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Direct GET, prints the raw response",
				ArgsUsage: "<path>",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				},
				Action: r.APIGet,
			},
		},
	}
}
