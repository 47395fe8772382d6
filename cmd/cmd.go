// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
	}
}

// menuCommand runs the interactive numbered menu (also the default action).
func menuCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "menu",
		Usage: "Interactive menu: video info, mix playlist, playlist export, mix playlists from a spreadsheet",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "repeat",
				Aliases: []string{"r"},
				Usage:   "Show the menu again after each operation until an empty choice or q",
			},
		},
		Action: r.Menu,
	}
}

// videoCommand handles single video lookups
func videoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "video",
		Aliases: []string{"v"},
		Usage:   "Video operations",
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "Show title, channel, statistics and duration of a video",
				ArgsUsage: "<url>",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "url"},
				},
				Flags:  jsonFlags(),
				Action: r.VideoInfo,
			},
		},
	}
}

// mixCommand handles mix playlist operations
func mixCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "mix",
		Usage: "Mix playlist operations",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "List the mix playlist seeded by a video",
				ArgsUsage: "<url>",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "url"},
				},
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "max",
						Usage: "Maximum number of videos in the mix (default from config)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Also export the mix to this spreadsheet",
					},
				}, jsonFlags()...),
				Action: r.MixGet,
			},
			{
				Name:      "batch",
				Usage:     "Fetch the mix of every video in a spreadsheet's 'Video ID' column",
				ArgsUsage: "<xlsx>",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "max",
						Usage: "Maximum number of videos per mix (default from config)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output spreadsheet (default from config)",
					},
				},
				Action: r.MixBatch,
			},
		},
	}
}

// playlistCommand handles playlist export and playlist changes
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:      "export",
				Usage:     "Export playlist videos with statistics",
				ArgsUsage: "<url>",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "url"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "max",
						Usage: "Maximum number of videos to export (default from config)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file (default from config)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: xlsx, csv, markdown, txt or json",
						Value:   "xlsx",
					},
				},
				Action: r.PlaylistExport,
			},
			{
				Name:      "add",
				Usage:     "Add the videos of a spreadsheet to your playlist, creating it when missing",
				ArgsUsage: "[xlsx]",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "title",
						Usage: "Playlist title (default from config)",
					},
				},
				Action: r.PlaylistAdd,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage YouTube OAuth authorization",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authorize with your Google account and save the token",
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check the saved token",
				Action: r.AuthStatus,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write the default configuration file",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the latest migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// historyCommand lists what earlier runs recorded in the local database
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recorded exports and cached videos",
		Commands: []*cli.Command{
			{
				Name:  "exports",
				Usage: "List written exports, newest first",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of exports to list",
						Value: 20,
					},
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Filter by kind: playlist, mix or mix_batch",
					},
				}, jsonFlags()...),
				Action: r.HistoryExports,
			},
			{
				Name:  "videos",
				Usage: "List cached videos",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of videos to list",
						Value: 50,
					},
					&cli.StringFlag{
						Name:  "channel",
						Usage: "Filter by channel ID",
					},
				}, jsonFlags()...),
				Action: r.HistoryVideos,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal UI",
		Action:  r.TUI,
	}
}
