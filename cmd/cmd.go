// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// serveCommand runs the HTTP API server
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the task dashboard API server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Address to bind, overrides the config file",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on, overrides the config file",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand prepares local state
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and local database",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the sqlite database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
		},
	}
}

// boardCommand launches the interactive dashboard
func boardCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "board",
		Aliases: []string{"tui"},
		Usage:   "Open the interactive task board",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "server",
				Usage: "API base URL, overrides the config file",
			},
		},
		Action: r.Board,
	}
}

// tasksCommand groups the non-interactive task operations
func tasksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "Manage tasks from the command line",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List tasks, newest first",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
					&cli.StringFlag{
						Name:  "status",
						Usage: "Only show tasks with this status",
					},
				},
				Action: r.TasksList,
			},
			{
				Name:  "add",
				Usage: "Create a task",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "title"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "description",
						Aliases: []string{"d"},
						Usage:   "Longer description",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "development, automation, security, research, content or maintenance",
					},
					&cli.StringFlag{
						Name:  "status",
						Usage: "todo, in-progress or done",
					},
				},
				Action: r.TasksAdd,
			},
			{
				Name:  "done",
				Usage: "Mark a task done",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.TasksDone,
			},
			{
				Name:  "rm",
				Usage: "Delete a task",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.TasksRemove,
			},
			{
				Name:  "export",
				Usage: "Export tasks to csv, markdown, text or json",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format",
						Value:   "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path, stdout when omitted",
					},
				},
				Action: r.TasksExport,
			},
		},
	}
}

// metaCommand fetches watch page metadata
func metaCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "meta",
		Usage: "Fetch title and channel from a watch URL, prints JSON",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "url"},
		},
		Action: r.Meta,
	}
}

// transcriptCommand fetches captions as plain text
func transcriptCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "transcript",
		Usage: "Fetch a transcript from a watch URL",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "url"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Preferred caption language code",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Write the transcript to a file instead of stdout",
			},
		},
		Action: r.Transcript,
	}
}
