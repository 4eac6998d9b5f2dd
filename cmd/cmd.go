// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format (text, json, csv, markdown)",
		Value:   "text",
	}
}

// setupCommand handles setup operations for the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create config.toml if missing, initialize database and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

func usernameFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "username",
		Aliases:  []string{"u"},
		Usage:    "Account username",
		Required: true,
	}
}

func passwordFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:     "password",
		Aliases:  []string{"p"},
		Usage:    usage,
		Sources:  cli.EnvVars("ALGOX_PASSWORD"),
		Required: true,
	}
}

func emailFlag() cli.Flag {
	return &cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true}
}

// authCommand handles account and session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage your account and session",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create an account",
				Flags: []cli.Flag{
					usernameFlag(),
					passwordFlag("Account password"),
					emailFlag(),
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "login",
				Usage:  "Log in and store the session",
				Flags:  []cli.Flag{usernameFlag(), passwordFlag("Account password")},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Forget the stored session",
				Action: r.AuthLogout,
			},
			{
				Name:   "forgot",
				Usage:  "Request a password reset token by email",
				Flags:  []cli.Flag{usernameFlag()},
				Action: r.AuthForgot,
			},
			{
				Name:  "reset",
				Usage: "Set a new password with a reset token",
				Flags: []cli.Flag{
					usernameFlag(),
					emailFlag(),
					&cli.StringFlag{Name: "token", Aliases: []string{"t"}, Usage: "Reset token from the email", Required: true},
					passwordFlag("New password"),
					&cli.StringFlag{Name: "confirm", Usage: "New password again", Sources: cli.EnvVars("ALGOX_PASSWORD_CONFIRM"), Required: true},
				},
				Action: r.AuthReset,
			},
			{
				Name:   "status",
				Usage:  "Show the stored session",
				Action: r.AuthStatus,
			},
		},
	}
}

// catalogCommand handles read operations against the catalog
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "catalog",
		Aliases: []string{"cat"},
		Usage:   "Browse and search algorithms",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List every algorithm",
				Flags:  []cli.Flag{formatFlag()},
				Action: r.CatalogList,
			},
			{
				Name:   "mine",
				Usage:  "List the algorithms you submitted",
				Flags:  []cli.Flag{formatFlag()},
				Action: r.CatalogMine,
			},
			{
				Name:  "search",
				Usage: "Search algorithms; every filter is optional",
				Flags: []cli.Flag{
					formatFlag(),
					&cli.StringFlag{Name: "title", Usage: "Title contains"},
					&cli.StringFlag{Name: "topic", Usage: "Topic contains"},
					&cli.StringFlag{Name: "lang", Aliases: []string{"l"}, Usage: "Programming language"},
					&cli.StringFlag{Name: "user", Usage: "Owner user id"},
					&cli.StringFlag{Name: "id", Usage: "Algorithm id"},
					&cli.StringFlag{Name: "sort", Aliases: []string{"s"}, Usage: "Sort order (newest, most_popular)"},
				},
				Action: r.CatalogSearch,
			},
			{
				Name:  "show",
				Usage: "Show one algorithm with its code",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{formatFlag()},
				Action: r.CatalogShow,
			},
			{
				Name:  "languages",
				Usage: "List accepted programming languages",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.CatalogLanguages,
			},
		},
	}
}

// submitCommand creates a catalog entry
func submitCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "submit",
		Usage: "Submit a new algorithm",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Usage: "Algorithm title"},
			&cli.StringFlag{Name: "topic", Usage: "Topic, e.g. graphs"},
			&cli.StringFlag{Name: "lang", Aliases: []string{"l"}, Usage: "Programming language"},
			&cli.StringFlag{Name: "code", Usage: "Source code"},
			&cli.StringFlag{Name: "code-file", Usage: "Read source code from a file"},
			&cli.BoolFlag{Name: "list-languages", Usage: "List accepted programming languages and exit"},
			&cli.BoolFlag{Name: "json", Usage: "Output raw JSON with --list-languages"},
		},
		Action: r.Submit,
	}
}

// exportCommand writes algorithms to disk
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export algorithms to files, one per algorithm",
		ArgsUsage: "[id...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "mine", Usage: "Export the algorithms you submitted"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output directory (default: algox_export_<epoch>)"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "File format (text writes raw source, json, markdown)", Value: "text"},
			&cli.IntFlag{Name: "workers", Usage: "Concurrent downloads (max 10)", Value: 4},
			&cli.FloatFlag{Name: "rate", Usage: "Requests per second", Value: 5},
		},
		Action: r.Export,
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the catalog service",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output compact JSON"},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for browsing the catalog.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive catalog browser",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-file", Usage: "Where to write logs while the TUI runs", Value: "./tmp/algox-tui.log"},
		},
		Action: r.TUI,
	}
}
