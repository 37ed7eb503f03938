package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	clientapi "github.com/maktab-uz/maktab/internal/client/api"
	"github.com/maktab-uz/maktab/internal/client/auth"
	"github.com/maktab-uz/maktab/internal/client/cli"
	"github.com/maktab-uz/maktab/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	dbPath := flag.String("db", "maktab-client.db", "Path to local database")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]
	ctx := context.Background()

	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Среда выполнения читается из переменных окружения;
	// MAKTAB_API_URL, если задан, отключает перебор кандидатов
	apiClient := clientapi.NewClient(clientapi.EnvProbe{})

	authService, err := auth.NewService(ctx, apiClient, boltStorage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to restore session: %v\n", err)
		os.Exit(1)
	}

	c := cli.New(authService)

	if err := runCommand(ctx, c, apiClient, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, c *cli.Cli, apiClient *clientapi.Client, command string, args []string) error {
	switch command {
	case "login":
		return c.RunLogin(ctx)
	case "logout":
		return c.RunLogout(ctx)
	case "status":
		return c.RunStatus(ctx)
	case "passwd":
		return c.RunPasswd(ctx)
	case "lang":
		return c.RunLang(ctx, args)
	case "seed-admin":
		return c.RunSeedAdmin(ctx, apiClient)
	case "users":
		return c.RunUsers(ctx, apiClient)
	case "register":
		return c.RunRegister(ctx, apiClient, args)
	case "reset-password":
		return c.RunResetPassword(ctx, apiClient, args)
	case "classes":
		return c.RunClasses(ctx, apiClient, args)
	case "subjects":
		return c.RunSubjects(ctx, apiClient, args)
	default:
		cli.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printVersion() {
	fmt.Printf("Maktab Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
