package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/campushq/schoolapi/common"
	"github.com/campushq/schoolapi/internal/config"
	"github.com/campushq/schoolapi/modules/auth"
	"github.com/campushq/schoolapi/modules/school"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitRuntimeError = 4
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "schoolctl",
	Short: "CLI for the school management backend",
	Long:  "schoolctl talks to a school management REST backend: login, browse students, teachers, classes, fees and timetables, and pull reports.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(studentsCmd)
	rootCmd.AddCommand(teachersCmd)
	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(feesCmd)
	rootCmd.AddCommand(leavesCmd)
	rootCmd.AddCommand(timetableCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// runtimeErr reports a backend or runtime failure. The error is printed here
// and nil is returned so cobra does not re-map it to a usage error; Run()
// then exits with ExitRuntimeError.
func runtimeErr(err error) error {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	exitCode = ExitRuntimeError
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print schoolctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "schoolctl version %s\n", version)
	},
}

// env bundles everything a command needs: effective config, the auth client,
// the school service, and the stored bearer token (nil when logged out).
type env struct {
	cfg   config.Config
	auth  auth.Client
	svc   school.SchoolService
	token *oauth2.Token
}

func newEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	httpClient := common.NewHTTPClient("schoolctl/"+version, &http.Client{})
	authClient := auth.NewClient(cfg.BaseURL, httpClient)
	schoolClient := school.NewSchoolClient(cfg.BaseURL, httpClient, authClient, school.WithLogger(slog.Default()))

	e := &env{
		cfg:  cfg,
		auth: authClient,
		svc:  school.NewSchoolService(schoolClient),
	}
	if cfg.AccessToken != "" {
		e.token = &oauth2.Token{
			AccessToken:  cfg.AccessToken,
			RefreshToken: cfg.RefreshToken,
			TokenType:    "Bearer",
		}
	}
	return e, nil
}

// requireToken fails the command early when no login is stored.
func (e *env) requireToken() error {
	if e.token == nil {
		return fmt.Errorf("not logged in; run `schoolctl login` first")
	}
	return nil
}

// printJSON renders any value as indented JSON on stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
