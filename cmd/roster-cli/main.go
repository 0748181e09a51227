package main

import (
	"errors"
	"os"
	"strconv"

	"github.com/sagarc03/roster/clientcli"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	cfgFile     string
	profileName string
	server      string
	kindFlag    string
	jsonOutput  bool
	quiet       bool
)

var rootCmd = &cobra.Command{
	Use:     "roster-cli",
	Version: version,
	Short:   "Client for roster servers",
	Long: `roster-cli - Client for roster REST servers

Record commands take the resource kind as their first argument:
  roster-cli list users
  roster-cli get cars 2
  roster-cli create users name="Ann Lee" email=ann@example.com
  roster-cli update users 1 --data '{"name":"Changed"}'
  roster-cli delete cars 1 2

The kind may be left out when --kind, ROSTER_KIND or the profile sets one:
  roster-cli --kind cars get 2

Settings come from flags, then ROSTER_ENDPOINT, ROSTER_KIND and
ROSTER_OUTPUT, then the selected profile (--profile or ROSTER_PROFILE) or
the default profile.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.roster/config.yaml, env: ROSTER_CLIENT_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "profile name (env: ROSTER_PROFILE)")
	rootCmd.PersistentFlags().StringVarP(&server, "server", "s", "", "server URL (default: http://localhost:3000, env: ROSTER_ENDPOINT)")
	rootCmd.PersistentFlags().StringVarP(&kindFlag, "kind", "k", "", "kind used when a command names none (env: ROSTER_KIND)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON (env: ROSTER_OUTPUT=json)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(configureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		_ = getFormatter().FormatError(os.Stderr, err)
		os.Exit(1)
	}
}

// getConfigPath returns the profile file to use.
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if p := clientcli.ConfigPathFromEnv(); p != "" {
		return p
	}
	return clientcli.DefaultConfigPath()
}

// buildConfig merges config from the profile file, env vars, and flags (flags take precedence).
func buildConfig() (*clientcli.Config, error) {
	var configs []*clientcli.Config

	name := profileName
	if name == "" {
		name = clientcli.ProfileFromEnv()
	}

	// 1. Load from config file
	configPath := getConfigPath()
	if configPath != "" {
		file, err := clientcli.LoadConfigFile(configPath)
		switch {
		case err == nil:
			profile, profileErr := file.Profile(name)
			if profileErr != nil {
				// A missing default is fine, a missing named profile is not
				if name != "" || !errors.Is(profileErr, clientcli.ErrNoProfiles) {
					return nil, profileErr
				}
			} else {
				configs = append(configs, clientcli.ConfigFromProfile(profile))
			}
		case name != "":
			return nil, err
		case cfgFile != "":
			// Only error if user explicitly specified a config file
			return nil, err
		}
	}

	// 2. Load from environment variables
	configs = append(configs, clientcli.ConfigFromEnv())

	// 3. Load from flags
	flags := &clientcli.Config{Endpoint: server, Kind: kindFlag}
	if jsonOutput {
		flags.Output = clientcli.OutputJSON
	}
	configs = append(configs, flags)

	return clientcli.MergeConfig(configs...), nil
}

// getFormatter returns a formatter from flags alone, for commands that do
// not talk to a server.
func getFormatter() clientcli.Formatter {
	return clientcli.NewFormatter(jsonOutput, quiet)
}

// session is a client together with the config it was built from.
type session struct {
	client *clientcli.Client
	config *clientcli.Config
}

func newSession() (*session, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}

	client, err := clientcli.New(cfg)
	if err != nil {
		return nil, err
	}
	return &session{client: client, config: cfg}, nil
}

// formatter follows the merged output setting.
func (s *session) formatter() clientcli.Formatter {
	return clientcli.NewFormatter(s.config.JSONOutput(), quiet)
}

// exitError is returned when we want to exit with a specific code
// but the failure has already been reported.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return "exit status " + strconv.Itoa(e.code)
}
