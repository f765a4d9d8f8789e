package cmd

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// repoSlug is the GitHub repository releases are published to
const repoSlug = "s0up4200/rallyctl"

var checkLatest bool

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipClientAnnotation: "true"},
	RunE:        runVersion,
}

// selfUpdateCmd represents the self-update command
var selfUpdateCmd = &cobra.Command{
	Use:         "self-update",
	Short:       "Update rallyctl to the latest release",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipClientAnnotation: "true"},
	RunE:        runSelfUpdate,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(selfUpdateCmd)

	versionCmd.Flags().BoolVar(&checkLatest, "check", false, "check for a newer release")
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "rallyctl %s (built %s)\n", version, buildTime)

	if !checkLatest {
		return nil
	}

	current, err := releaseVersion(version)
	if err != nil {
		return err
	}

	latest, found, err := selfupdate.DetectLatest(cmd.Context(), selfupdate.ParseSlug(repoSlug))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found || latest.LessOrEqual(current.String()) {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ You are running the latest version")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "A newer version is available: %s (run 'rallyctl self-update')\n", latest.Version())
	return nil
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	current, err := releaseVersion(version)
	if err != nil {
		return err
	}

	latest, found, err := selfupdate.DetectLatest(cmd.Context(), selfupdate.ParseSlug(repoSlug))
	if err != nil {
		return fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", repoSlug)
	}
	if latest.LessOrEqual(current.String()) {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Already up to date (%s)\n", current)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	if err := selfupdate.UpdateTo(cmd.Context(), latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated rallyctl %s -> %s\n", current, latest.Version())
	return nil
}

// releaseVersion parses a build version such as "v1.2.3". Development
// builds cannot be compared and are rejected.
func releaseVersion(v string) (semver.Version, error) {
	parsed, err := semver.ParseTolerant(v)
	if err != nil {
		return semver.Version{}, fmt.Errorf("cannot compare development build %q against releases", v)
	}
	return parsed, nil
}
