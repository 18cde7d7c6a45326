package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/estelle11976/Azure-Websites-Migration-Tool/internal/config"
)

// executeRootCmd runs the cobra root command with the given args and captures stdout/stderr.
func executeRootCmd(t *testing.T, args ...string) (stdout string, stderr string, err error) {
	t.Helper()

	// Cobra commands are global singletons in this package; avoid parallel execution.
	resetFlags(rootCmd)
	isInteractive = func() bool { return false }
	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)

	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(errBuf)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)

	err = rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

// resetFlags restores every flag of the command tree to its default so values do not
// leak between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// useMemFs isolates config, targets and credentials in an in-memory filesystem.
func useMemFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	t.Cleanup(config.Override(fs, "/home/tester/.azmigrate"))
	return fs
}

// TestCLI_HelpSmoke verifies that the CLI command tree is wired and can render help.
func TestCLI_HelpSmoke(t *testing.T) {
	stdout, _, err := executeRootCmd(t, "--help")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if !strings.Contains(stdout, "Usage:") || !strings.Contains(stdout, "azmigrate [command]") {
		t.Fatalf("expected help output to include usage for azmigrate, got: %q", stdout)
	}
	if !strings.Contains(stdout, "publish-settings") || !strings.Contains(stdout, "targets") {
		t.Fatalf("expected help output to list subcommands, got: %q", stdout)
	}
}

// TestCLI_SubcommandHelpSmoke verifies key subcommands can render help.
func TestCLI_SubcommandHelpSmoke(t *testing.T) {
	cases := []struct {
		name        string
		args        []string
		wantSubstrs []string
	}{
		{"sites_help", []string{"publish-settings", "sites", "--help"}, []string{"--file"}},
		{"show_help", []string{"publish-settings", "show", "--help"}, []string{"--site", "--show-password"}},
		{"import_help", []string{"ps", "import", "--help"}, []string{"--on_conflict", "--dry_run"}},
		{"targets_ls_help", []string{"targets", "ls", "--help"}, []string{"ls"}},
		{"targets_login_help", []string{"targets", "login", "--help"}, []string{"--password-stdin"}},
		{"targets_rm_help", []string{"targets", "rm", "--help"}, []string{"rm"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			stdout, _, err := executeRootCmd(t, tc.args...)
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			for _, sub := range tc.wantSubstrs {
				if !strings.Contains(strings.ToLower(stdout), strings.ToLower(sub)) {
					t.Fatalf("expected help output to contain %q, got: %q", sub, stdout)
				}
			}
		})
	}
}
