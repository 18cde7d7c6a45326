package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/estelle11976/Azure-Websites-Migration-Tool/internal/config"
	"github.com/estelle11976/Azure-Websites-Migration-Tool/internal/ui"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Manage imported deployment targets",
}

var targetsLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List deployment targets",
	Args:    cobra.NoArgs,
	RunE:    runTargetsLs,
}

var targetsLoginCmd = &cobra.Command{
	Use:   "login <name>",
	Short: "Store the publish credentials of a target",
	Args:  cobra.ExactArgs(1),
	RunE:  runTargetsLogin,
}

var targetsRmCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove"},
	Short:   "Remove a target and its stored credentials",
	Args:    cobra.ExactArgs(1),
	RunE:    runTargetsRm,
}

func init() {
	rootCmd.AddCommand(targetsCmd)
	targetsCmd.AddCommand(targetsLsCmd, targetsLoginCmd, targetsRmCmd)

	targetsLoginCmd.Flags().String("username", "", "Publish user name (default: the imported user)")
	targetsLoginCmd.Flags().Bool("password-stdin", false, "Read the password from stdin instead of prompting")
}

type targetRow struct {
	Name         string `json:"name"`
	SiteName     string `json:"site_name"`
	ComputerName string `json:"computer_name"`
	Username     string `json:"username"`
	AuthType     string `json:"auth_type"`
	AgentType    string `json:"agent_type"`
	Databases    int    `json:"databases"`
	Credentials  bool   `json:"credentials"`
}

func runTargetsLs(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	targets, err := config.LoadTargets()
	if err != nil {
		return err
	}
	credentials, err := config.LoadCredentials()
	if err != nil {
		return err
	}

	rows := make([]targetRow, 0, len(targets.Targets))
	for name, t := range targets.Targets {
		_, hasCredentials := credentials.Credentials[t.ID]
		rows = append(rows, targetRow{
			Name:         name,
			SiteName:     t.SiteName,
			ComputerName: t.ComputerName,
			Username:     t.Username,
			AuthType:     t.AuthType,
			AgentType:    t.AgentType,
			Databases:    len(t.Databases),
			Credentials:  hasCredentials,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	if format == "json" {
		return renderJSON(cmd.OutOrStdout(), rows)
	}

	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.Name, r.SiteName, r.ComputerName, r.Username, r.AuthType, r.AgentType,
			strconv.Itoa(r.Databases), strconv.FormatBool(r.Credentials),
		})
	}
	return renderTable(cmd.OutOrStdout(),
		[]string{"name", "site_name", "computer_name", "username", "auth_type", "agent_type", "databases", "credentials"},
		table)
}

func runTargetsLogin(cmd *cobra.Command, args []string) error {
	name := args[0]
	target, err := config.GetTarget(name)
	if err != nil {
		return err
	}
	if target == nil {
		return fmt.Errorf("target not found: %s", name)
	}

	username, _ := cmd.Flags().GetString("username")
	if username == "" {
		username = target.Username
	}
	passwordStdin, _ := cmd.Flags().GetBool("password-stdin")

	if username == "" {
		if !isInteractive() {
			return errors.New("--username is required when not running in a terminal")
		}
		if username, err = ui.PromptUsername(); err != nil {
			return err
		}
	}

	var password string
	switch {
	case passwordStdin:
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read password from stdin: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	case isInteractive():
		if password, err = ui.PromptPassword(); err != nil {
			return err
		}
	default:
		return errors.New("use --password-stdin when not running in a terminal")
	}

	if err := config.SetCredentials(target.ID, username, password); err != nil {
		return err
	}
	ui.Success(cmd.OutOrStdout(), "Stored credentials for %s (%s).", name, username)
	return nil
}

func runTargetsRm(cmd *cobra.Command, args []string) error {
	name := args[0]
	removed, err := config.RemoveTarget(name)
	if err != nil {
		return err
	}
	if removed == nil {
		return fmt.Errorf("target not found: %s", name)
	}
	if err := config.DeleteCredentials(removed.ID); err != nil {
		return err
	}
	ui.Success(cmd.OutOrStdout(), "Removed target %s.", name)
	return nil
}
