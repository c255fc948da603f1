package main

import (
	"bufio"
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var (
	adminEmail         string
	adminName          string
	adminPassword      string
	adminPasswordStdin bool
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Create an admin account",
	Example: `  hubctl admin create --email ops@fsti.bi --name "Hub Ops" --password-stdin < secret.txt`,
	RunE:    runAdminCreate,
}

func init() {
	f := adminCreateCmd.Flags()
	f.StringVar(&adminEmail, "email", "", "admin email (required)")
	f.StringVar(&adminName, "name", "", "full name")
	f.StringVar(&adminPassword, "password", "", "password, at least 8 characters")
	f.BoolVar(&adminPasswordStdin, "password-stdin", false, "read the password from stdin")
	_ = adminCreateCmd.MarkFlagRequired("email")
	adminCreateCmd.MarkFlagsMutuallyExclusive("password", "password-stdin")

	adminCmd.AddCommand(adminCreateCmd)
}

func runAdminCreate(cmd *cobra.Command, _ []string) error {
	password := adminPassword
	if adminPasswordStdin {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return errors.New("no password on stdin")
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return errors.New("a password is required: use --password or --password-stdin")
	}

	c, _, err := openContainer()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	a, err := c.Usecases.Auth.CreateAdmin(cmd.Context(), adminEmail, adminName, password)
	if err != nil {
		return err
	}
	cmd.Printf("admin %s created (id %s)\n", a.Email, a.ID)
	return nil
}
