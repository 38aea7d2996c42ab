package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"hireflow/internal/app"
	ucauth "hireflow/internal/usecase/auth"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const minPasswordLen = 8

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage HR admin accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an HR admin interactively",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		username, err := (&promptui.Prompt{Label: "Username", Validate: validateUsername}).Run()
		if err != nil {
			return err
		}
		password, err := (&promptui.Prompt{Label: "Password", Mask: '*', Validate: validatePassword}).Run()
		if err != nil {
			return err
		}
		_, err = (&promptui.Prompt{
			Label:    "Repeat password",
			Mask:     '*',
			Validate: func(s string) error { return samePassword(password, s) },
		}).Run()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		c, err := app.OpenStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		u, err := ucauth.NewService(c.Store.Admins).Create(ctx, username, password)
		if err != nil {
			return err
		}
		log.Info("admin_created", zap.String("username", u.Username), zap.String("id", u.ID.String()))
		return nil
	},
}

func init() {
	adminCmd.AddCommand(adminCreateCmd)
	rootCmd.AddCommand(adminCmd)
}

func validateUsername(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("username is required")
	}
	return nil
}

func validatePassword(s string) error {
	if len(s) < minPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

func samePassword(want, got string) error {
	if want != got {
		return errors.New("passwords do not match")
	}
	return nil
}
