package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-shopkeeper/internal/repository"
	"go-shopkeeper/internal/service"
	"go-shopkeeper/pkg/database"

	"github.com/spf13/cobra"
)

var (
	resetPhone    string
	resetPassword string
)

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a new password for an account",
	Long: `Set a new password for the account registered with --phone.
No OTP or old password is required.

Example:
  shopctl reset-password --phone 9876543210 --password newsecret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkResetFlags(resetPhone, resetPassword); err != nil {
			return err
		}
		return runResetPassword(cmd.Context(), cmd, strings.TrimSpace(resetPhone), resetPassword)
	},
}

func init() {
	rootCmd.AddCommand(resetPasswordCmd)

	resetPasswordCmd.Flags().StringVar(&resetPhone, "phone", "", "Account phone number (10 digits)")
	resetPasswordCmd.Flags().StringVar(&resetPassword, "password", "", "New password (at least 6 characters)")
}

func checkResetFlags(phone, password string) error {
	if strings.TrimSpace(phone) == "" {
		return errors.New("--phone is required")
	}
	if password == "" {
		return errors.New("--password is required")
	}
	return nil
}

func runResetPassword(ctx context.Context, cmd *cobra.Command, phone, password string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	db, err := openDB(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	// Only the account repository is needed for an operator reset.
	auth := service.NewAuthService(repository.NewAccountRepo(db), repository.NewShopRepo(db), nil, nil, log)
	if err := auth.ResetPassword(ctx, phone, password); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Password for %s has been reset\n", phone)
	return nil
}
