package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/persistence/postgres"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/security"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

var adminInput services.RegisterInput

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a super admin, or promote an existing account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if adminInput.Email == "" {
			return errors.New("--email is required")
		}

		cfg, logger, err := environment()
		if err != nil {
			return err
		}
		db, err := openDatabase(cfg, logger)
		if err != nil {
			return err
		}
		defer closeDatabase(db)

		// o emissor de tokens não é usado aqui, mas o serviço exige um
		tokens, err := security.NewJWTIssuer("portalctl", cfg.JWT.Issuer, cfg.JWT.AccessExpiry, nil)
		if err != nil {
			return err
		}

		auth := services.NewAuthService(
			postgres.NewUserRepository(db),
			security.NewBcryptHasher(bcrypt.DefaultCost),
			tokens,
			ports.NopNotifier{},
			ports.SystemClock{},
			cfg.Community.ResidentPostalPrefixes,
			logger,
		)

		user, created, err := auth.BootstrapSuperAdmin(cmd.Context(), adminInput)
		if err != nil {
			return err
		}

		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "created super admin %s (%s)\n", user.Email, user.ID)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "promoted %s (%s) to super admin\n", user.Email, user.ID)
		}
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminInput.Email, "email", "", "Account email")
	createAdminCmd.Flags().StringVar(&adminInput.Password, "password", "", "Password for a new account (8 to 72 characters)")
	createAdminCmd.Flags().StringVar(&adminInput.DisplayName, "name", "Portal Admin", "Display name for a new account")
	createAdminCmd.Flags().StringVar(&adminInput.PostalCode, "postal-code", "", "Postal code for a new account")
}
