package main

import (
	"errors"
	"fmt"

	"crediasesor-backoffice/internal/adapter/repository/mysql"
	"crediasesor-backoffice/internal/domain/permission"
	usersuc "crediasesor-backoffice/internal/usecase/user"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var superadminFlags struct {
	username string
	password string
	email    string
}

var superadminCmd = &cobra.Command{
	Use:   "create-superadmin",
	Short: "Create the protected superadmin account.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := superadminFlags
		if f.username == "" || len(f.password) < 8 {
			return errors.New("--username is required and --password needs at least 8 characters")
		}
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		uc := usersuc.NewUsecase(mysql.NewGormUoW(a.db), mysql.NewUserRepository(a.db), a.log)
		in := usersuc.CreateInput{
			FirstNames: "Super",
			LastNames:  "Administrador",
			Username:   f.username,
			Password:   f.password,
			Role:       permission.RoleSuperAdmin,
		}
		if f.email != "" {
			in.Email = &f.email
		}
		v, err := uc.Create(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("create superadmin: %w", err)
		}
		a.log.Info("superadmin created", zap.Uint64("user_id", v.ID), zap.String("username", v.Username))
		return nil
	},
}

func init() {
	fl := superadminCmd.Flags()
	fl.StringVar(&superadminFlags.username, "username", "", "login name")
	fl.StringVar(&superadminFlags.password, "password", "", "initial password")
	fl.StringVar(&superadminFlags.email, "email", "", "optional email")
}
