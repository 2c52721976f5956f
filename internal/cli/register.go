package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartclinic/clinic-client/internal/api"
	"github.com/smartclinic/clinic-client/internal/routes"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a doctor or patient account",
	RunE:  runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().String("role", "", "account role: doctor or patient")
	registerCmd.Flags().String("name", "", "full name")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password")
	registerCmd.Flags().String("speciality", "", "speciality (doctors only)")
	registerCmd.Flags().String("phone", "", "phone number (patients only)")
	_ = registerCmd.MarkFlagRequired("role")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
}

func runRegister(cmd *cobra.Command, args []string) error {
	screen, err := resolveScreen(routes.PathRegister)
	if err != nil {
		return err
	}
	if screen != routes.PathRegister {
		sess := store.Snapshot()
		printer.Warn("Already logged in as %s (%s). Run 'clinic logout' first.", sess.User, sess.Role)
		return nil
	}

	role, _ := cmd.Flags().GetString("role")
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	speciality, _ := cmd.Flags().GetString("speciality")
	phone, _ := cmd.Flags().GetString("phone")

	ctx := cmd.Context()
	switch api.Role(strings.ToUpper(role)) {
	case api.RoleDoctor:
		created, err := client.RegisterDoctor(ctx, api.DoctorRegistration{
			Name:       name,
			Email:      email,
			Password:   password,
			Speciality: speciality,
		})
		if err != nil {
			printer.Error("%s", api.UserMessage(err))
			return err
		}
		printer.Success("Doctor account created for %s. You can now log in.", created.Email)
	case api.RolePatient:
		created, err := client.RegisterPatient(ctx, api.PatientRegistration{
			Name:     name,
			Email:    email,
			Password: password,
			Phone:    phone,
		})
		if err != nil {
			printer.Error("%s", api.UserMessage(err))
			return err
		}
		printer.Success("Patient account created for %s. You can now log in.", created.Email)
	default:
		printer.Error("Unsupported role %q: use doctor or patient.", role)
		return errors.New("unsupported role selection")
	}
	return nil
}
