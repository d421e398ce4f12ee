package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the applicant profile used in cover letters",
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set profile fields (only passed flags change)",
	RunE:  runProfileSet,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored profile",
	RunE:  runProfileShow,
}

var profileFlags struct {
	name    string
	email   string
	phone   string
	address string
}

func init() {
	f := profileSetCmd.Flags()
	f.StringVar(&profileFlags.name, "name", "", "full name")
	f.StringVar(&profileFlags.email, "email", "", "email address")
	f.StringVar(&profileFlags.phone, "phone", "", "phone number")
	f.StringVar(&profileFlags.address, "address", "", "mailing address")
	profileCmd.AddCommand(profileSetCmd, profileShowCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	// Merge over the stored profile so set is a partial update.
	prof, err := a.store.GetProfile()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("name") {
		prof.FullName = profileFlags.name
	}
	if cmd.Flags().Changed("email") {
		prof.Email = profileFlags.email
	}
	if cmd.Flags().Changed("phone") {
		prof.Phone = profileFlags.phone
	}
	if cmd.Flags().Changed("address") {
		prof.Address = profileFlags.address
	}

	if err := a.store.SaveProfile(prof); err != nil {
		return err
	}
	fmt.Println("Profile saved.")
	return nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	prof, err := a.store.GetProfile()
	if err != nil {
		return err
	}
	if prof.FullName == "" && prof.Email == "" && prof.Phone == "" && prof.Address == "" {
		fmt.Println("No profile stored. Set one with: jobtracker profile set --name ...")
		return nil
	}
	fmt.Printf("Name:    %s\n", prof.FullName)
	fmt.Printf("Email:   %s\n", prof.Email)
	fmt.Printf("Phone:   %s\n", prof.Phone)
	fmt.Printf("Address: %s\n", prof.Address)
	return nil
}
