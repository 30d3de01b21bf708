package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/recruitflow/internal/config"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Hash a reviewer password for the config file",
	Long:  `Hashes a password with bcrypt so it can be stored in the reviewers section of config.json. Honors BCRYPT_COST and PASSWORD_PEPPER environment variables.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHashPassword,
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}

func runHashPassword(_ *cobra.Command, args []string) error {
	pc, err := config.NewPasswordConfig()
	if err != nil {
		return err
	}

	hash, err := pc.HashPassword(args[0])
	if err != nil {
		return err
	}

	fmt.Println(hash)
	return nil
}
