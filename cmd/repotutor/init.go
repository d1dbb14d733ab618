package main

import (
	"fmt"
	"os"
	"path/filepath"

	"repotutor/internal/config"
	"repotutor/internal/errors"

	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the repotutor workspace",
	Long:  "Creates a .repotutor/ directory with default configuration under the repository root",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Force reinitialization (removes the existing .repotutor directory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(repoFlag)
	if err != nil {
		return errors.New(errors.InternalError, "failed to resolve repository root", err)
	}

	dir := filepath.Join(root, config.ConfigDirName)
	if _, statErr := os.Stat(dir); statErr == nil {
		if !initForce {
			// Already initialized is success, so init is safe in CI.
			fmt.Println("repotutor already initialized.")
			fmt.Printf("Configuration at: %s\n", filepath.Join(dir, "config.json"))
			fmt.Println("\nRun 'repotutor init --force' to reinitialize.")
			return nil
		}
		if removeErr := os.RemoveAll(dir); removeErr != nil {
			return errors.New(errors.InternalError, "failed to remove existing workspace", removeErr)
		}
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(root); err != nil {
		return errors.New(errors.InternalError, "failed to write configuration", err)
	}

	fmt.Println("repotutor initialized.")
	fmt.Printf("Configuration at: %s\n", filepath.Join(dir, "config.json"))
	fmt.Println("\nNext: repotutor analyze \"<what you want to learn>\"")
	return nil
}
