package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/holista-dev/holista/internal/config"
)

const envExample = `# Copy to .env and fill in; values here override holista.yaml.
HOLISTA_FTP_HOST=
HOLISTA_FTP_USER=
HOLISTA_FTP_PASSWORD=
`

func newInitCommand() *cobra.Command {
	var host, user string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a starter holista.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, host, user, force)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "FTP host of the report server")
	cmd.Flags().StringVar(&user, "user", "", "FTP user")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing holista.yaml")

	return cmd
}

func runInit(out io.Writer, dir, host, user string, force bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, DefaultConfigFile)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	cfg := config.Default(host, user)
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	envPath := filepath.Join(dir, ".env.example")
	if err := os.WriteFile(envPath, []byte(envExample), 0o644); err != nil {
		return fmt.Errorf("writing .env.example: %w", err)
	}

	fmt.Fprintf(out, "Wrote %s\n", path)
	if cfg.FTP.Password == "" {
		fmt.Fprintln(out, "Set the FTP password in .env (HOLISTA_FTP_PASSWORD) or under ftp.password.")
	}
	return nil
}
