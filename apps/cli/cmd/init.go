package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/wave/packages/core/config"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a collection directory with examples",
	Long: `Create the collection directory (default .wave) with a starter
configuration and an example collection.

This creates:
  - config.yaml    - Defaults for flags and headers sent with every request
  - example.yaml   - Example collection

Examples:
  wave init
  wave init --dir ./api --force`,
	Args: usageArgs(cobra.NoArgs),
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

const exampleCollection = `# Send with: wave collection example "Get Post"
variables:
  base_url: https://jsonplaceholder.typicode.com
  post_id: 1

requests:
  - name: Get Post
    method: GET
    url: ${base_url}/posts/${post_id}
    headers:
      Accept: application/json

  - name: Create Post
    method: POST
    url: ${base_url}/posts
    headers:
      Authorization: Bearer ${env:API_TOKEN}
    body:
      json:
        title: Hello from wave
        userId: 1
        published: false

  - name: Login
    method: POST
    url: ${base_url}/login
    body:
      form:
        username: demo
        password: ${env:API_PASSWORD}
`

func initCommand(cmd *cobra.Command, args []string) error {
	dir := sess.cfg.Dir
	configFile := filepath.Join(dir, config.FileName+".yaml")
	exampleFile := filepath.Join(dir, "example.yaml")

	if !forceInit {
		for _, f := range []string{configFile, exampleFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	configContent := map[string]any{
		"output":     config.OutputConsole,
		"no_color":   false,
		"no_spinner": false,
		"verbose":    false,
		"headers": map[string]string{
			"Accept": "application/json",
		},
	}

	configYAML, err := yaml.Marshal(configContent)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFile, configYAML, 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	if err := os.WriteFile(exampleFile, []byte(exampleCollection), 0644); err != nil {
		return fmt.Errorf("failed to create example collection: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nwave collection directory initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'wave collection example \"Get Post\"' to send the first request.\n")

	return nil
}
