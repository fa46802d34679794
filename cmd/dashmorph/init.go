package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	initForce    bool
	initDefaults bool
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing dashmorph.yml")
	initCmd.Flags().BoolVar(&initDefaults, "defaults", false, "Write the default configuration without prompting")
}

const configTemplate = `# dashmorph configuration
convert:
  force_fallback: %t
  widgets_per_row: %d

serve:
  host: localhost
  port: %d

watch:
  debounce_ms: %d
  port: %d
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a dashmorph.yml configuration file",
	Long: `Create a dashmorph.yml in the current directory.

Values are collected interactively; --defaults skips the prompts and
writes the built-in defaults, which suits scripted setups.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		const path = "dashmorph.yml"
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		forceFallback := false
		widgetsPerRow := 3
		servePort := 8080
		watchPort := 4444
		debounceMS := 250

		if !initDefaults {
			if err := survey.AskOne(&survey.Input{
				Message: "Widgets per layout row:",
				Default: strconv.Itoa(widgetsPerRow),
			}, &widgetsPerRow, survey.WithValidator(intBetween(1, 6))); err != nil {
				return err
			}

			if err := survey.AskOne(&survey.Confirm{
				Message: "Chart unsupported panel types as time series?",
				Default: forceFallback,
			}, &forceFallback); err != nil {
				return err
			}

			if err := survey.AskOne(&survey.Input{
				Message: "Conversion API port:",
				Default: strconv.Itoa(servePort),
			}, &servePort, survey.WithValidator(intBetween(1, 65535))); err != nil {
				return err
			}

			if err := survey.AskOne(&survey.Input{
				Message: "Watch preview port:",
				Default: strconv.Itoa(watchPort),
			}, &watchPort, survey.WithValidator(intBetween(1, 65535))); err != nil {
				return err
			}

			if err := survey.AskOne(&survey.Input{
				Message: "Watch debounce in milliseconds:",
				Default: strconv.Itoa(debounceMS),
			}, &debounceMS, survey.WithValidator(intBetween(0, 60000))); err != nil {
				return err
			}
		}

		content := fmt.Sprintf(configTemplate, forceFallback, widgetsPerRow, servePort, debounceMS, watchPort)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		green := color.New(color.FgGreen)
		green.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

// intBetween validates a numeric prompt answer within [min, max].
func intBetween(min, max int) survey.Validator {
	return func(ans interface{}) error {
		s, ok := ans.(string)
		if !ok {
			return fmt.Errorf("expected a number")
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < min || n > max {
			return fmt.Errorf("must be a number between %d and %d", min, max)
		}
		return nil
	}
}
