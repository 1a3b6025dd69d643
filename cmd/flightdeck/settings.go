package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/flightdeck/internal/config"
)

func newSettingsCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the keychain and map settings",
	}
	cmd.AddCommand(newSettingsShowCmd(rootFlags))
	cmd.AddCommand(newSettingsSetCmd(rootFlags))
	return cmd
}

func newSettingsShowCmd(rootFlags *rootFlags) *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(rootFlags.configPath)
			if err != nil {
				return err
			}
			path, err := config.ResolvePath(rootFlags.configPath)
			if err != nil {
				return err
			}
			if !reveal {
				settings = settings.Redacted()
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:      %s\n", path)
			fmt.Fprintf(out, "Endpoint:  %s\n", settings.Endpoint)
			fmt.Fprintf(out, "API key:   %s\n", valueOrFallback(settings.APIKey, "(not set)"))
			fmt.Fprintf(out, "Map token: %s\n", valueOrFallback(settings.MapToken, "(not set)"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "print credentials unmasked")
	return cmd
}

func newSettingsSetCmd(rootFlags *rootFlags) *cobra.Command {
	var next config.Settings

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update settings in the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("endpoint") && !flags.Changed("api-key") && !flags.Changed("map-token") {
				return fmt.Errorf("nothing to set; pass --endpoint, --api-key or --map-token")
			}

			settings, err := config.Load(rootFlags.configPath)
			if err != nil {
				return err
			}
			if flags.Changed("endpoint") {
				settings.Endpoint = next.Endpoint
			}
			if flags.Changed("api-key") {
				settings.APIKey = next.APIKey
			}
			if flags.Changed("map-token") {
				settings.MapToken = next.MapToken
			}
			if err := config.Save(rootFlags.configPath, settings); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings saved.")
			return nil
		},
	}

	cmd.Flags().StringVar(&next.Endpoint, "endpoint", "", "keychain service URL")
	cmd.Flags().StringVar(&next.APIKey, "api-key", "", "keychain service API key")
	cmd.Flags().StringVar(&next.MapToken, "map-token", "", "Mapbox access token")
	return cmd
}

func valueOrFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
