package main

import (
	"fmt"
	"strings"

	"github.com/RichLyon/JobAppTracker/internal/config"
	"github.com/RichLyon/JobAppTracker/internal/provider"
	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Inspect and configure LLM providers",
}

var providersShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show provider settings (credentials redacted)",
	RunE:  runProvidersShow,
}

var providersSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change provider settings",
	Long: "Examples:\n" +
		"  jobtracker providers set --active openai\n" +
		"  jobtracker providers set --model ollama=llama3.1:8b\n" +
		"  jobtracker providers set --api-key anthropic=sk-ant-...",
	RunE: runProvidersSet,
}

var providersCheckCmd = &cobra.Command{
	Use:   "check [provider]",
	Short: "Check provider availability",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProvidersCheck,
}

var providersSetFlags struct {
	active  string
	models  []string
	apiKeys []string
}

func init() {
	f := providersSetCmd.Flags()
	f.StringVar(&providersSetFlags.active, "active", "", "provider to make active")
	f.StringArrayVar(&providersSetFlags.models, "model", nil, "default model as provider=model (repeatable)")
	f.StringArrayVar(&providersSetFlags.apiKeys, "api-key", nil, "credential as provider=key (repeatable)")
	providersCmd.AddCommand(providersShowCmd, providersSetCmd, providersCheckCmd)
	rootCmd.AddCommand(providersCmd)
}

func runProvidersShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	view := a.registry.Settings()
	fmt.Printf("Active provider: %s\n\n", view.Provider)
	for _, name := range config.Providers {
		marker := " "
		if name == view.Provider {
			marker = "*"
		}
		credential := "api key not set"
		if view.Configured[name] {
			credential = "configured"
		}
		fmt.Printf("%s %-10s model=%s (%s)\n", marker, name, view.Models[name], credential)
	}
	return nil
}

func runProvidersSet(cmd *cobra.Command, args []string) error {
	var upd provider.SettingsUpdate
	if cmd.Flags().Changed("active") {
		upd.Active = &providersSetFlags.active
	}
	var err error
	if upd.Models, err = parsePairs(providersSetFlags.models, "--model"); err != nil {
		return err
	}
	if upd.APIKeys, err = parsePairs(providersSetFlags.apiKeys, "--api-key"); err != nil {
		return err
	}
	if upd.Active == nil && len(upd.Models) == 0 && len(upd.APIKeys) == 0 {
		return fmt.Errorf("nothing to change: pass --active, --model or --api-key")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.registry.UpdateSettings(upd); err != nil {
		return err
	}
	fmt.Println("Provider settings updated.")
	return nil
}

// parsePairs turns ["ollama=llama3.1:8b", ...] into a map.
func parsePairs(pairs []string, flagName string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%s expects provider=value, got %q", flagName, p)
		}
		out[key] = value
	}
	return out, nil
}

func runProvidersCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	names := config.Providers
	if len(args) == 1 {
		names = []string{args[0]}
	}

	failed := false
	for _, name := range names {
		available, message := a.registry.CheckAvailability(cmd.Context(), name)
		if available {
			fmt.Printf("%-10s available\n", name)
			continue
		}
		failed = true
		fmt.Printf("%-10s unavailable: %s\n", name, message)
	}
	if failed && len(args) == 1 {
		return fmt.Errorf("provider %s is not available", args[0])
	}
	return nil
}
