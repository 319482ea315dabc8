package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/battbridge/battd/pkg/batteryinfo"
	"github.com/battbridge/battd/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func NewLevelCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "level",
		GroupID: gBasic,
		Short:   "Get the current battery level",
		Long:    `Get the current battery charge as a percentage, as reported by the host.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level, err := apiClient.GetBatteryLevel()
			if err != nil {
				return fmt.Errorf("failed to get battery level: %w", err)
			}

			cmd.Printf("%d%%\n", level)
			return nil
		},
	}
}

func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "info",
		GroupID: gBasic,
		Short:   "Get detailed battery info",
		Long:    `Get the full battery record: level, charging state and source, health, temperature, and voltage.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := apiClient.GetBatteryInfo()
			if err != nil {
				return fmt.Errorf("failed to get battery info: %w", err)
			}

			cmd.Println(bold("Battery:"))
			cmd.Printf("  Level: %s\n", bold("%d%%", info.Level))
			if info.IsCharging {
				cmd.Printf("  Charging: %s (%s)\n", bool2Text(true), info.ChargingSource)
			} else {
				cmd.Printf("  Charging: %s\n", bool2Text(false))
			}
			cmd.Printf("  Health: %s\n", healthText(info.Health))
			cmd.Printf("  Temperature: %.1f°C\n", info.TemperatureCelsius)
			cmd.Printf("  Voltage: %d mV\n", info.VoltageMillivolts)
			return nil
		},
	}
}

func NewCallCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "call [operation]",
		GroupID: gAdvanced,
		Short:   "Invoke a bridge operation by name",
		Long: `Invoke a bridge operation by name and print the raw reply.

Mostly useful for debugging UI integrations: unknown names get the same
not-implemented reply a UI caller would see.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ret, err := apiClient.Call(args[0])
			if err != nil {
				return fmt.Errorf("failed to call %q: %w", args[0], err)
			}

			cmd.Println(ret)
			return nil
		},
	}
}

func NewOperationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "operations",
		GroupID: gAdvanced,
		Short:   "List the operations the daemon recognizes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops, err := apiClient.GetOperations()
			if err != nil {
				return fmt.Errorf("failed to list operations: %w", err)
			}

			for _, op := range ops {
				cmd.Println(op)
			}
			return nil
		},
	}
}

func healthText(h batteryinfo.Health) string {
	switch h {
	case batteryinfo.HealthGood:
		return color.New(color.FgGreen).Sprint(string(h))
	case batteryinfo.HealthUnknown:
		return string(h)
	default:
		return color.New(color.FgRed).Sprint(string(h))
	}
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
