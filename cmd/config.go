package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/edakit/internal/chart"
	cfgpkg "github.com/KaramelBytes/edakit/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set edakit configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "output_dir: %s\n", c.OutputDir)
		fmt.Fprintf(out, "image_format: %s\n", c.ImageFormat)
		fmt.Fprintf(out, "fig_width: %g\n", c.FigWidth)
		fmt.Fprintf(out, "fig_height: %g\n", c.FigHeight)
		if c.OpenCommand != "" {
			fmt.Fprintf(out, "open_command: %s\n", c.OpenCommand)
		}
		fmt.Fprintf(out, "bins: %d\n", c.Bins)
		fmt.Fprintf(out, "color: %s\n", c.Color)
		fmt.Fprintf(out, "edge_color: %s\n", c.EdgeColor)
		fmt.Fprintf(out, "palette: %s\n", c.Palette)
		if len(c.MissingTokens) > 0 {
			fmt.Fprintf(out, "missing_tokens: %s\n", strings.Join(c.MissingTokens, ","))
		}
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		if err := setConfigValue(c, args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func setConfigValue(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "output_dir":
		c.OutputDir = val
	case "image_format":
		f := strings.ToLower(val)
		switch f {
		case "png", "jpg", "jpeg", "svg":
			c.ImageFormat = f
		default:
			return fmt.Errorf("invalid image_format: %s (use png, jpg or svg)", val)
		}
	case "fig_width", "fig_height":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid positive float for %s: %v", key, val)
		}
		if key == "fig_width" {
			c.FigWidth = f
		} else {
			c.FigHeight = f
		}
	case "open_command":
		c.OpenCommand = val
	case "bins":
		i, err := strconv.Atoi(val)
		if err != nil || i < 1 {
			return fmt.Errorf("invalid int for bins: %v", val)
		}
		c.Bins = i
	case "color", "edge_color":
		if _, err := chart.ParseColor(val); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		if key == "color" {
			c.Color = val
		} else {
			c.EdgeColor = val
		}
	case "palette":
		if _, err := chart.Palette(val, 1); err != nil {
			return fmt.Errorf("invalid palette: %w", err)
		}
		c.Palette = val
	case "missing_tokens":
		c.MissingTokens = nil
		for _, tok := range strings.Split(val, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				c.MissingTokens = append(c.MissingTokens, tok)
			}
		}
	case "log_level":
		l := strings.ToLower(val)
		switch l {
		case "debug", "info", "warn", "error":
			c.LogLevel = l
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
