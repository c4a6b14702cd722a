package config

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// RunSetup walks the user through the handful of preferences worth asking
// about and writes the result to the config path. Everything else keeps its
// default and can be edited in the file directly.
func RunSetup() error {
	cfg, _ := Load()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Description("Style used to render articles").
				Options(
					huh.NewOption("Match terminal (auto)", "auto"),
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
					huh.NewOption("Plain (no color)", "notty"),
				).
				Value(&cfg.UI.Theme),
			huh.NewConfirm().
				Title("Reduce motion?").
				Description("Disables smooth scrolling and staggered reveals").
				Value(&cfg.ReducedMotion),
			huh.NewInput().
				Title("Share command (optional)").
				Description("Shell command that receives the share payload as JSON on stdin").
				Placeholder("e.g. termux-share or a custom script").
				Value(&cfg.ShareCommand),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}
	if err := Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Printf("Wrote %s\n", ConfigPath())
	return nil
}
