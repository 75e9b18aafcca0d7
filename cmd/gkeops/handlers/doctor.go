package handlers

import (
	"fmt"

	"github.com/aiconcierge/gkeops/internal/config"
	"github.com/aiconcierge/gkeops/internal/util/prerequisites"
)

// Doctor handles the doctor command: check local tooling and the
// configuration file, reporting every problem before failing.
func Doctor(configPath string) error {
	results := prerequisites.CheckAll()

	fmt.Println("Tooling:")
	for _, r := range results.Results {
		switch {
		case r.Found:
			fmt.Printf("  %s %-12s %s\n", greenStyle.Render("✓"), r.Tool.Name, dimStyle.Render(r.Version))
		case !r.Tool.Required:
			fmt.Printf("  %s %-12s optional, not found\n", dimStyle.Render("○"), r.Tool.Name)
		default:
			fmt.Printf("  %s %-12s not found: %s\n", redStyle.Render("✗"), r.Tool.Name, r.Tool.InstallURL)
		}
	}

	fmt.Println("\nConfiguration:")
	cfg, err := loadConfig(configPath)
	switch {
	case err != nil:
		fmt.Printf("  %s %v\n", redStyle.Render("✗"), err)
	default:
		fmt.Printf("  %s project %s, cluster %s, %d app(s)\n",
			greenStyle.Render("✓"), cfg.ProjectID, cfg.ClusterName, len(cfg.Apps))
	}

	if results.HasErrors() {
		return results.Error()
	}
	if err != nil && configPath != "" {
		return err
	}
	// A missing discoverable config is fine; init creates one.
	if err != nil {
		fmt.Printf("  %s\n", dimStyle.Render("no "+config.DefaultConfigFilename+" found; run gkeops init to create one"))
	}
	return nil
}
