package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aiconcierge/gkeops/internal/lifecycle"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	greenStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	redStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// renderCost produces the styled cost comparison for the cost command.
func renderCost(clusterName string, current, paused lifecycle.Estimate) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  gkeops cost: %s", clusterName)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 40)))
	b.WriteString("\n")

	b.WriteString(renderEstimate(fmt.Sprintf("Current (%d node(s), %s)", current.NodeCount, current.MachineType), current))
	b.WriteString(renderEstimate("While paused", paused))

	saved := current.Monthly - paused.Monthly
	if saved > 0.005 {
		b.WriteString("\n  Pausing saves ")
		b.WriteString(greenStyle.Render(fmt.Sprintf("$%.2f/mo", saved)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Note: flat on-demand rates; ignores discounts and regional pricing."))
	b.WriteString("\n")

	return b.String()
}

// renderEstimate renders one cost estimate block.
func renderEstimate(title string, est lifecycle.Estimate) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  " + title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 30)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "    Hourly:   $%8.2f\n", est.Hourly)
	fmt.Fprintf(&b, "    Daily:    $%8.2f\n", est.Daily)
	fmt.Fprintf(&b, "    Monthly:  $%8.2f\n", est.Monthly)

	return b.String()
}

// renderStatus produces the styled output of the status command.
func renderStatus(status *lifecycle.Status) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  gkeops status: %s", status.Cluster)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 40)))
	b.WriteString("\n\n")

	state := greenStyle.Render(string(status.State))
	if status.State == lifecycle.StatePaused {
		state = redStyle.Render(string(status.State))
	}
	fmt.Fprintf(&b, "    State:     %s\n", state)
	fmt.Fprintf(&b, "    Nodes:     %d (%d ready)\n", status.Nodes, status.ReadyNodes)
	fmt.Fprintf(&b, "    Pods:      %d running\n", status.RunningPods)
	if status.HasSnapshot {
		b.WriteString(dimStyle.Render("    Snapshot:  present (resume available)"))
		b.WriteString("\n")
	}

	if len(status.Workloads) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("  Workloads"))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 40)))
		b.WriteString("\n")
		for _, w := range status.Workloads {
			fmt.Fprintf(&b, "    %-30s %d replica(s)\n", w.String(), w.Replicas)
		}
	}

	b.WriteString(renderEstimate("Cost", status.Estimate))
	return b.String()
}
