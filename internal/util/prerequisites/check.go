// Package prerequisites checks that the external CLIs this tool shells out
// to are present before a stage starts mutating cloud state.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// DefaultTools returns the tools every command depends on.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:        "gcloud",
			Required:    true,
			Description: "Required for project, registry and cluster operations",
			InstallURL:  "https://cloud.google.com/sdk/docs/install",
		},
	}
}

// ProvisionTools returns additional tools needed for infrastructure provisioning.
func ProvisionTools() []Tool {
	return []Tool{
		{
			Name:        "terraform",
			Required:    true,
			Description: "Required for declarative cluster/network/registry provisioning",
			InstallURL:  "https://developer.hashicorp.com/terraform/install",
		},
	}
}

// DeployTools returns additional tools needed for building and pushing images.
func DeployTools() []Tool {
	return []Tool{
		{
			Name:        "docker",
			Required:    true,
			Description: "Required for building and pushing application images",
			InstallURL:  "https://docs.docker.com/engine/install/",
		},
	}
}

// OptionalTools returns tools that are useful but not required.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "kubectl",
			Required:    false,
			Description: "Useful for manual debugging of the demo cluster",
			InstallURL:  "https://kubernetes.io/docs/tasks/tools/",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			result.Version = toolVersion(tool.Name)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckDefault checks the default required tools.
func CheckDefault() *CheckResults {
	return Check(DefaultTools())
}

// CheckAll checks every tool any command might need.
func CheckAll() *CheckResults {
	all := DefaultTools()
	all = append(all, ProvisionTools()...)
	all = append(all, DeployTools()...)
	all = append(all, OptionalTools()...)
	return Check(all)
}

// CheckForProvision checks tools needed for infrastructure provisioning.
func CheckForProvision() *CheckResults {
	all := DefaultTools()
	all = append(all, ProvisionTools()...)
	return Check(all)
}

// CheckForDeploy checks tools needed for image build and deploy.
func CheckForDeploy() *CheckResults {
	all := DefaultTools()
	all = append(all, DeployTools()...)
	return Check(all)
}

// toolVersion attempts to get the version of a tool, best effort.
func toolVersion(name string) string {
	versionFlags := []string{"--version", "version", "-v"}

	for _, flag := range versionFlags {
		// #nosec G204 - name comes from trusted Tool definitions, not user input
		cmd := exec.Command(name, flag)
		output, err := cmd.Output()
		if err == nil {
			lines := strings.Split(string(output), "\n")
			if len(lines) > 0 {
				return strings.TrimSpace(lines[0])
			}
		}
	}

	return ""
}
