// Package terraform drives the infrastructure-as-code definition that
// declares the cluster, network, registry and service accounts.
//
// The definition itself lives in the repository's terraform directory; this
// package only generates the variables file and shells out for
// init/plan/apply/destroy. IaC failures are always fatal to the calling
// stage.
package terraform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aiconcierge/gkeops/internal/util/runner"
)

const binary = "terraform"

// VarsFilename is the generated variables file inside the working directory.
const VarsFilename = "terraform.tfvars"

// Vars are the inputs supplied to the infrastructure definition.
type Vars struct {
	ProjectID   string
	Region      string
	Zone        string
	ClusterName string
	Repository  string
	MachineType string
	Autopilot   bool
}

// Terraform wraps CLI invocations against a single working directory.
type Terraform struct {
	run runner.Runner
	dir string
}

// New returns a Terraform bound to the given working directory.
func New(run runner.Runner, dir string) *Terraform {
	return &Terraform{run: run, dir: dir}
}

// WriteVars generates the variables file in the working directory.
func (t *Terraform) WriteVars(vars Vars) error {
	content := fmt.Sprintf(`project_id   = %q
region       = %q
zone         = %q
cluster_name = %q
repository   = %q
machine_type = %q
autopilot    = %t
`, vars.ProjectID, vars.Region, vars.Zone, vars.ClusterName, vars.Repository, vars.MachineType, vars.Autopilot)

	path := filepath.Join(t.dir, VarsFilename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", VarsFilename, err)
	}
	return nil
}

// Init runs terraform init.
func (t *Terraform) Init(ctx context.Context) error {
	if err := t.exec(ctx, "init", "-input=false"); err != nil {
		return fmt.Errorf("terraform init failed: %w", err)
	}
	return nil
}

// Plan runs terraform plan.
func (t *Terraform) Plan(ctx context.Context) error {
	if err := t.exec(ctx, "plan", "-input=false"); err != nil {
		return fmt.Errorf("terraform plan failed: %w", err)
	}
	return nil
}

// Apply runs terraform apply without interactive approval.
func (t *Terraform) Apply(ctx context.Context) error {
	if err := t.exec(ctx, "apply", "-input=false", "-auto-approve"); err != nil {
		return fmt.Errorf("terraform apply failed: %w", err)
	}
	return nil
}

// Destroy runs terraform destroy without interactive approval.
func (t *Terraform) Destroy(ctx context.Context) error {
	if err := t.exec(ctx, "destroy", "-input=false", "-auto-approve"); err != nil {
		return fmt.Errorf("terraform destroy failed: %w", err)
	}
	return nil
}

func (t *Terraform) exec(ctx context.Context, args ...string) error {
	// -chdir must precede the subcommand.
	return t.run.RunStreaming(ctx, binary, append([]string{"-chdir=" + t.dir}, args...)...)
}
