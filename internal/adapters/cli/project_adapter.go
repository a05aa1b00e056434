package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/trinity/internal/ports/primary"
)

// ProjectAdapter is a thin adapter that translates CLI operations to ProjectService calls.
type ProjectAdapter struct {
	service primary.ProjectService
	out     io.Writer
}

// NewProjectAdapter creates a new ProjectAdapter with the given service.
func NewProjectAdapter(service primary.ProjectService, out io.Writer) *ProjectAdapter {
	return &ProjectAdapter{
		service: service,
		out:     out,
	}
}

// Init scaffolds the starter files.
func (a *ProjectAdapter) Init(ctx context.Context, withConfig bool) error {
	resp, err := a.service.InitProject(ctx, primary.InitProjectRequest{WithConfig: withConfig})
	if err != nil {
		return err
	}

	for _, path := range resp.Created {
		fmt.Fprintf(a.out, "%s %s\n", color.New(color.FgGreen).Sprint("CREATE "), path)
	}
	for _, path := range resp.Skipped {
		fmt.Fprintf(a.out, "%s %s\n", color.New(color.FgBlue).Sprint("EXISTS "), path)
	}
	return nil
}
