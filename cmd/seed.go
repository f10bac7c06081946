package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"mes/internal/core/application/usecases/commands"
	"mes/internal/core/application/usecases/queries"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/route"

	"gopkg.in/yaml.v3"
)

// Catalog is the seed file format:
//
//	processes:
//	  - name: Cutting
//	    description: Laser cutting
//	routes:
//	  - name: Standard
//	    steps:
//	      - process: Cutting
//	        order: 1
type Catalog struct {
	Processes []CatalogProcess `yaml:"processes"`
	Routes    []CatalogRoute   `yaml:"routes"`
}

type CatalogProcess struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type CatalogRoute struct {
	Name  string             `yaml:"name"`
	Steps []CatalogRouteStep `yaml:"steps"`
}

// CatalogRouteStep references its process by name.
type CatalogRouteStep struct {
	Process string `yaml:"process"`
	Order   int    `yaml:"order"`
}

func DecodeCatalog(r io.Reader) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	return c, nil
}

// Seed creates the processes of catalog that do not exist yet, by name, and
// then every route of catalog.
func (c *CompositionRoot) Seed(ctx context.Context, catalog Catalog) error {
	logger := c.logger.With("component", "seed")

	existing, err := c.CreateGetAllProcessesQueryHandler().Handle(ctx, queries.NewGetAllProcessesQuery())
	if err != nil {
		return err
	}
	processes := make(map[string]kernel.UUID, len(existing))
	for _, p := range existing {
		processes[p.Name] = p.ID
	}

	createProcess := c.CreateCreateProcessCommandHandler()
	for _, p := range catalog.Processes {
		if _, ok := processes[p.Name]; ok {
			continue
		}
		cmd, err := commands.NewCreateProcessCommand(p.Name, p.Description)
		if err != nil {
			return fmt.Errorf("process %q: %w", p.Name, err)
		}
		id, err := createProcess.Handle(ctx, cmd)
		if err != nil {
			return fmt.Errorf("process %q: %w", p.Name, err)
		}
		processes[p.Name] = id
		logger.InfoContext(ctx, "Process created", slog.String("name", p.Name), slog.String("id", id.String()))
	}

	createRoute := c.CreateCreateRouteCommandHandler()
	for _, r := range catalog.Routes {
		defs := make([]route.StepDefinition, 0, len(r.Steps))
		for _, s := range r.Steps {
			id, ok := processes[s.Process]
			if !ok {
				return fmt.Errorf("route %q: unknown process %q", r.Name, s.Process)
			}
			defs = append(defs, route.StepDefinition{ProcessID: id, Order: s.Order})
		}

		cmd, err := commands.NewCreateRouteCommand(r.Name, defs)
		if err != nil {
			return fmt.Errorf("route %q: %w", r.Name, err)
		}
		id, err := createRoute.Handle(ctx, cmd)
		if err != nil {
			return fmt.Errorf("route %q: %w", r.Name, err)
		}
		logger.InfoContext(ctx, "Route created", slog.String("name", r.Name), slog.String("id", id.String()))
	}

	return nil
}
