// Package command provides CLI command definitions for snapreg.
package command

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/datalode/snapreg/internal/cli/output"
	"github.com/datalode/snapreg/internal/config"
	"github.com/datalode/snapreg/internal/core/service"
	"github.com/datalode/snapreg/internal/storage/audit"
	"github.com/datalode/snapreg/internal/storage/manifest"
	"github.com/datalode/snapreg/internal/storage/registry"
	"github.com/datalode/snapreg/internal/telemetry/logger"
	"github.com/datalode/snapreg/internal/telemetry/metric"
)

// runtime bundles the stores and services a command needs. Commands open
// it, run, and close it; nothing outlives one invocation.
type runtime struct {
	cfg     *config.Config
	store   *registry.Store
	layout  manifest.Layout
	ledger  *audit.Ledger
	metrics *metric.Registry
}

// openRuntime opens the registry and, when configured, the audit ledger.
func openRuntime(c *cli.Context) (*runtime, error) {
	cfg := getConfig(c)

	store, err := registry.Open(cfg.Registry.Path)
	if err != nil {
		return nil, err
	}

	r := &runtime{
		cfg:     cfg,
		store:   store,
		layout:  manifest.Layout{Root: cfg.Registry.DataRoot},
		metrics: metric.NewRegistry(),
	}

	if cfg.Audit.Path != "" {
		ledger, err := audit.Open(cfg.Audit.Path)
		if err != nil {
			return nil, err
		}
		r.ledger = ledger
	}
	return r, nil
}

// close flushes the metrics textfile and releases the ledger.
func (r *runtime) close() {
	if path := r.cfg.Metrics.Textfile; path != "" {
		if err := r.metrics.WriteTextfile(path); err != nil {
			logger.Default().Error("write metrics textfile", "path", path, "error", err)
		}
	}
	if r.ledger != nil {
		if err := r.ledger.Close(); err != nil {
			logger.Default().Error("close audit ledger", "error", err)
		}
	}
}

// promoter assembles the promotion write path.
func (r *runtime) promoter() *service.Promoter {
	detector := service.NewDetector(r.store, r.cfg.AnomalyPolicies())
	opts := []service.PromoterOption{}
	if r.ledger != nil {
		opts = append(opts, service.WithPromotionRecorder(r.ledger))
	}
	return service.NewPromoter(r.store, detector, r.layout, opts...)
}

// resolver assembles the selection resolver.
func (r *runtime) resolver() *service.Resolver {
	opts := []service.ResolverOption{}
	if r.ledger != nil {
		opts = append(opts, service.WithFallbackRecorder(r.ledger))
	}
	return service.NewResolver(r.store, opts...)
}

// validator assembles the manifest validator.
func (r *runtime) validator() *service.Validator {
	return service.NewValidator(r.store, r.layout)
}

// monitor assembles the freshness monitor.
func (r *runtime) monitor() *service.Monitor {
	return service.NewMonitor(r.store, r.cfg.FreshnessPolicies())
}

// emit writes a result in the requested output format.
func emit(c *cli.Context, res output.Result) error {
	f := output.NewFormatter(output.Format(c.String("output")))
	return f.Format(os.Stdout, res)
}
