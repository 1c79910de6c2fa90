package main

import (
	"os"
	"path/filepath"
	"strings"

	"adsopt/adapters/excel"
	"adsopt/domain/optimization"
	"adsopt/internal/config"
	"adsopt/internal/errors"
	"adsopt/internal/logging"
	"adsopt/internal/orchestrator"
	"adsopt/internal/schema"
)

type runOptions struct {
	Input      string
	Strategies []string
	ASINs      string
	Output     string
}

type runResult struct {
	Report *optimization.RunReport
	Output string
}

// runOptimize reads the input, runs the orchestrator once and writes the output
func runOptimize(cfg *config.Config, opts runOptions, logger *logging.Logger) (*runResult, error) {
	if strings.TrimSpace(opts.Input) == "" {
		return nil, errors.InvalidInput("--input is required")
	}

	excelConfig := excel.DefaultExcelConfig()
	excelConfig.MaxRows = cfg.Limits.MaxRows
	excelConfig.MaxFileSizeBytes = cfg.Limits.MaxFileSizeBytes()

	loaded, err := excel.NewDataReader(excelConfig, logger).ReadFile(opts.Input)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", opts.Input)
	}

	inputs := orchestrator.Inputs{InputHash: loaded.Hash}
	if opts.ASINs != "" {
		f, err := os.Open(opts.ASINs)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open template %s", opts.ASINs)
		}
		tmpl, err := excel.ReadTemplate(f)
		f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read template %s", opts.ASINs)
		}
		inputs.Template = &tmpl
	}

	orch := orchestrator.New(orchestrator.Config{
		MaxRows: cfg.Limits.MaxRows,
		Options: cfg.Strategies.Options(),
	}, logger)
	merged, report, err := orch.Run(loaded.Workbook, opts.Strategies, inputs)
	if err != nil {
		return nil, errors.Wrap(err, "optimization failed")
	}

	s, err := schema.Default()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load column schema")
	}
	output := opts.Output
	if output == "" {
		output = defaultOutputPath(opts.Input)
	}
	if err := excel.NewWriter(excelConfig, s, logger).SaveAs(output, merged, report); err != nil {
		return nil, errors.Wrap(err, "failed to write output")
	}
	return &runResult{Report: report, Output: output}, nil
}

func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_optimized.xlsx"
}
