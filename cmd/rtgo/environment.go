package main

import (
	"fmt"

	"github.com/rgehrsitz/rtgo/internal/calculation"
	"github.com/rgehrsitz/rtgo/internal/config"
	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/rgehrsitz/rtgo/internal/legal"
	"github.com/rgehrsitz/rtgo/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// environment is what the shared persistent flags resolve to
type environment struct {
	registry  *legal.Registry
	constants *domain.LegalConstants
	iss       calculation.ISSLookup
	logger    *zap.Logger
}

// loadEnvironment reads --year, --constants, --iss-table and --debug.
// A constants file selects its own fiscal year unless --year is given explicitly.
func loadEnvironment(cmd *cobra.Command, level string) (*environment, error) {
	flags := cmd.Flags()
	year, _ := flags.GetInt("year")
	constantsFile, _ := flags.GetString("constants")
	issFile, _ := flags.GetString("iss-table")
	debugMode, _ := flags.GetBool("debug")

	parser := config.NewInputParser()
	registry := legal.Default()

	if constantsFile != "" {
		lc, err := parser.LoadLegalConstants(constantsFile)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(lc); err != nil {
			return nil, err
		}
		if !flags.Changed("year") {
			year = lc.Metadata.FiscalYear
		}
	}

	lc, err := registry.Get(year)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, registry.Years())
	}

	env := &environment{registry: registry, constants: lc}

	if issFile != "" {
		table, err := parser.LoadISSTable(issFile)
		if err != nil {
			return nil, err
		}
		env.iss = table
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = level
	if debugMode {
		logCfg.Level = "debug"
	}
	env.logger, err = logging.New(logCfg)
	if err != nil {
		return nil, err
	}

	return env, nil
}

// engine builds a calculation engine for the selected fiscal year
func (e *environment) engine(parallel bool) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine(e.constants)
	engine.SetLogger(logging.NewEngineLogger(e.logger))
	if e.iss != nil {
		engine.SetISSLookup(e.iss)
	}
	engine.Parallel = parallel
	return engine
}

func (e *environment) close() {
	_ = e.logger.Sync()
}
