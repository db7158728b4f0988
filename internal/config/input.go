package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rgehrsitz/rtgo/internal/calculation"
	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var maxPercent = decimal.NewFromInt(100)

// InputParser handles parsing of scenario requests and table overrides
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario request from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.ScenarioRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes a scenario request. JSON input is accepted since the keys are shared.
func (ip *InputParser) Parse(data []byte) (*domain.ScenarioRequest, error) {
	var req domain.ScenarioRequest
	if err := decodeStrict(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse scenario request: %w", err)
	}

	if err := ip.ValidateRequest(&req); err != nil {
		return nil, fmt.Errorf("scenario request validation failed: %w", err)
	}

	return &req, nil
}

// ValidateRequest checks the request for values the engine would reject, with field names in
// the messages. Defaults are not applied here.
func (ip *InputParser) ValidateRequest(req *domain.ScenarioRequest) error {
	if req == nil {
		return fmt.Errorf("request is empty")
	}

	switch req.ClientType {
	case "", domain.ClientPessoaFisica, domain.ClientPessoaJuridica:
	default:
		return fmt.Errorf("clientType must be %q or %q, got %q", domain.ClientPessoaFisica, domain.ClientPessoaJuridica, req.ClientType)
	}

	amounts := []struct {
		field string
		value *decimal.Decimal
	}{
		{"monthlyRevenue", req.MonthlyRevenue},
		{"rbt12", req.RBT12},
		{"payrollExpenses", req.PayrollExpenses},
		{"deductibleExpenses", req.DeductibleExpenses},
	}
	for _, a := range amounts {
		if a.value != nil && a.value.IsNegative() {
			return fmt.Errorf("%s: %w", a.field, domain.ErrNegativeAmount)
		}
	}

	if err := validatePercent("issRate", req.ISSRate); err != nil {
		return err
	}
	if err := validatePercent("assumedMarginPercent", req.AssumedMarginPercent); err != nil {
		return err
	}

	if req.NumberOfPartners != nil && *req.NumberOfPartners < 0 {
		return fmt.Errorf("numberOfPartners cannot be negative")
	}
	if req.Dependents != nil && *req.Dependents < 0 {
		return fmt.Errorf("dependents cannot be negative")
	}

	if req.MonthlyRevenue == nil && len(req.Activities) == 0 {
		return fmt.Errorf("either monthlyRevenue or activities is required")
	}

	for i, a := range req.Activities {
		if err := ip.validateActivity(a); err != nil {
			return fmt.Errorf("activity %d (%s) validation failed: %w", i, a.Name, err)
		}
	}

	return nil
}

func (ip *InputParser) validateActivity(a domain.ActivityRequest) error {
	if a.Revenue == nil {
		return fmt.Errorf("revenue is required")
	}
	if a.Revenue.IsNegative() {
		return fmt.Errorf("revenue: %w", domain.ErrNegativeAmount)
	}
	if a.Type != "" {
		if _, err := domain.ParseActivityKind(a.Type); err != nil {
			return err
		}
	}
	if a.SimplesAnnex != "" {
		if _, err := domain.ParseAnnex(a.SimplesAnnex); err != nil {
			return err
		}
	}
	return nil
}

func validatePercent(field string, v *decimal.Decimal) error {
	if v == nil {
		return nil
	}
	if v.IsNegative() || v.GreaterThan(maxPercent) {
		return fmt.Errorf("%s must be between 0 and 100, got %s", field, v.String())
	}
	return nil
}

// LoadLegalConstants loads a full constants snapshot from YAML and validates it
func (ip *InputParser) LoadLegalConstants(filename string) (*domain.LegalConstants, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var lc domain.LegalConstants
	if err := decodeStrict(data, &lc); err != nil {
		return nil, fmt.Errorf("failed to parse legal constants: %w", err)
	}
	if lc.Metadata.FiscalYear <= 0 {
		return nil, fmt.Errorf("legal constants in %s have no metadata.fiscal_year", filename)
	}
	if err := lc.Validate(); err != nil {
		return nil, fmt.Errorf("legal constants validation failed: %w", err)
	}

	return &lc, nil
}

// ISSTable is the on-disk shape of the ISS-fixo table
type ISSTable struct {
	Municipalities map[string]decimal.Decimal `yaml:"municipalities"`
}

// LoadISSTable loads a municipality -> monthly ISS-fixo per partner table
func (ip *InputParser) LoadISSTable(filename string) (*calculation.StaticISSLookup, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var table ISSTable
	if err := decodeStrict(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse ISS table: %w", err)
	}
	for name, amount := range table.Municipalities {
		if amount.IsNegative() {
			return nil, fmt.Errorf("municipality %s: %w", name, domain.ErrNegativeAmount)
		}
	}

	return calculation.NewStaticISSLookup(table.Municipalities), nil
}

// decodeStrict rejects unknown keys so that typos in hand-written files surface
func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("document is empty")
		}
		return err
	}
	return nil
}
