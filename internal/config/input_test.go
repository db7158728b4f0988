package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/rgehrsitz/rtgo/internal/legal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadFromFile_YAML(t *testing.T) {
	parser := NewInputParser()

	req, err := parser.LoadFromFile(filepath.Join("testdata", "bar_quadra.yaml"))
	require.NoError(t, err)

	assert.Equal(t, domain.ClientPessoaJuridica, req.ClientType)
	require.NotNil(t, req.ISSRate)
	assert.True(t, req.ISSRate.Equal(decimal.NewFromInt(5)))
	require.Len(t, req.Activities, 2)
	assert.Equal(t, "Bar", req.Activities[0].Name)
	assert.Equal(t, "comercio", req.Activities[0].Type)
	assert.Equal(t, "III", req.Activities[1].SimplesAnnex)
	require.NotNil(t, req.Activities[1].IsMEIEligible)
	assert.True(t, *req.Activities[1].IsMEIEligible)
	assert.Nil(t, req.RBT12, "absent fields stay nil until normalization")
}

func TestLoadFromFile_JSON(t *testing.T) {
	parser := NewInputParser()

	req, err := parser.LoadFromFile(filepath.Join("testdata", "consultoria.json"))
	require.NoError(t, err)

	require.NotNil(t, req.RBT12)
	assert.True(t, req.RBT12.Equal(decimal.NewFromInt(300000)))
	require.NotNil(t, req.IsUniprofessionalSociety)
	assert.True(t, *req.IsUniprofessionalSociety)
	assert.Equal(t, "Campinas", req.Municipality)
	require.NotNil(t, req.NumberOfPartners)
	assert.Equal(t, 2, *req.NumberOfPartners)
	assert.Equal(t, "V", req.Activities[0].SimplesAnnex)
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)

	_, err = parser.LoadFromFile(filepath.Join("testdata", "typo.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monthlyRevenu")

	_, err = parser.Parse([]byte(""))
	assert.Error(t, err)
}

func TestValidateRequest(t *testing.T) {
	parser := NewInputParser()
	dec := func(s string) *decimal.Decimal {
		v := decimal.RequireFromString(s)
		return &v
	}
	neg := -1

	tests := []struct {
		name    string
		req     *domain.ScenarioRequest
		wantErr string
	}{
		{"valid top-level revenue", &domain.ScenarioRequest{MonthlyRevenue: dec("1000")}, ""},
		{"nil", nil, "empty"},
		{"no revenue", &domain.ScenarioRequest{}, "monthlyRevenue or activities"},
		{"bad client type", &domain.ScenarioRequest{ClientType: "mei", MonthlyRevenue: dec("1")}, "clientType"},
		{"negative payroll", &domain.ScenarioRequest{MonthlyRevenue: dec("1"), PayrollExpenses: dec("-1")}, "payrollExpenses"},
		{"iss above 100", &domain.ScenarioRequest{MonthlyRevenue: dec("1"), ISSRate: dec("101")}, "issRate"},
		{"negative margin", &domain.ScenarioRequest{MonthlyRevenue: dec("1"), AssumedMarginPercent: dec("-5")}, "assumedMarginPercent"},
		{"negative partners", &domain.ScenarioRequest{MonthlyRevenue: dec("1"), NumberOfPartners: &neg}, "numberOfPartners"},
		{"negative dependents", &domain.ScenarioRequest{MonthlyRevenue: dec("1"), Dependents: &neg}, "dependents"},
		{"activity without revenue", &domain.ScenarioRequest{
			Activities: []domain.ActivityRequest{{Name: "Loja"}},
		}, "revenue is required"},
		{"activity with bad annex", &domain.ScenarioRequest{
			Activities: []domain.ActivityRequest{{Name: "Loja", Revenue: dec("1"), SimplesAnnex: "X"}},
		}, "annex"},
		{"activity with bad type", &domain.ScenarioRequest{
			Activities: []domain.ActivityRequest{{Name: "Loja", Revenue: dec("1"), Type: "agro"}},
		}, "activity type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parser.ValidateRequest(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadLegalConstants(t *testing.T) {
	parser := NewInputParser()
	dir := t.TempDir()

	c := legal.Constants2025()
	c.Metadata.FiscalYear = 2026
	c.MinimumWage = decimal.RequireFromString("1630.00")
	data, err := yaml.Marshal(c)
	require.NoError(t, err)

	path := filepath.Join(dir, "constants.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loaded, err := parser.LoadLegalConstants(path)
	require.NoError(t, err)
	assert.Equal(t, 2026, loaded.Metadata.FiscalYear)
	assert.True(t, loaded.MinimumWage.Equal(decimal.RequireFromString("1630")))
	assert.True(t, loaded.Simples.AnnexV[5].Deduction.Equal(decimal.NewFromInt(540000)))

	c.IRPF.Brackets[1].NominalRate = decimal.Zero
	c.IRPF.Brackets[0].NominalRate = decimal.RequireFromString("0.5")
	data, err = yaml.Marshal(c)
	require.NoError(t, err)
	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, data, 0o600))

	_, err = parser.LoadLegalConstants(badPath)
	assert.ErrorIs(t, err, domain.ErrInvalidBracketTable)
}

func TestLoadISSTable(t *testing.T) {
	parser := NewInputParser()

	lookup, err := parser.LoadISSTable(filepath.Join("testdata", "iss_fixo.yaml"))
	require.NoError(t, err)

	amount, ok := lookup.FixedISSPerPartner("campinas")
	require.True(t, ok)
	assert.True(t, amount.Equal(decimal.RequireFromString("85.50")))

	_, ok = lookup.FixedISSPerPartner("Recife")
	assert.False(t, ok)
}
