package calculation

import (
	"testing"

	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/rgehrsitz/rtgo/internal/legal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, d(expected).StringFixed(2), actual.StringFixed(2), msgAndArgs...)
}

func serviceInput(revenue string) domain.ScenarioInput {
	rev := d(revenue)
	return domain.ScenarioInput{
		ClientType:       domain.ClientPessoaJuridica,
		Activities:       []domain.Activity{domain.DefaultActivity(rev)},
		MonthlyRevenue:   rev,
		RBT12:            rev.Mul(decimal.NewFromInt(12)),
		PayrollExpenses:  decimal.Zero,
		ISSRate:          d("0.04"),
		NumberOfPartners: 1,
		AssumedMargin:    d("0.30"),
	}
}

func findLine(t *testing.T, r domain.ScenarioResult, label string) domain.TaxLineItem {
	t.Helper()
	for _, l := range r.TaxLineItems {
		if l.Label == label {
			return l
		}
	}
	require.Failf(t, "line not found", "%s has no line %q", r.Name, label)
	return domain.TaxLineItem{}
}

func TestEvaluateBracket(t *testing.T) {
	inss := legal.Constants2025().INSS.Brackets

	tests := []struct {
		name     string
		base     string
		expected string
	}{
		{"zero", "0", "0"},
		{"negative", "-100", "0"},
		{"minimum wage", "1518", "113.85"},
		{"upper limit belongs to its own bracket", "2793.88", "228.68"},
		{"third bracket", "3000", "253.41"},
		{"above last limit uses last bracket", "10000", "1209.60"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertMoney(t, tt.expected, EvaluateBracket(d(tt.base), inss))
		})
	}
}

func TestEvaluateBracketNeverNegative(t *testing.T) {
	lc := legal.Constants2025()
	tables := []domain.BracketTable{
		lc.INSS.Brackets, lc.IRPF.Brackets,
		lc.Simples.AnnexI, lc.Simples.AnnexII, lc.Simples.AnnexIII, lc.Simples.AnnexIV, lc.Simples.AnnexV,
	}
	for _, table := range tables {
		for base := decimal.Zero; base.LessThan(d("6000000")); base = base.Add(d("7919.37")) {
			assert.False(t, EvaluateBracket(base, table).IsNegative(), "base %s", base)
		}
	}
}

func TestSelectBracket(t *testing.T) {
	table := legal.Constants2025().Simples.AnnexIII
	assert.True(t, SelectBracket(d("180000"), table).NominalRate.Equal(d("0.06")))
	assert.True(t, SelectBracket(d("180000.01"), table).NominalRate.Equal(d("0.112")))
	assert.True(t, SelectBracket(d("9000000"), table).NominalRate.Equal(d("0.33")))
	assert.Equal(t, domain.Bracket{}, SelectBracket(d("1"), nil))
}

func TestPayrollCalculator(t *testing.T) {
	pc := NewPayrollCalculator(legal.Constants2025())

	assertMoney(t, "113.85", pc.INSSWithholding(d("1518")))
	assertMoney(t, "951.63", pc.INSSWithholding(d("10000")), "above the ceiling pays the fixed contribution")
	assertMoney(t, "951.64", pc.INSSWithholding(d("8157.41")), "at the ceiling the table still applies")

	assertMoney(t, "0", pc.IRRFWithholding(d("2428.80"), 0))
	assertMoney(t, "55.84", pc.IRRFWithholding(d("3000"), 0))
	assertMoney(t, "28.62", pc.IRRFWithholding(d("3000"), 1))
	assertMoney(t, "1841.27", pc.IRRFWithholding(d("10000"), 0))

	assertMoney(t, "303.60", pc.EmployerCPP(d("1518")))
	assertMoney(t, "0", pc.EmployerCPP(decimal.Zero))

	p := pc.ProLabore(d("2800"), 0)
	assertMoney(t, "229.41", p.INSSAmount)
	assertMoney(t, "10.63", p.IRRFAmount)
	assertMoney(t, "2559.96", p.NetAmount)
}

func TestFatorR(t *testing.T) {
	fc := NewFatorRCalculator(legal.Constants2025())

	tests := []struct {
		name      string
		payroll   string
		revenue   string
		ratio     string
		qualifies bool
		shortfall string
	}{
		{"no payroll uses minimum wage", "0", "10000", "0.1518", false, "1282"},
		{"exactly at threshold", "2800", "10000", "0.28", true, "0"},
		{"above threshold", "3000", "10000", "0.30", true, "0"},
		{"zero revenue", "5000", "0", "0", false, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fr := fc.Resolve(d(tt.payroll), d(tt.revenue))
			assert.True(t, fr.Ratio.Equal(d(tt.ratio)), "ratio %s", fr.Ratio)
			assert.Equal(t, tt.qualifies, fr.QualifiesForAnnexIII)
			assertMoney(t, tt.shortfall, fr.Shortfall)
		})
	}

	assertMoney(t, "2800", fc.TargetPayroll(d("10000")))
	assertMoney(t, "1518", fc.TargetPayroll(d("1000")))
}

func TestAdjustAnnex(t *testing.T) {
	pass := domain.FatorRResult{QualifiesForAnnexIII: true}
	fail := domain.FatorRResult{}

	assert.Equal(t, domain.AnnexIII, AdjustAnnex(domain.AnnexV, pass))
	assert.Equal(t, domain.AnnexV, AdjustAnnex(domain.AnnexV, fail))
	assert.Equal(t, domain.AnnexIII, AdjustAnnex(domain.AnnexIII, fail))
	assert.Equal(t, domain.AnnexIV, AdjustAnnex(domain.AnnexIV, pass))
	assert.Equal(t, domain.AnnexI, AdjustAnnex(domain.AnnexI, pass))
}

func TestSimplesEvaluate(t *testing.T) {
	sc := NewSimplesCalculator(legal.Constants2025())

	q := sc.Evaluate(d("120000"), d("10000"), domain.AnnexIII)
	assertMoney(t, "600", q.Tax)
	assertMoney(t, "6", q.EffectiveRatePercent)
	assertMoney(t, "6", q.NominalRatePercent)

	q = sc.Evaluate(decimal.Zero, d("10000"), domain.AnnexV)
	assertMoney(t, "1550", q.Tax, "no revenue history falls back to the first nominal rate")

	q = sc.Evaluate(d("500000"), d("40000"), domain.AnnexIII)
	assertMoney(t, "9.97", q.EffectiveRatePercent)
	assertMoney(t, "13.5", q.NominalRatePercent)
	assertMoney(t, "17640", q.Deduction)
	assertMoney(t, "3988.80", q.Tax)
}

func TestSimplesEffectiveNeverAboveNominal(t *testing.T) {
	sc := NewSimplesCalculator(legal.Constants2025())
	annexes := []domain.Annex{domain.AnnexI, domain.AnnexII, domain.AnnexIII, domain.AnnexIV, domain.AnnexV}

	for _, a := range annexes {
		for rbt12 := decimal.Zero; rbt12.LessThanOrEqual(d("5000000")); rbt12 = rbt12.Add(d("45678.9")) {
			q := sc.Evaluate(rbt12, d("10000"), a)
			assert.True(t, q.EffectiveRatePercent.LessThanOrEqual(q.NominalRatePercent),
				"annex %s rbt12 %s: %s > %s", a, rbt12, q.EffectiveRatePercent, q.NominalRatePercent)
		}
	}
}

func TestSimplesScenarioSingle(t *testing.T) {
	sc := NewSimplesCalculator(legal.Constants2025())

	r := sc.Scenario(serviceInput("10000"))
	assert.Equal(t, domain.RegimeSimplesSingle, r.Kind)
	assert.Equal(t, "Simples Nacional (Anexo III)", r.Name)
	assert.True(t, r.IsEligible)

	assertMoney(t, "600", r.TaxLineItems[0].Amount)
	assertMoney(t, "840.04", r.TotalTax)
	assertMoney(t, "9159.96", r.NetDistributableProfit)
	require.NotNil(t, r.ProLabore)
	assertMoney(t, "2800", r.ProLabore.BaseAmount)
}

func TestSimplesScenarioMixed(t *testing.T) {
	sc := NewSimplesCalculator(legal.Constants2025())
	in := domain.ScenarioInput{
		Activities: []domain.Activity{
			{Name: "Bar", MonthlyRevenue: d("5000"), Kind: domain.KindCommerce, SimplesAnnex: domain.AnnexI, MEIEligible: true},
			{Name: "Quadra", MonthlyRevenue: d("5000"), Kind: domain.KindService, SimplesAnnex: domain.AnnexIII, MEIEligible: true},
		},
		MonthlyRevenue:   d("10000"),
		RBT12:            d("120000"),
		NumberOfPartners: 1,
	}

	r := sc.Scenario(in)
	assert.Equal(t, domain.RegimeSimplesMixed, r.Kind)
	assert.Equal(t, "Simples Nacional (misto/segregado)", r.Name)
	assert.Equal(t, "DAS Anexo I - Bar", r.TaxLineItems[0].Label)
	assertMoney(t, "200", r.TaxLineItems[0].Amount)
	assert.Equal(t, "DAS Anexo III - Quadra", r.TaxLineItems[1].Label)
	assertMoney(t, "300", r.TaxLineItems[1].Amount)
}

func TestSimplesScenarioFatorRCollapsesToSingleAnnex(t *testing.T) {
	sc := NewSimplesCalculator(legal.Constants2025())
	in := domain.ScenarioInput{
		Activities: []domain.Activity{
			{Name: "Consultoria", MonthlyRevenue: d("6000"), Kind: domain.KindService, SimplesAnnex: domain.AnnexV},
			{Name: "Treinamento", MonthlyRevenue: d("4000"), Kind: domain.KindService, SimplesAnnex: domain.AnnexIII},
		},
		MonthlyRevenue:  d("10000"),
		RBT12:           d("120000"),
		PayrollExpenses: d("3000"),
	}

	r := sc.Scenario(in)
	assert.Equal(t, domain.RegimeSimplesSingle, r.Kind, "both activities end up in Annex III")
	assert.Equal(t, "Simples Nacional (Anexo III)", r.Name)
	assert.Contains(t, r.Notes, "Anexo V tributadas pelo Anexo III")

	in.PayrollExpenses = decimal.Zero
	r = sc.Scenario(in)
	assert.Equal(t, domain.RegimeSimplesMixed, r.Kind)
}

func TestSimplesScenarioAnnexIVAddsCPP(t *testing.T) {
	sc := NewSimplesCalculator(legal.Constants2025())
	in := serviceInput("10000")
	in.Activities[0].SimplesAnnex = domain.AnnexIV

	r := sc.Scenario(in)
	cpp := findLine(t, r, "CPP patronal (Anexo IV)")
	assertMoney(t, "560", cpp.Amount)
}

func TestSimplesScenarioAboveCeiling(t *testing.T) {
	sc := NewSimplesCalculator(legal.Constants2025())
	in := serviceInput("450000")

	r := sc.Scenario(in)
	assert.False(t, r.IsEligible)
	assert.Contains(t, r.EligibilityNote, "4800000.00")
}

func TestSimplesMonotonicInPayrollForAnnexV(t *testing.T) {
	sc := NewSimplesCalculator(legal.Constants2025())

	for _, rbt12 := range []string{"120000", "240000", "1000000", "3000000", "4000000"} {
		in := domain.ScenarioInput{
			Activities: []domain.Activity{
				{Name: "Engenharia", MonthlyRevenue: d("20000"), Kind: domain.KindService, SimplesAnnex: domain.AnnexV},
			},
			MonthlyRevenue: d("20000"),
			RBT12:          d(rbt12),
		}
		previous := sc.Scenario(in).TotalTax
		for payroll := d("500"); payroll.LessThanOrEqual(d("12000")); payroll = payroll.Add(d("500")) {
			in.PayrollExpenses = payroll
			current := sc.Scenario(in).TotalTax
			assert.True(t, current.LessThanOrEqual(previous), "rbt12 %s payroll %s: %s > %s", rbt12, payroll, current, previous)
			previous = current
		}
	}
}

func TestMEI(t *testing.T) {
	mc := NewMEICalculator(legal.Constants2025())

	t.Run("constant below the limit", func(t *testing.T) {
		for _, rev := range []string{"0", "1000", "3500", "6750"} {
			r := mc.Evaluate(serviceInput(rev))
			assert.True(t, r.IsEligible, rev)
			assertMoney(t, "80.90", r.TotalTax, rev)
		}
	})

	t.Run("composition drives the fixed lines", func(t *testing.T) {
		commerce := serviceInput("3000")
		commerce.Activities[0].Kind = domain.KindCommerce
		assertMoney(t, "76.90", mc.Evaluate(commerce).TotalTax)

		both := serviceInput("3000")
		both.Activities = append(both.Activities, domain.Activity{
			Name: "Loja", MonthlyRevenue: decimal.Zero, Kind: domain.KindIndustry, MEIEligible: true,
		})
		assertMoney(t, "81.90", mc.Evaluate(both).TotalTax)
	})

	t.Run("revenue above the limit", func(t *testing.T) {
		in := domain.ScenarioInput{
			Activities: []domain.Activity{
				{Name: "Bar", MonthlyRevenue: d("5000"), Kind: domain.KindCommerce, SimplesAnnex: domain.AnnexI, MEIEligible: true},
				{Name: "Quadra", MonthlyRevenue: d("5000"), Kind: domain.KindService, SimplesAnnex: domain.AnnexIII, MEIEligible: true},
			},
			MonthlyRevenue:   d("10000"),
			RBT12:            d("100000"),
			NumberOfPartners: 1,
		}
		r := mc.Evaluate(in)
		assert.False(t, r.IsEligible)
		assert.Contains(t, r.EligibilityNote, "limite do MEI")
		assert.Contains(t, r.EligibilityNote, "81000.00")
		assertMoney(t, "81.90", r.TotalTax)
	})

	t.Run("activity not allowed", func(t *testing.T) {
		in := serviceInput("2000")
		in.Activities[0].MEIEligible = false
		r := mc.Evaluate(in)
		assert.False(t, r.IsEligible)
		assert.Contains(t, r.EligibilityNote, "não é permitida")
	})

	t.Run("partners", func(t *testing.T) {
		in := serviceInput("2000")
		in.NumberOfPartners = 2
		assert.False(t, mc.Evaluate(in).IsEligible)
	})
}

func TestPresumido(t *testing.T) {
	pc := NewPresumidoCalculator(legal.Constants2025())

	r := pc.Scenario(serviceInput("10000"))
	assert.Equal(t, domain.RegimePresumed, r.Kind)
	assert.Equal(t, "Lucro Presumido", r.Name)
	assertMoney(t, "65", findLine(t, r, "PIS (cumulativo)").Amount)
	assertMoney(t, "300", findLine(t, r, "COFINS (cumulativo)").Amount)
	assertMoney(t, "480", findLine(t, r, "IRPJ").Amount)
	assertMoney(t, "288", findLine(t, r, "CSLL").Amount)
	assertMoney(t, "400", findLine(t, r, "ISS").Amount)
	assertMoney(t, "303.60", findLine(t, r, "CPP patronal sobre pró-labore").Amount)
	assertMoney(t, "1950.45", r.TotalTax)
	assert.True(t, r.IsEligible)

	for _, l := range r.TaxLineItems {
		assert.NotEqual(t, "Adicional de IRPJ", l.Label)
	}
}

func TestPresumidoSurtax(t *testing.T) {
	pc := NewPresumidoCalculator(legal.Constants2025())

	r := pc.Scenario(serviceInput("100000"))
	assertMoney(t, "1200", findLine(t, r, "Adicional de IRPJ").Amount)
}

func TestPresumidoMixedAggregatesBases(t *testing.T) {
	pc := NewPresumidoCalculator(legal.Constants2025())
	in := serviceInput("140000")
	in.Activities = []domain.Activity{
		{Name: "Manutenção", MonthlyRevenue: d("40000"), Kind: domain.KindService, SimplesAnnex: domain.AnnexIII},
		{Name: "Loja", MonthlyRevenue: d("100000"), Kind: domain.KindCommerce, SimplesAnnex: domain.AnnexI},
	}

	irpjBase, csllBase := pc.PresumedBases(in)
	assertMoney(t, "20800", irpjBase)
	assertMoney(t, "24800", csllBase)

	r := pc.Scenario(in)
	assert.Equal(t, domain.RegimePresumedMixed, r.Kind)
	assert.Equal(t, "Lucro Presumido (misto)", r.Name)
	assertMoney(t, "80", findLine(t, r, "Adicional de IRPJ").Amount)
	assertMoney(t, "1600", findLine(t, r, "ISS").Amount, "ISS applies to service revenue only")
	findLine(t, r, "ICMS (estimativa)")
}

func TestPresumidoHospitalAndUniprofessional(t *testing.T) {
	pc := NewPresumidoCalculator(legal.Constants2025())

	hospital := serviceInput("10000")
	hospital.IsHospitalEquivalent = true
	r := pc.Scenario(hospital)
	assertMoney(t, "120", findLine(t, r, "IRPJ").Amount)
	assertMoney(t, "108", findLine(t, r, "CSLL").Amount)

	sup := serviceInput("10000")
	sup.IsUniprofessionalSociety = true
	sup.FixedISSPerPartner = d("100")
	sup.NumberOfPartners = 3
	r = pc.Scenario(sup)
	assertMoney(t, "300", findLine(t, r, "ISS fixo (3 sócio(s))").Amount)
}

func TestPresumidoAboveCeiling(t *testing.T) {
	pc := NewPresumidoCalculator(legal.Constants2025())
	r := pc.Scenario(serviceInput("7000000"))
	assert.False(t, r.IsEligible)
}

func TestReal(t *testing.T) {
	rc := NewRealCalculator(legal.Constants2025())

	r := rc.Scenario(serviceInput("10000"))
	assert.Equal(t, domain.RegimeReal, r.Kind)
	assertMoney(t, "165", findLine(t, r, "PIS (não cumulativo)").Amount)
	assertMoney(t, "760", findLine(t, r, "COFINS (não cumulativo)").Amount)
	assertMoney(t, "450", findLine(t, r, "IRPJ").Amount)
	assertMoney(t, "270", findLine(t, r, "CSLL").Amount)
	assertMoney(t, "2462.45", r.TotalTax)

	lowMargin := serviceInput("10000")
	lowMargin.AssumedMargin = d("0.10")
	r = rc.Scenario(lowMargin)
	assertMoney(t, "150", findLine(t, r, "IRPJ").Amount)
	assertMoney(t, "90", findLine(t, r, "CSLL").Amount)
}

func TestCarneLeao(t *testing.T) {
	pc := NewPersonalCalculator(legal.Constants2025())

	in := serviceInput("10000")
	in.DeductibleExpenses = d("2000")
	r := pc.CarneLeao(in)
	assert.Equal(t, domain.CategoryPersonal, r.Category)
	assertMoney(t, "1600", findLine(t, r, "INSS contribuinte individual").Amount)
	assertMoney(t, "851.27", findLine(t, r, "IRPF (Carnê-Leão)").Amount)
	assertMoney(t, "2451.27", r.TotalTax)
	assertMoney(t, "7548.73", r.NetDistributableProfit)

	r = pc.CarneLeao(serviceInput("20000"))
	assertMoney(t, "1631.48", findLine(t, r, "INSS contribuinte individual").Amount, "INSS base is capped at the ceiling")

	over := serviceInput("1000")
	over.DeductibleExpenses = d("5000")
	assertMoney(t, "0", pc.CarneLeao(over).TotalTax)
}

func TestCLT(t *testing.T) {
	pc := NewPersonalCalculator(legal.Constants2025())

	r := pc.CLT(serviceInput("5000"))
	assert.Equal(t, domain.RegimeCLT, r.Kind)
	assertMoney(t, "509.60", findLine(t, r, "INSS empregado").Amount)
	assertMoney(t, "334.85", findLine(t, r, "IRRF empregado").Amount)
	assertMoney(t, "1000", findLine(t, r, "INSS patronal").Amount)
	assertMoney(t, "400", findLine(t, r, "FGTS").Amount)
	assertMoney(t, "50", findLine(t, r, "RAT").Amount)
	assertMoney(t, "290", findLine(t, r, "Terceiros (Sistema S)").Amount)
	assertMoney(t, "2584.45", r.TotalTax)
	assertMoney(t, "4155.55", r.NetDistributableProfit)
	assert.Contains(t, r.Notes, "6740.00")
}
