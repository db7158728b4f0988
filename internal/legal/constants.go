// Package legal holds the compiled-in Brazilian tax tables, one snapshot per fiscal year.
//
// Sources: Lei Complementar 123/2006 Anexos I-V (redação LC 155/2016), Portaria
// Interministerial MPS/MF for the INSS table, Lei 15.191/2025 and MP 1.206/2024 for the
// IRPF monthly table, and Decreto 12.342/2024 for the 2025 minimum wage.
package legal

import (
	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// The Simples Nacional RBT12 limits are the same for every annex
var simplesLimits = []string{"180000", "360000", "720000", "1800000", "3600000", "4800000"}

func simplesTable(rates, deductions []string) domain.BracketTable {
	table := make(domain.BracketTable, len(simplesLimits))
	for i := range simplesLimits {
		table[i] = domain.Bracket{
			UpperLimit:  d(simplesLimits[i]),
			NominalRate: d(rates[i]),
			Deduction:   d(deductions[i]),
		}
	}
	return table
}

func simplesRules() domain.SimplesRules {
	return domain.SimplesRules{
		AnnexI: simplesTable(
			[]string{"0.04", "0.073", "0.095", "0.107", "0.143", "0.19"},
			[]string{"0", "5940", "13860", "22500", "87300", "378000"},
		),
		AnnexII: simplesTable(
			[]string{"0.045", "0.078", "0.10", "0.112", "0.147", "0.30"},
			[]string{"0", "5940", "13860", "22500", "85500", "720000"},
		),
		AnnexIII: simplesTable(
			[]string{"0.06", "0.112", "0.135", "0.16", "0.21", "0.33"},
			[]string{"0", "9360", "17640", "35640", "125640", "648000"},
		),
		AnnexIV: simplesTable(
			[]string{"0.045", "0.09", "0.102", "0.14", "0.22", "0.33"},
			[]string{"0", "8100", "12420", "39780", "183780", "828000"},
		),
		AnnexV: simplesTable(
			[]string{"0.155", "0.18", "0.195", "0.205", "0.23", "0.305"},
			[]string{"0", "4500", "9900", "17100", "62100", "540000"},
		),
		AnnualLimit:     d("4800000"),
		FatorRThreshold: d("0.28"),
	}
}

func incomeTax() domain.IncomeTaxRules {
	return domain.IncomeTaxRules{
		IRPJRate:         d("0.15"),
		IRPJSurtaxRate:   d("0.10"),
		MonthlySurtaxCap: d("20000"),
		CSLLRate:         d("0.09"),
	}
}

func presumidoRules() domain.PresumidoRules {
	return domain.PresumidoRules{
		ServiceIRPJBase:  d("0.32"),
		ServiceCSLLBase:  d("0.32"),
		GoodsIRPJBase:    d("0.08"),
		GoodsCSLLBase:    d("0.12"),
		HospitalIRPJBase: d("0.08"),
		HospitalCSLLBase: d("0.12"),
		PISRate:          d("0.0065"),
		COFINSRate:       d("0.03"),
		AnnualLimit:      d("78000000"),
		IncomeTax:        incomeTax(),
	}
}

func realRules() domain.RealRules {
	return domain.RealRules{
		PISRate:       d("0.0165"),
		COFINSRate:    d("0.076"),
		DefaultMargin: d("0.30"),
		IncomeTax:     incomeTax(),
	}
}

func payrollCharges() domain.PayrollChargeRules {
	return domain.PayrollChargeRules{
		CPPRate:        d("0.20"),
		FGTSRate:       d("0.08"),
		RATRate:        d("0.01"),
		ThirdPartyRate: d("0.058"),
	}
}

func municipalDefaults() domain.MunicipalTaxDefaults {
	return domain.MunicipalTaxDefaults{
		DefaultISSRate: d("0.04"),
		ICMSRate:       decimal.Zero,
	}
}

// Constants2025 returns the tables in force for fiscal year 2025
func Constants2025() *domain.LegalConstants {
	return &domain.LegalConstants{
		Metadata: domain.RegulatoryMetadata{
			FiscalYear:  2025,
			LastUpdated: "2025-05-01",
			Description: "Tabelas 2025 (IRPF a partir de maio/2025)",
		},
		MinimumWage: d("1518.00"),
		INSS: domain.INSSRules{
			Brackets: domain.BracketTable{
				{UpperLimit: d("1518.00"), NominalRate: d("0.075"), Deduction: d("0")},
				{UpperLimit: d("2793.88"), NominalRate: d("0.09"), Deduction: d("22.77")},
				{UpperLimit: d("4190.83"), NominalRate: d("0.12"), Deduction: d("106.59")},
				{UpperLimit: d("8157.41"), NominalRate: d("0.14"), Deduction: d("190.40")},
			},
			Ceiling:             d("8157.41"),
			CeilingContribution: d("951.63"),
			AutonomousRate:      d("0.20"),
		},
		IRPF: domain.IRPFRules{
			Brackets: domain.BracketTable{
				{UpperLimit: d("2428.80"), NominalRate: d("0"), Deduction: d("0")},
				{UpperLimit: d("2826.65"), NominalRate: d("0.075"), Deduction: d("182.16")},
				{UpperLimit: d("3751.05"), NominalRate: d("0.15"), Deduction: d("394.16")},
				{UpperLimit: d("4664.68"), NominalRate: d("0.225"), Deduction: d("675.49")},
				{UpperLimit: d("999999999"), NominalRate: d("0.275"), Deduction: d("908.73")},
			},
			DeductionPerDependent: d("189.59"),
		},
		Simples: simplesRules(),
		MEI: domain.MEIRules{
			AnnualLimit: d("81000"),
			INSSRate:    d("0.05"),
			ICMSAmount:  d("1.00"),
			ISSAmount:   d("5.00"),
		},
		Presumido: presumidoRules(),
		Real:      realRules(),
		Payroll:   payrollCharges(),
		Municipal: municipalDefaults(),
	}
}

// Constants2024 returns the tables in force for fiscal year 2024
func Constants2024() *domain.LegalConstants {
	c := Constants2025()
	c.Metadata = domain.RegulatoryMetadata{
		FiscalYear:  2024,
		LastUpdated: "2024-02-01",
		Description: "Tabelas 2024 (IRPF a partir de fevereiro/2024)",
	}
	c.MinimumWage = d("1412.00")
	c.INSS.Brackets = domain.BracketTable{
		{UpperLimit: d("1412.00"), NominalRate: d("0.075"), Deduction: d("0")},
		{UpperLimit: d("2666.68"), NominalRate: d("0.09"), Deduction: d("21.18")},
		{UpperLimit: d("4000.03"), NominalRate: d("0.12"), Deduction: d("101.18")},
		{UpperLimit: d("7786.02"), NominalRate: d("0.14"), Deduction: d("181.18")},
	}
	c.INSS.Ceiling = d("7786.02")
	c.INSS.CeilingContribution = d("908.85")
	c.IRPF.Brackets = domain.BracketTable{
		{UpperLimit: d("2259.20"), NominalRate: d("0"), Deduction: d("0")},
		{UpperLimit: d("2826.65"), NominalRate: d("0.075"), Deduction: d("169.44")},
		{UpperLimit: d("3751.05"), NominalRate: d("0.15"), Deduction: d("381.44")},
		{UpperLimit: d("4664.68"), NominalRate: d("0.225"), Deduction: d("662.77")},
		{UpperLimit: d("999999999"), NominalRate: d("0.275"), Deduction: d("896.00")},
	}
	return c
}
