package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats crossover results as a console table
type TableFormatter struct{}

// Format generates a formatted block for one crossover search
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("PONTO DE EQUILÍBRIO ENTRE REGIMES\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Variável:   %s\n", result.Dimension.Label()))
	sb.WriteString(fmt.Sprintf("Regimes:    %s x %s\n", result.Regime, result.Against))
	sb.WriteString(fmt.Sprintf("Intervalo:  R$ %s a R$ %s\n", tf.formatCurrency(result.Min), tf.formatCurrency(result.Max)))
	sb.WriteString(fmt.Sprintf("Status:     %s\n", tf.formatStatus(result.Found)))
	sb.WriteString(fmt.Sprintf("Iterações:  %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergência: %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	if result.Found {
		sb.WriteString(fmt.Sprintf("Cruzamento em R$ %s\n", tf.formatCurrency(result.Value)))
		sb.WriteString(fmt.Sprintf("  %-20s R$ %s\n", result.Regime, tf.formatCurrency(result.RegimeTax)))
		sb.WriteString(fmt.Sprintf("  %-20s R$ %s\n", result.Against, tf.formatCurrency(result.AgainstTax)))
		if result.CheaperBelow != "" {
			sb.WriteString(fmt.Sprintf("Abaixo do ponto, %s é mais barato; acima, %s.\n",
				result.CheaperBelow, tf.other(result)))
		}
	} else if result.CheaperBelow != "" {
		sb.WriteString(fmt.Sprintf("%s é mais barato em todo o intervalo.\n", result.CheaperBelow))
	}

	return sb.String()
}

// FormatMulti formats the crossovers of one regime against all the others
func (tf *TableFormatter) FormatMulti(result *MultiResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("PONTOS DE EQUILÍBRIO: %s (%s)\n", result.Regime, result.Dimension.Label()))
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-18s %16s %-18s %-22s\n", "Contra", "Cruzamento", "Mais barato abaixo", "Status"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, r := range result.Results {
		value := "-"
		if r.Found {
			value = "R$ " + tf.formatShort(r.Value)
		}
		sb.WriteString(fmt.Sprintf("%-18s %16s %-18s %-22s\n",
			r.Against, value, r.CheaperBelow, tf.formatStatus(r.Found)))
	}
	return sb.String()
}

func (tf *TableFormatter) other(result *Result) string {
	if result.CheaperBelow == result.Regime {
		return string(result.Against)
	}
	return string(result.Regime)
}

func (tf *TableFormatter) formatStatus(found bool) string {
	if found {
		return "encontrado"
	}
	return "sem cruzamento no intervalo"
}

func (tf *TableFormatter) formatCurrency(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func (tf *TableFormatter) formatShort(amount decimal.Decimal) string {
	abs := amount.Abs()
	switch {
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1000000)):
		return amount.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1000)):
		return amount.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return amount.StringFixed(0)
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON for a single or multi result
func (jf *JSONFormatter) Format(v any) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}
