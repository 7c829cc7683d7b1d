package snapshot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gmercad/EDSG/internal/domain"
)

const analystInstructions = "You are an expert economic analyst specializing in economic development analysis."

// buildPrompt renders the LLM context strictly from indicators that
// carry data. Years with null observations are skipped here (the model
// cannot analyze an absent number) but remain in the structured
// response untouched.
func buildPrompt(countryName string, year int, indicators []domain.Indicator) domain.Prompt {
	var b strings.Builder

	fmt.Fprintf(&b, `Generate a comprehensive economic development snapshot for %s based on the following data.

Please provide:
1. A brief overview of the country's economic situation
2. Analysis of key economic indicators
3. Trends and patterns in the data
4. Potential implications for economic development
5. A summary conclusion

`, countryName)

	if year > 0 {
		fmt.Fprintf(&b, "Target year: %d\n", year)
	}
	fmt.Fprintf(&b, "Economic data for %s:\n", countryName)

	for _, indicator := range indicators {
		fmt.Fprintf(&b, "\n%s (%s):\n", indicator.Name, indicator.Code)
		for _, value := range indicator.Values {
			if value.Value == nil {
				continue
			}
			fmt.Fprintf(&b, "  %s: %s", value.Year, strconv.FormatFloat(*value.Value, 'f', -1, 64))
			if value.Unit != "" {
				fmt.Fprintf(&b, " %s", value.Unit)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\nPlease provide a professional, data-driven analysis in 3-4 paragraphs.")

	return domain.Prompt{
		Instructions: analystInstructions,
		Input:        b.String(),
	}
}
