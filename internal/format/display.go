package format

import (
	"fmt"
	"strings"

	"palchi-cli/internal/model"
)

// DateTime renders a wire timestamp as "02/01/2006 15:04" (Italian order).
// Nil or zero values render empty; optional fields stay blank end to end.
func DateTime(dt *model.DateTime) string {
	if dt == nil || dt.IsZero() {
		return ""
	}
	return dt.Format("02/01/2006 15:04")
}

// Date renders a wire timestamp's date part as "02/01/2006".
func Date(dt *model.DateTime) string {
	if dt == nil || dt.IsZero() {
		return ""
	}
	return dt.Format("02/01/2006")
}

// Euro renders an amount as "€ 1234,56". Thousands separators are left out;
// the amounts here are small.
func Euro(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	return "€ " + strings.Replace(s, ".", ",", 1)
}

// SquareMeters renders a stage size as "12,5 m²".
func SquareMeters(v float64) string {
	s := fmt.Sprintf("%g", v)
	return strings.Replace(s, ".", ",", 1) + " m²"
}
