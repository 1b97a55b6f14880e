package services

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatPolicy controls how metric values are displayed. Raw values are
// always kept next to the formatted ones.
type FormatPolicy struct {
	R2Decimals    int
	ErrorDecimals int
	Language      language.Tag
}

// DefaultFormatPolicy renders R2 with three decimals and RMSE/MAE as whole
// numbers with thousands separators.
func DefaultFormatPolicy() FormatPolicy {
	return FormatPolicy{R2Decimals: 3, ErrorDecimals: 0, Language: language.English}
}

func (p FormatPolicy) printer() *message.Printer {
	tag := p.Language
	if tag == language.Und {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// R2 formats a coefficient of determination.
func (p FormatPolicy) R2(v float64) string {
	return p.number(v, p.R2Decimals)
}

// Error formats an RMSE or MAE value in target units.
func (p FormatPolicy) Error(v float64) string {
	return p.number(v, p.ErrorDecimals)
}

func (p FormatPolicy) number(v float64, decimals int) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if decimals < 0 {
		decimals = 0
	}
	return p.printer().Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}
