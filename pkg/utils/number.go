package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// ParseFloat converte valores textuais da Graph API. Vazio vale 0 sem erro;
// NaN e Inf são rejeitados.
func ParseFloat(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("valor numérico não finito: %q", value)
	}

	return f, nil
}

// ParseInt aceita também valores com casas decimais ("12.0"), truncando
func ParseInt(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n, nil
	}

	f, err := ParseFloat(value)
	if err != nil {
		return 0, err
	}

	return int64(f), nil
}
