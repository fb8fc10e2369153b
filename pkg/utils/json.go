package utils

import (
	"bytes"
	stdjson "encoding/json"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson formata qualquer valor (ou []byte já serializado) com indentação.
// A indentação fica com encoding/json porque o jsoniter só aceita espaços.
func PrettyJson(in any) string {
	raw, ok := in.([]byte)
	if !ok {
		var err error
		raw, err = json.Marshal(in)
		if err != nil {
			return ""
		}
	}

	var out bytes.Buffer
	if err := stdjson.Indent(&out, raw, "", "\t"); err != nil {
		return string(raw)
	}

	return out.String()
}

// CompactJson serializa em uma linha, usado na saída tabular do CLI
func CompactJson(in any) string {
	out, err := json.Marshal(in)
	if err != nil {
		return ""
	}

	return string(out)
}
