package diag

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/xbodwf/ljc/internal/token"
)

// MarshalJSON serializes the list to the JSON array shape IDE tooling
// expects: [{severity, code, message, file, line, column}, ...]. Built
// incrementally with sjson so field order is stable and the construction
// never requires an intermediate map[string]any.
func (l List) MarshalJSON() ([]byte, error) {
	json := "[]"
	var err error
	for i, d := range l {
		prefix := fmt.Sprintf("%d", i)
		json, err = sjson.Set(json, prefix+".severity", d.Severity.String())
		if err != nil {
			return nil, err
		}
		json, err = sjson.Set(json, prefix+".code", string(d.Code))
		if err != nil {
			return nil, err
		}
		json, err = sjson.Set(json, prefix+".message", d.Message)
		if err != nil {
			return nil, err
		}
		json, err = sjson.Set(json, prefix+".file", d.File)
		if err != nil {
			return nil, err
		}
		json, err = sjson.Set(json, prefix+".line", d.Pos.Line)
		if err != nil {
			return nil, err
		}
		json, err = sjson.Set(json, prefix+".column", d.Pos.Column)
		if err != nil {
			return nil, err
		}
	}
	return []byte(json), nil
}

// ParseJSON reads back a diagnostic list previously produced by
// MarshalJSON, using gjson for read access. The `ljc compile --json` CLI
// only writes MarshalJSON output; the round trip is exercised by this
// package's own tests.
func ParseJSON(data []byte) (List, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("diag: invalid JSON")
	}

	result := gjson.ParseBytes(data)
	if !result.IsArray() {
		return nil, fmt.Errorf("diag: expected a JSON array")
	}

	var out List
	for _, item := range result.Array() {
		sev := Warning
		if item.Get("severity").String() == "error" {
			sev = Error
		}
		out = append(out, Diagnostic{
			Severity: sev,
			Code:     Code(item.Get("code").String()),
			Message:  item.Get("message").String(),
			File:     item.Get("file").String(),
			Pos: token.Position{
				Line:   int(item.Get("line").Int()),
				Column: int(item.Get("column").Int()),
			},
		})
	}
	return out, nil
}
