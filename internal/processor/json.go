package processor

import (
	"encoding/json"

	"github.com/dshills/edcore/internal/kernel"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// EncodeJSON serializes edit as a tagged JSON object `{"type": "...", ...}`
// for processors that live out-of-process (spec §6 "for processors that
// exchange JSON"). Field writes go through sjson rather than a single
// json.Marshal call, since the wire envelope tags the variant explicitly
// and each variant carries a different field set.
func EncodeJSON(edit ProcessingEdit) ([]byte, error) {
	var (
		buf []byte
		err error
	)
	set := func(path string, value any) {
		if err != nil {
			return
		}
		buf, err = sjson.SetBytes(buf, path, value)
	}

	switch c := edit.(type) {
	case ReplaceStyleLayer:
		set("type", "ReplaceStyleLayer")
		set("layer", c.Layer)
		set("intervals", c.Intervals)
	case ClearStyleLayer:
		set("type", "ClearStyleLayer")
		set("layer", c.Layer)
	case ReplaceFoldRegions:
		set("type", "ReplaceFoldRegions")
		set("regions", c.Regions)
	case ReplaceDecorations:
		set("type", "ReplaceDecorations")
		set("layer", c.Layer)
		set("decorations", c.Decorations)
	case ClearDecorations:
		set("type", "ClearDecorations")
		set("layer", c.Layer)
	case ReplaceDiagnostics:
		set("type", "ReplaceDiagnostics")
		set("diagnostics", c.Diagnostics)
	case ClearDiagnostics:
		set("type", "ClearDiagnostics")
	case ReplaceDocumentSymbols:
		set("type", "ReplaceDocumentSymbols")
		set("outline", c.Outline)
	default:
		return nil, &kernel.Error{Kind: kernel.ProcessorFailed, Message: "unrecognized ProcessingEdit variant"}
	}
	return buf, err
}

// DecodeJSON parses a tagged JSON object produced by EncodeJSON back into a
// ProcessingEdit. Each field is extracted with gjson and unmarshaled into
// its concrete Go type with encoding/json, since gjson's Result carries raw
// text rather than typed Go values for object/array fields.
func DecodeJSON(data []byte) (ProcessingEdit, error) {
	root := gjson.ParseBytes(data)
	typ := root.Get("type").String()

	raw := func(field string) []byte {
		r := root.Get(field)
		if !r.Exists() {
			return nil
		}
		return []byte(r.Raw)
	}

	switch typ {
	case "ReplaceStyleLayer":
		var e ReplaceStyleLayer
		if b := raw("layer"); b != nil {
			if err := json.Unmarshal(b, &e.Layer); err != nil {
				return nil, wrapDecodeErr(err)
			}
		}
		if b := raw("intervals"); b != nil {
			if err := json.Unmarshal(b, &e.Intervals); err != nil {
				return nil, wrapDecodeErr(err)
			}
		}
		return e, nil
	case "ClearStyleLayer":
		var e ClearStyleLayer
		if b := raw("layer"); b != nil {
			if err := json.Unmarshal(b, &e.Layer); err != nil {
				return nil, wrapDecodeErr(err)
			}
		}
		return e, nil
	case "ReplaceFoldRegions":
		var e ReplaceFoldRegions
		if b := raw("regions"); b != nil {
			if err := json.Unmarshal(b, &e.Regions); err != nil {
				return nil, wrapDecodeErr(err)
			}
		}
		return e, nil
	case "ReplaceDecorations":
		var e ReplaceDecorations
		if b := raw("layer"); b != nil {
			if err := json.Unmarshal(b, &e.Layer); err != nil {
				return nil, wrapDecodeErr(err)
			}
		}
		if b := raw("decorations"); b != nil {
			if err := json.Unmarshal(b, &e.Decorations); err != nil {
				return nil, wrapDecodeErr(err)
			}
		}
		return e, nil
	case "ClearDecorations":
		var e ClearDecorations
		if b := raw("layer"); b != nil {
			if err := json.Unmarshal(b, &e.Layer); err != nil {
				return nil, wrapDecodeErr(err)
			}
		}
		return e, nil
	case "ReplaceDiagnostics":
		var e ReplaceDiagnostics
		if b := raw("diagnostics"); b != nil {
			if err := json.Unmarshal(b, &e.Diagnostics); err != nil {
				return nil, wrapDecodeErr(err)
			}
		}
		return e, nil
	case "ClearDiagnostics":
		return ClearDiagnostics{}, nil
	case "ReplaceDocumentSymbols":
		var e ReplaceDocumentSymbols
		if b := raw("outline"); b != nil {
			if err := json.Unmarshal(b, &e.Outline); err != nil {
				return nil, wrapDecodeErr(err)
			}
		}
		return e, nil
	default:
		return nil, &kernel.Error{Kind: kernel.ProcessorFailed, Message: "unrecognized ProcessingEdit type " + typ}
	}
}

func wrapDecodeErr(err error) error {
	return &kernel.Error{Kind: kernel.ProcessorFailed, Message: "decoding ProcessingEdit", Err: err}
}
