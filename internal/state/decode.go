package state

import (
	"encoding/json"
	"fmt"
)

// Shared edit-parameter keys. The edit-parameter store is a free-form keyed
// map; these are the keys the engine itself reads and clears.
const (
	ParamAnnotationSel  = "annotationSel"
	ParamChordSel       = "chordSel"
	ParamSelectedMarker = "selectedMarker"
)

// FeatureFromMap decodes a generic map (as produced by YAML scenario files
// or a JSON wire payload) into the typed sub-state for the given channel.
//
// Unknown map fields are dropped silently; a missing or unknown status is
// not an error here - dispatch ignores statuses it does not recognize.
func FeatureFromMap(key FeatureKey, fields map[string]any) (any, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("unknown feature key %q", key)
	}

	raw, err := json.Marshal(normalizeKeys(fields))
	if err != nil {
		return nil, fmt.Errorf("encode %s fields: %w", key, err)
	}

	decode := func(dst any) (any, error) {
		if err := json.Unmarshal(raw, dst); err != nil {
			return nil, fmt.Errorf("decode %s sub-state: %w", key, err)
		}
		return dst, nil
	}

	switch key {
	case FeatureAnalysis:
		return decode(&AnalysisState{})
	case FeatureRecording:
		return decode(&RecordingState{})
	case FeatureTrackEdit:
		return decode(&TrackEditState{})
	case FeatureChordEdit:
		return decode(&ChordEditState{})
	case FeatureCancelSave:
		return decode(&CancelSaveState{})
	}
	return nil, fmt.Errorf("unknown feature key %q", key)
}

// normalizeKeys rewrites nested map[any]any values (a YAML decoding
// artifact) into map[string]any so the JSON round trip succeeds.
func normalizeKeys(v any) any {
	switch m := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = normalizeKeys(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprintf("%v", k)] = normalizeKeys(val)
		}
		return out
	case []any:
		out := make([]any, len(m))
		for i, val := range m {
			out[i] = normalizeKeys(val)
		}
		return out
	default:
		return v
	}
}
