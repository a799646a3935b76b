package types

// LogData is a mapping from metric or field name to a loggable value.
//
// Supported value kinds are float64, []float64, int, int64, and string.
// A LogData is produced fresh per log call; ownership transfers to the
// destination only for the duration of the LogData call. Destinations that
// retain data across the call boundary must Clone it first.
type LogData map[string]any

// Clone returns a deep copy of the data, copying []float64 values.
//
// Destinations with background workers call this before handing an entry
// off the training goroutine.
func (d LogData) Clone() LogData {
	if d == nil {
		return nil
	}

	clone := make(LogData, len(d))
	for k, v := range d {
		if vs, ok := v.([]float64); ok {
			clone[k] = append([]float64(nil), vs...)
			continue
		}
		clone[k] = v
	}

	return clone
}
