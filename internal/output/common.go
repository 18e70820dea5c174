package output

import "strings"

// TSVHeader is the canonical header row for tabular spike outputs.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "electrode\ttime\tamplitude\tthreshold\tconductance"

// RunsHeader is the canonical header row for run listings.
const RunsHeader = "id\tsource\tmin_sep\tmin_events\tmax_jitter\tspikes\tflagged\tcreated_at"

// HeaderFor renders the spike header with the given field separator.
func HeaderFor(sep byte) string {
	if sep == '\t' {
		return TSVHeader
	}
	return strings.ReplaceAll(TSVHeader, "\t", string(sep))
}

// RunsHeaderFor renders the runs header with the given field separator.
func RunsHeaderFor(sep byte) string {
	if sep == '\t' {
		return RunsHeader
	}
	return strings.ReplaceAll(RunsHeader, "\t", string(sep))
}
