package model

// BulkOutcome is the per-document result of a bulk write. Err is nil when the destination
// accepted the document.
type BulkOutcome struct {
	Number uint64
	Err    error
}

// FailedOutcomes returns the outcomes that carry an error.
func FailedOutcomes(outcomes []BulkOutcome) []BulkOutcome {
	var failed []BulkOutcome
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}
