package commands

// Recorder receives the outcome of work-order operations for monitoring.
type Recorder interface {
	// RecordSplit counts one committed reconciliation and the tasks it changed.
	RecordSplit(created, deleted int)
	// RecordSplitFailure counts a reconciliation that was rolled back.
	RecordSplitFailure()
	// RecordRejection counts a request refused by a business rule.
	RecordRejection(operation string)
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) RecordSplit(int, int)   {}
func (NopRecorder) RecordSplitFailure()    {}
func (NopRecorder) RecordRejection(string) {}
