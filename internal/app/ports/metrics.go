package ports

type AdvisorMetrics interface {
	RecordAdvice(candidates int)
	RecordPick(resultCode string)
	RecordConflict()
	RecordFailure()
}
