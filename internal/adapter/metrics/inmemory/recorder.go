package inmemory

import "sync"

type Snapshot struct {
	AdviceTotal      uint64            `json:"advice_total"`
	AdviceCandidates uint64            `json:"advice_candidates"`
	PickTotal        uint64            `json:"pick_total"`
	PickConflict     uint64            `json:"pick_conflict"`
	PickFailure      uint64            `json:"pick_failure"`
	ByResultCode     map[string]uint64 `json:"by_result_code"`
}

type Recorder struct {
	mu         sync.Mutex
	advice     uint64
	candidates uint64
	picks      uint64
	conflict   uint64
	failure    uint64
	byResult   map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byResult: map[string]uint64{},
	}
}

func (r *Recorder) RecordAdvice(candidates int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.advice++
	if candidates > 0 {
		r.candidates += uint64(candidates)
	}
}

func (r *Recorder) RecordPick(resultCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.picks++
	r.byResult[resultCode]++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		AdviceTotal:      r.advice,
		AdviceCandidates: r.candidates,
		PickTotal:        r.picks,
		PickConflict:     r.conflict,
		PickFailure:      r.failure,
		ByResultCode:     make(map[string]uint64, len(r.byResult)),
	}
	for k, v := range r.byResult {
		out.ByResultCode[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
