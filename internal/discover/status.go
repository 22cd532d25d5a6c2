package discover

import (
	"log"
	"time"
)

// ProcessStatus is one matched process in a read-only inspection, with its
// own RSS rather than the aggregate.
type ProcessStatus struct {
	PID       int32     `json:"pid"`
	RSS       uint64    `json:"rss_bytes"`
	StartedAt time.Time `json:"started_at,omitempty"`
}

// Snapshot lists every process matching the name together with its current
// RSS. Used by the status command; takes no action on the processes.
func (s *ProcSource) Snapshot(name string) ([]ProcessStatus, error) {
	handles, err := s.Find(name)
	if err != nil {
		return nil, err
	}

	statuses := make([]ProcessStatus, 0, len(handles))
	for _, h := range handles {
		st := ProcessStatus{PID: h.PID}
		if h.StartedAt != 0 {
			st.StartedAt = time.UnixMilli(h.StartedAt)
		}
		rss, err := s.memoryOf(h.PID)
		if err != nil {
			log.Printf("Cannot read memory of PID %d: %v", h.PID, err)
		} else {
			st.RSS = rss
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}
