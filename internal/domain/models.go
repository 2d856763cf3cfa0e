package domain

import "time"

// Snapshot is one fact-collection pass over the host.
type Snapshot struct {
	Hostname    string         `json:"hostname"`
	CollectedAt time.Time      `json:"collected_at"`
	Facts       map[string]any `json:"facts"`
}

// Fact is a single named value inside a snapshot.
type Fact struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}
