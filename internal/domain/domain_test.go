package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSnapshot_JSONRoundTrip(t *testing.T) {
	want := Snapshot{
		Hostname:    "pe-node-01",
		CollectedAt: time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC),
		Facts: map[string]any{
			"role":                "primary",
			"filesystem_free_opt": float64(40),
			"service_pe-puppetdb": true,
		},
	}
	b, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Snapshot
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.Hostname != want.Hostname || !got.CollectedAt.Equal(want.CollectedAt) {
		t.Fatalf("mismatch after round-trip:\nwant=%+v\ngot =%+v", want, got)
	}
	if got.Facts["role"] != "primary" {
		t.Fatalf("facts lost in round-trip: %+v", got.Facts)
	}
}
