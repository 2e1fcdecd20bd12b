package actions

import "testing"

func TestParseStatusSignal(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		id      string
		status  string
		ok      bool
	}{
		{name: "plain signal", payload: "42:contacted", id: "42", status: "contacted", ok: true},
		{name: "status with colons", payload: "7:needs:review", id: "7", status: "needs:review", ok: true},
		{name: "no separator", payload: "contacted"},
		{name: "empty id", payload: ":contacted"},
		{name: "empty status", payload: "42:"},
		{name: "bare separator", payload: ":"},
		{name: "empty payload", payload: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, status, ok := parseStatusSignal(tc.payload)
			if ok != tc.ok {
				t.Fatalf("parseStatusSignal(%q) ok = %v, want %v", tc.payload, ok, tc.ok)
			}
			if id != tc.id || status != tc.status {
				t.Errorf("parseStatusSignal(%q) = (%q, %q), want (%q, %q)",
					tc.payload, id, status, tc.id, tc.status)
			}
		})
	}
}
