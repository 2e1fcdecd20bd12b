package actions

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		invoke bool
	}{
		{name: "yes short", input: "y\n", invoke: true},
		{name: "yes full", input: "yes\n", invoke: true},
		{name: "yes russian", input: "да\n", invoke: true},
		{name: "uppercase", input: "Y\n", invoke: true},
		{name: "no", input: "n\n", invoke: false},
		{name: "empty line", input: "\n", invoke: false},
		{name: "garbage", input: "whatever\n", invoke: false},
		{name: "eof", input: "", invoke: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			invoked := false
			var out bytes.Buffer

			accepted := Confirm(strings.NewReader(tc.input), &out, "Удалить?", func() {
				invoked = true
			})

			if invoked != tc.invoke {
				t.Errorf("action invoked = %v, want %v", invoked, tc.invoke)
			}
			if accepted != tc.invoke {
				t.Errorf("accepted = %v, want %v", accepted, tc.invoke)
			}
			if !strings.Contains(out.String(), "Удалить?") {
				t.Errorf("prompt not written: %q", out.String())
			}
		})
	}
}
