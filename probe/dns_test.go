package probe

import (
	"testing"

	dnsclient "github.com/miekg/dns"
)

func TestNewDNSWatcher_Defaults(t *testing.T) {
	w := NewDNSWatcher("resolver", DNSConfig{Name: "example.com"})

	if w.Name() != "resolver" {
		t.Errorf("Name() = %q, want 'resolver'", w.Name())
	}
	if w.config.Server != "8.8.8.8:53" {
		t.Errorf("Server = %q, want default 8.8.8.8:53", w.config.Server)
	}
	if w.config.RecordType != "A" {
		t.Errorf("RecordType = %q, want A", w.config.RecordType)
	}
}

func TestRecordType(t *testing.T) {
	tests := []struct {
		in   string
		want uint16
	}{
		{"A", dnsclient.TypeA},
		{"a", dnsclient.TypeA},
		{"AAAA", dnsclient.TypeAAAA},
		{"cname", dnsclient.TypeCNAME},
		{"MX", dnsclient.TypeMX},
		{"unknown", dnsclient.TypeA},
	}

	for _, tt := range tests {
		if got := recordType(tt.in); got != tt.want {
			t.Errorf("recordType(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAnyMatch(t *testing.T) {
	answers := []string{"93.184.216.34", "93.184.216.35"}

	if !anyMatch(answers, []string{"93.184.216.34"}) {
		t.Error("anyMatch should find an exact answer")
	}
	if anyMatch(answers, []string{"10.0.0.1"}) {
		t.Error("anyMatch should not match an absent answer")
	}
	if anyMatch(answers, nil) {
		t.Error("anyMatch with no expectations should be false")
	}
}
