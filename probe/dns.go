package probe

import (
	"context"
	"fmt"
	"strings"

	dnsclient "github.com/miekg/dns"

	"github.com/jonwraymond/warden/watch"
)

// DNSConfig configures the DNS probe.
type DNSConfig struct {
	// Name is the record to resolve. Required.
	Name string

	// RecordType is the record type to query: A, AAAA, CNAME or MX.
	// Default: A.
	RecordType string

	// Server is the resolver to query, as host:port.
	// Default: 8.8.8.8:53.
	Server string

	// ExpectAnswers, when non-empty, requires at least one of these values
	// to appear in the answers.
	ExpectAnswers []string
}

// DNSWatcher checks that a DNS record resolves, optionally asserting on the
// answers.
type DNSWatcher struct {
	name   string
	config DNSConfig
}

// NewDNSWatcher creates a new DNS probe.
func NewDNSWatcher(name string, config DNSConfig) *DNSWatcher {
	if config.Server == "" {
		config.Server = "8.8.8.8:53"
	}
	if config.RecordType == "" {
		config.RecordType = "A"
	}
	return &DNSWatcher{name: name, config: config}
}

// Name returns the name of this probe.
func (w *DNSWatcher) Name() string {
	return w.name
}

// Execute queries the configured resolver once.
func (w *DNSWatcher) Execute(ctx context.Context) (watch.Outcome, error) {
	client := &dnsclient.Client{}
	msg := new(dnsclient.Msg)
	msg.SetQuestion(dnsclient.Fqdn(w.config.Name), recordType(w.config.RecordType))

	resp, rtt, err := client.ExchangeContext(ctx, msg, w.config.Server)
	if err != nil {
		return watch.Invalid(fmt.Sprintf("query %s: %v", w.config.Server, err)), nil
	}
	if resp.Rcode != dnsclient.RcodeSuccess {
		return watch.Invalid(fmt.Sprintf("dns rcode %s", dnsclient.RcodeToString[resp.Rcode])), nil
	}

	answers := answerStrings(resp.Answer)
	details := map[string]any{
		"answers":    answers,
		"latency_ms": rtt.Seconds() * 1000,
	}

	if len(w.config.ExpectAnswers) > 0 && !anyMatch(answers, w.config.ExpectAnswers) {
		return watch.Invalid(fmt.Sprintf("expected any of %v, got %v", w.config.ExpectAnswers, answers)).WithDetails(details), nil
	}
	return watch.Valid(fmt.Sprintf("%s resolves (%d answers)", w.config.Name, len(answers))).WithDetails(details), nil
}

func recordType(t string) uint16 {
	switch strings.ToUpper(t) {
	case "AAAA":
		return dnsclient.TypeAAAA
	case "CNAME":
		return dnsclient.TypeCNAME
	case "MX":
		return dnsclient.TypeMX
	default:
		return dnsclient.TypeA
	}
}

func answerStrings(rrs []dnsclient.RR) []string {
	values := make([]string, 0, len(rrs))
	for _, rr := range rrs {
		if a, ok := rr.(*dnsclient.A); ok {
			values = append(values, a.A.String())
		} else {
			values = append(values, rr.String())
		}
	}
	return values
}

func anyMatch(actual, expected []string) bool {
	for _, exp := range expected {
		for _, act := range actual {
			if act == exp {
				return true
			}
		}
	}
	return false
}
