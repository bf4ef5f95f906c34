package config

import (
	"strings"
	"testing"
	"time"
)

func TestParseRules_Valid(t *testing.T) {
	data := []byte(`
alert_rules:
  high_cpu_usage:
    metric: cpu.usage
    condition: ">"
    threshold: 85
    severity: WARNING
    min_duration: 60

services:
  - name: internal-api
    type: http
    url: http://localhost:8081/healthz
    timeout: 5s
  - name: postgres
    type: port
    host: localhost
    port: 5432
`)

	file, warnings, err := ParseRules(data)
	if err != nil {
		t.Fatalf("ParseRules() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}

	rule, ok := file.AlertRules["high_cpu_usage"]
	if !ok {
		t.Fatalf("expected high_cpu_usage rule")
	}
	if rule.Metric != "cpu.usage" || rule.Condition != ">" || rule.Threshold != 85 {
		t.Fatalf("unexpected rule fields: %+v", rule)
	}
	if rule.MinDuration != 60 {
		t.Fatalf("unexpected min_duration: %d", rule.MinDuration)
	}

	if len(file.Services) != 2 {
		t.Fatalf("expected 2 services, got %d", len(file.Services))
	}
	if file.Services[0].ParsedTimeout() != 5*time.Second {
		t.Fatalf("unexpected timeout: %s", file.Services[0].ParsedTimeout())
	}
}

func TestParseRules_InvalidEntriesSkippedWithWarnings(t *testing.T) {
	data := []byte(`
alert_rules:
  bad_condition:
    metric: cpu.usage
    condition: ">="
    threshold: 85
    severity: WARNING
  bad_severity:
    metric: cpu.usage
    condition: ">"
    threshold: 85
    severity: URGENT
  good_rule:
    metric: cpu.usage
    condition: ">"
    threshold: 85
    severity: CRITICAL

services:
  - name: no-url
    type: http
  - name: bad-type
    type: icmp
  - name: good-service
    type: process
    process_name: nginx
`)

	file, warnings, err := ParseRules(data)
	if err != nil {
		t.Fatalf("ParseRules() error = %v", err)
	}

	if len(file.AlertRules) != 1 {
		t.Fatalf("expected 1 valid rule, got %d", len(file.AlertRules))
	}
	if _, ok := file.AlertRules["good_rule"]; !ok {
		t.Fatalf("expected good_rule kept")
	}

	if len(file.Services) != 1 {
		t.Fatalf("expected 1 valid service, got %d", len(file.Services))
	}
	if file.Services[0].Name != "good-service" {
		t.Fatalf("unexpected kept service: %s", file.Services[0].Name)
	}

	if len(warnings) != 4 {
		t.Fatalf("expected 4 warnings, got %d: %v", len(warnings), warnings)
	}
	joined := strings.Join(warnings, "; ")
	for _, want := range []string{"bad_condition", "bad_severity", "no-url", "bad-type"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected warning about %s, got %v", want, warnings)
		}
	}
}

func TestParseRules_MalformedYAML(t *testing.T) {
	if _, _, err := ParseRules([]byte("alert_rules: [not a map")); err == nil {
		t.Fatalf("expected parse error for malformed yaml")
	}
}

func TestServiceConfig_ParsedTimeoutDefaults(t *testing.T) {
	tests := []struct {
		name    string
		timeout string
		want    time.Duration
	}{
		{"empty falls back", "", 10 * time.Second},
		{"invalid falls back", "soon", 10 * time.Second},
		{"negative falls back", "-5s", 10 * time.Second},
		{"valid parsed", "3s", 3 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := ServiceConfig{Timeout: tt.timeout}
			if got := svc.ParsedTimeout(); got != tt.want {
				t.Fatalf("ParsedTimeout() = %s, want %s", got, tt.want)
			}
		})
	}
}
