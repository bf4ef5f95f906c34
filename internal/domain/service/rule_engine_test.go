package service

import (
	"strings"
	"testing"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/domain/entity"
	"github.com/dreschagin/monitoring-engine/internal/domain/valueobject"
)

type fakeSnapshot struct {
	values map[string]float64
}

func (s *fakeSnapshot) Latest(name string) (*entity.Metric, bool) {
	value, ok := s.values[name]
	if !ok {
		return nil, false
	}
	metric, err := entity.NewMetric(valueobject.System, name, value, "%", "test-host", time.Now().UTC())
	if err != nil {
		panic(err)
	}
	return metric, true
}

func mustRule(t *testing.T, name, metric string, condition valueobject.Condition, threshold float64, minDuration time.Duration) entity.AlertRule {
	t.Helper()
	rule, err := entity.NewAlertRule(name, metric, condition, threshold, valueobject.SeverityWarning, minDuration)
	if err != nil {
		t.Fatalf("NewAlertRule() error = %v", err)
	}
	return rule
}

func TestRuleEngine_Conditions(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		condition valueobject.Condition
		threshold float64
		value     float64
		fires     bool
	}{
		{"greater fires", valueobject.ConditionGreater, 85, 90, true},
		{"greater at threshold does not fire", valueobject.ConditionGreater, 85, 85, false},
		{"less fires", valueobject.ConditionLess, 10, 5, true},
		{"less above threshold does not fire", valueobject.ConditionLess, 10, 15, false},
		{"equal fires", valueobject.ConditionEqual, 0, 0, true},
		{"not equal fires", valueobject.ConditionNotEqual, 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewRuleEngine()
			rule := mustRule(t, "test_rule", "cpu.usage", tt.condition, tt.threshold, 0)
			snapshot := &fakeSnapshot{values: map[string]float64{"cpu.usage": tt.value}}

			triggers := engine.Evaluate([]entity.AlertRule{rule}, snapshot, now)
			if fired := len(triggers) == 1; fired != tt.fires {
				t.Fatalf("expected fires=%v, got %d triggers", tt.fires, len(triggers))
			}
		})
	}
}

func TestRuleEngine_TriggerFields(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	engine := NewRuleEngine()
	rule := mustRule(t, "high_cpu_usage", "cpu.usage", valueobject.ConditionGreater, 85, 0)
	snapshot := &fakeSnapshot{values: map[string]float64{"cpu.usage": 92.5}}

	triggers := engine.Evaluate([]entity.AlertRule{rule}, snapshot, now)
	if len(triggers) != 1 {
		t.Fatalf("expected 1 trigger, got %d", len(triggers))
	}

	trigger := triggers[0]
	if trigger.AlertID != "high_cpu_usage_cpu.usage" {
		t.Fatalf("unexpected alert id: %s", trigger.AlertID)
	}
	if trigger.CurrentValue != 92.5 {
		t.Fatalf("unexpected current value: %f", trigger.CurrentValue)
	}
	if trigger.Threshold != 85 {
		t.Fatalf("unexpected threshold: %f", trigger.Threshold)
	}
	if trigger.Source != "test-host" {
		t.Fatalf("unexpected source: %s", trigger.Source)
	}
	if !strings.Contains(trigger.Message, "92.5") {
		t.Fatalf("expected message to contain value, got %q", trigger.Message)
	}
}

func TestRuleEngine_MissingMetricSkipped(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	engine := NewRuleEngine()
	rule := mustRule(t, "high_cpu_usage", "cpu.usage", valueobject.ConditionGreater, 85, 0)
	snapshot := &fakeSnapshot{values: map[string]float64{}}

	triggers := engine.Evaluate([]entity.AlertRule{rule}, snapshot, now)
	if len(triggers) != 0 {
		t.Fatalf("expected no triggers for missing metric, got %d", len(triggers))
	}
}

func TestRuleEngine_MinDurationWindow(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	engine := NewRuleEngine()
	rule := mustRule(t, "high_cpu_usage", "cpu.usage", valueobject.ConditionGreater, 85, time.Minute)
	violating := &fakeSnapshot{values: map[string]float64{"cpu.usage": 95}}

	// Первый тик нарушения только запоминает момент
	if got := engine.Evaluate([]entity.AlertRule{rule}, violating, start); len(got) != 0 {
		t.Fatalf("expected no trigger on first violation tick, got %d", len(got))
	}

	// Условие держится, но окно еще не набрано
	if got := engine.Evaluate([]entity.AlertRule{rule}, violating, start.Add(30*time.Second)); len(got) != 0 {
		t.Fatalf("expected no trigger before min_duration elapses, got %d", len(got))
	}

	// Окно набрано — срабатывание
	if got := engine.Evaluate([]entity.AlertRule{rule}, violating, start.Add(time.Minute)); len(got) != 1 {
		t.Fatalf("expected trigger after min_duration, got %d", len(got))
	}
}

func TestRuleEngine_MinDurationResetOnRecovery(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	engine := NewRuleEngine()
	rule := mustRule(t, "high_cpu_usage", "cpu.usage", valueobject.ConditionGreater, 85, time.Minute)
	violating := &fakeSnapshot{values: map[string]float64{"cpu.usage": 95}}
	recovered := &fakeSnapshot{values: map[string]float64{"cpu.usage": 50}}

	engine.Evaluate([]entity.AlertRule{rule}, violating, start)

	// Восстановление сбрасывает окно
	engine.Evaluate([]entity.AlertRule{rule}, recovered, start.Add(30*time.Second))

	// Новое нарушение должно набрать окно заново
	if got := engine.Evaluate([]entity.AlertRule{rule}, violating, start.Add(time.Minute)); len(got) != 0 {
		t.Fatalf("expected window reset after recovery, got %d triggers", len(got))
	}
	if got := engine.Evaluate([]entity.AlertRule{rule}, violating, start.Add(2*time.Minute)); len(got) != 1 {
		t.Fatalf("expected trigger after window re-elapses, got %d", len(got))
	}
}

func TestRuleEngine_MinDurationResetOnMissingMetric(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	engine := NewRuleEngine()
	rule := mustRule(t, "high_cpu_usage", "cpu.usage", valueobject.ConditionGreater, 85, time.Minute)
	violating := &fakeSnapshot{values: map[string]float64{"cpu.usage": 95}}
	empty := &fakeSnapshot{values: map[string]float64{}}

	engine.Evaluate([]entity.AlertRule{rule}, violating, start)
	engine.Evaluate([]entity.AlertRule{rule}, empty, start.Add(30*time.Second))

	if got := engine.Evaluate([]entity.AlertRule{rule}, violating, start.Add(90*time.Second)); len(got) != 0 {
		t.Fatalf("expected window reset after metric gap, got %d triggers", len(got))
	}
}

func TestRuleEngine_PrimedWindowFiresImmediately(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	engine := NewRuleEngine()
	rule := mustRule(t, "high_cpu_usage", "cpu.usage", valueobject.ConditionGreater, 85, time.Minute)
	violating := &fakeSnapshot{values: map[string]float64{"cpu.usage": 95}}
	recovered := &fakeSnapshot{values: map[string]float64{"cpu.usage": 50}}

	engine.Prime([]string{rule.AlertID()})

	// Праймленное окно считается набранным: срабатывание на первом же тике
	if got := engine.Evaluate([]entity.AlertRule{rule}, violating, start); len(got) != 1 {
		t.Fatalf("expected immediate trigger for primed window, got %d", len(got))
	}
	if got := engine.Evaluate([]entity.AlertRule{rule}, violating, start.Add(30*time.Second)); len(got) != 1 {
		t.Fatalf("expected trigger while condition holds, got %d", len(got))
	}

	// Восстановление снимает прайминг — новое нарушение набирает окно заново
	engine.Evaluate([]entity.AlertRule{rule}, recovered, start.Add(time.Minute))
	if got := engine.Evaluate([]entity.AlertRule{rule}, violating, start.Add(90*time.Second)); len(got) != 0 {
		t.Fatalf("expected window to restart after recovery, got %d triggers", len(got))
	}
	if got := engine.Evaluate([]entity.AlertRule{rule}, violating, start.Add(150*time.Second)); len(got) != 1 {
		t.Fatalf("expected trigger after window re-elapses, got %d", len(got))
	}
}

func TestRuleEngine_IndependentRules(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	engine := NewRuleEngine()
	cpuRule := mustRule(t, "high_cpu_usage", "cpu.usage", valueobject.ConditionGreater, 85, 0)
	memRule := mustRule(t, "high_memory_usage", "memory.usage", valueobject.ConditionGreater, 90, 0)
	snapshot := &fakeSnapshot{values: map[string]float64{
		"cpu.usage":    95,
		"memory.usage": 50,
	}}

	triggers := engine.Evaluate([]entity.AlertRule{cpuRule, memRule}, snapshot, now)
	if len(triggers) != 1 {
		t.Fatalf("expected only cpu rule to fire, got %d triggers", len(triggers))
	}
	if triggers[0].RuleName != "high_cpu_usage" {
		t.Fatalf("unexpected rule fired: %s", triggers[0].RuleName)
	}
}
