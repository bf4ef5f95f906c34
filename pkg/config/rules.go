package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AlertRuleConfig описывает одно пороговое правило из файла конфигурации
type AlertRuleConfig struct {
	Metric      string  `yaml:"metric"`
	Condition   string  `yaml:"condition"`
	Threshold   float64 `yaml:"threshold"`
	Severity    string  `yaml:"severity"`
	MinDuration int     `yaml:"min_duration"` // секунды, 0 = срабатывание на первом тике
}

// ServiceConfig описывает один сервис для активных health-проверок
type ServiceConfig struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"` // http | port | process
	URL         string `yaml:"url"`
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	ProcessName string `yaml:"process_name"`
	Timeout     string `yaml:"timeout"` // duration, по умолчанию 10s
}

// RulesFile — корневая структура YAML файла правил
type RulesFile struct {
	AlertRules map[string]AlertRuleConfig `yaml:"alert_rules"`
	Services   []ServiceConfig            `yaml:"services"`
}

// ParsedTimeout возвращает таймаут сервиса с дефолтом 10s
func (s ServiceConfig) ParsedTimeout() time.Duration {
	if s.Timeout == "" {
		return 10 * time.Second
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// LoadRulesFile читает и валидирует файл правил.
// Невалидные правила и сервисы пропускаются (возвращаются warnings),
// движок продолжает работу с оставшимися.
func LoadRulesFile(path string) (*RulesFile, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules разбирает YAML содержимое файла правил
func ParseRules(data []byte) (*RulesFile, []string, error) {
	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	warnings := make([]string, 0)

	valid := make(map[string]AlertRuleConfig, len(file.AlertRules))
	for name, rule := range file.AlertRules {
		if err := validateRule(name, rule); err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		valid[name] = rule
	}
	file.AlertRules = valid

	services := make([]ServiceConfig, 0, len(file.Services))
	for _, svc := range file.Services {
		if err := validateService(svc); err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		services = append(services, svc)
	}
	file.Services = services

	return &file, warnings, nil
}

func validateRule(name string, rule AlertRuleConfig) error {
	if name == "" {
		return fmt.Errorf("rule with empty name skipped")
	}
	if rule.Metric == "" {
		return fmt.Errorf("rule %q: metric is required", name)
	}
	switch rule.Condition {
	case ">", "<", "==", "!=":
	default:
		return fmt.Errorf("rule %q: unsupported condition %q", name, rule.Condition)
	}
	switch rule.Severity {
	case "INFO", "WARNING", "CRITICAL":
	default:
		return fmt.Errorf("rule %q: unsupported severity %q", name, rule.Severity)
	}
	if rule.MinDuration < 0 {
		return fmt.Errorf("rule %q: min_duration cannot be negative", name)
	}
	return nil
}

func validateService(svc ServiceConfig) error {
	if svc.Name == "" {
		return fmt.Errorf("service with empty name skipped")
	}
	switch svc.Type {
	case "http":
		if svc.URL == "" {
			return fmt.Errorf("service %q: url is required for http check", svc.Name)
		}
	case "port":
		if svc.Port <= 0 || svc.Port > 65535 {
			return fmt.Errorf("service %q: valid port is required for port check", svc.Name)
		}
	case "process":
		if svc.ProcessName == "" {
			return fmt.Errorf("service %q: process_name is required for process check", svc.Name)
		}
	default:
		return fmt.Errorf("service %q: unsupported check type %q", svc.Name, svc.Type)
	}
	return nil
}
