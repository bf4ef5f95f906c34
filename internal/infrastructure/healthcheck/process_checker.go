package healthcheck

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessChecker проверяет наличие запущенного процесса по имени
type ProcessChecker struct{}

// NewProcessChecker создает новый Process checker
func NewProcessChecker() *ProcessChecker {
	return &ProcessChecker{}
}

// Check ищет процесс с указанным именем в таблице процессов
func (c *ProcessChecker) Check(ctx context.Context, processName string) (bool, float64, string) {
	start := time.Now()

	processes, err := process.ProcessesWithContext(ctx)
	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil {
		return false, elapsed, fmt.Sprintf("failed to list processes: %v", err)
	}

	for _, p := range processes {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if strings.EqualFold(name, processName) {
			return true, float64(time.Since(start).Milliseconds()), ""
		}
	}

	return false, float64(time.Since(start).Milliseconds()), fmt.Sprintf("process %q not found", processName)
}
