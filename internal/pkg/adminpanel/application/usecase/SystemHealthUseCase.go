package usecase

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/logger"
	adminpanel "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/adminpanel/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/adminpanel/persistence/repository/port"
)

// SystemHealthUseCase reads host and process health. Each probe is
// best-effort; a failed probe logs a warning and leaves its field zeroed.
type SystemHealthUseCase struct {
	Repo repository.AdminRepository
}

func NewSystemHealthUseCase(repo repository.AdminRepository) *SystemHealthUseCase {
	return &SystemHealthUseCase{Repo: repo}
}

func (uc *SystemHealthUseCase) Execute(ctx context.Context) *adminpanel.SystemStatus {
	status := &adminpanel.SystemStatus{
		T:          time.Now(),
		LogicalPro: runtime.NumCPU(),
		Goroutines: runtime.NumGoroutine(),
		GoVersion:  runtime.Version(),
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	status.HeapAlloc = ms.HeapAlloc

	percents, err := cpu.Percent(0, false)
	if err != nil {
		logger.Warningf("get cpu percent failed: %v", err)
	} else if len(percents) > 0 {
		status.CPUPercent = percents[0]
	}

	status.CPUCores, err = cpu.Counts(false)
	if err != nil {
		logger.Warningf("get cpu cores count failed: %v", err)
	}

	upTime, err := host.Uptime()
	if err != nil {
		logger.Warningf("get uptime failed: %v", err)
	} else {
		status.UptimeSec = upTime
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Warningf("get virtual memory failed: %v", err)
	} else {
		status.Mem.Used = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	swapInfo, err := mem.SwapMemory()
	if err != nil {
		logger.Warningf("get swap memory failed: %v", err)
	} else {
		status.Swap.Used = swapInfo.Used
		status.Swap.Total = swapInfo.Total
	}

	diskInfo, err := disk.Usage("/")
	if err != nil {
		logger.Warningf("get disk usage failed: %v", err)
	} else {
		status.Disk.Used = diskInfo.Used
		status.Disk.Total = diskInfo.Total
	}

	avgState, err := load.Avg()
	if err != nil {
		logger.Warningf("get load avg failed: %v", err)
	} else {
		status.Loads = []float64{avgState.Load1, avgState.Load5, avgState.Load15}
	}

	if uc.Repo != nil {
		status.DBReachable = uc.Repo.Ping(ctx) == nil
	}

	return status
}
