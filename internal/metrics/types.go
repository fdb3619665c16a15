package metrics

// Memory holds virtual memory usage in megabytes
type Memory struct {
	UsedMB      float64 `json:"used_mb"`
	TotalMB     float64 `json:"total_mb"`
	AvailableMB float64 `json:"available_mb"`
	Percent     float64 `json:"percent"`
}

// Disk holds filesystem usage in gigabytes
type Disk struct {
	UsedGB  float64 `json:"used_gb"`
	FreeGB  float64 `json:"free_gb"`
	TotalGB float64 `json:"total_gb"`
	Percent float64 `json:"percent"`
}

// Snapshot is computed fresh per request. Numeric fields are nil when the
// provider is unavailable or the reading failed.
type Snapshot struct {
	UptimeSeconds    int64    `json:"uptime_seconds"`
	MetricsAvailable bool     `json:"metrics_available"`
	CPUPercent       *float64 `json:"cpu_percent,omitempty"`
	CPUCount         *int     `json:"cpu_count,omitempty"`
	Memory           *Memory  `json:"memory,omitempty"`
	Disk             *Disk    `json:"disk,omitempty"`
	NetworkBytesSent *uint64  `json:"network_bytes_sent,omitempty"`
	NetworkBytesRecv *uint64  `json:"network_bytes_recv,omitempty"`
	Error            string   `json:"error,omitempty"`
}
