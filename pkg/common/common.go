package common

const (
	// FIOBinary is the default fio executable looked up on PATH
	FIOBinary = "fio"
	// FIOOutputFormatArg selects fio's JSON report format
	FIOOutputFormatArg = "--output-format=json"
	// FIOStatusIntervalArg makes fio emit a status report every second
	FIOStatusIntervalArg = "--status-interval=1"
	// UnbufferedEnv is appended to the fio environment to discourage output buffering
	UnbufferedEnv = "PYTHONUNBUFFERED=1"

	// DefaultInfluxURL is the InfluxDB endpoint used when none is configured
	DefaultInfluxURL = "http://influxdb:8086"
	// MeasurementName is the measurement every sample is written to
	MeasurementName = "FIO"
	// RunIDTagKey is the tag key identifying the run
	RunIDTagKey = "runId"
	// RunIDTagValue is the fixed run identifier
	RunIDTagValue = "fio_run"
	// HostnameTagKey is the tag key identifying the host
	HostnameTagKey = "hostname"
	// DefaultHostname is used when the host name cannot be resolved
	DefaultHostname = "localhost"
	// ReadBandwidthField holds the read bandwidth in MB/s
	ReadBandwidthField = "Read_bandwidth_(MB/s)"
	// CompletionLatencyField holds the mean completion latency in ms
	CompletionLatencyField = "Completion_Latency_ms"
	// NotApplicable is written in place of a missing completion latency
	NotApplicable = "N/A"

	// ConfigMapJobPrefix marks a job file reference that lives in a ConfigMap
	ConfigMapJobPrefix = "configmap://"
)
