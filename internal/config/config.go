package config

import "time"

// Config is the full run configuration. The on-disk form is a flat
// key=value file in shell style; the same key names double as
// environment variable overrides. Loaded once before any check starts
// and treated as immutable afterwards.
type Config struct {
	// Threshold pairs, checked critical-first with strict comparisons.
	CPUWarning          float64 `mapstructure:"cpu_warning" envconfig:"CPU_WARNING"`
	CPUCritical         float64 `mapstructure:"cpu_critical" envconfig:"CPU_CRITICAL"`
	IOWaitWarning       float64 `mapstructure:"iowait_warning" envconfig:"IOWAIT_WARNING"`
	IOWaitCritical      float64 `mapstructure:"iowait_critical" envconfig:"IOWAIT_CRITICAL"`
	LoadWarning         float64 `mapstructure:"load_warning" envconfig:"LOAD_WARNING"`
	LoadCritical        float64 `mapstructure:"load_critical" envconfig:"LOAD_CRITICAL"`
	MemoryWarning       float64 `mapstructure:"memory_warning" envconfig:"MEMORY_WARNING"`
	MemoryCritical      float64 `mapstructure:"memory_critical" envconfig:"MEMORY_CRITICAL"`
	SwapWarning         float64 `mapstructure:"swap_warning" envconfig:"SWAP_WARNING"`
	SwapCritical        float64 `mapstructure:"swap_critical" envconfig:"SWAP_CRITICAL"`
	DiskWarning         float64 `mapstructure:"disk_warning" envconfig:"DISK_WARNING"`
	DiskCritical        float64 `mapstructure:"disk_critical" envconfig:"DISK_CRITICAL"`
	InodeWarning        float64 `mapstructure:"inode_warning" envconfig:"INODE_WARNING"`
	InodeCritical       float64 `mapstructure:"inode_critical" envconfig:"INODE_CRITICAL"`
	TempWarning         float64 `mapstructure:"temp_warning" envconfig:"TEMP_WARNING"`
	TempCritical        float64 `mapstructure:"temp_critical" envconfig:"TEMP_CRITICAL"`
	UpdatesWarning      float64 `mapstructure:"updates_warning" envconfig:"UPDATES_WARNING"`
	UpdatesCritical     float64 `mapstructure:"updates_critical" envconfig:"UPDATES_CRITICAL"`
	FailedLoginWarning  float64 `mapstructure:"failed_login_warning" envconfig:"FAILED_LOGIN_WARNING"`
	FailedLoginCritical float64 `mapstructure:"failed_login_critical" envconfig:"FAILED_LOGIN_CRITICAL"`
	KernelErrWarning    float64 `mapstructure:"kernel_err_warning" envconfig:"KERNEL_ERR_WARNING"`
	KernelErrCritical   float64 `mapstructure:"kernel_err_critical" envconfig:"KERNEL_ERR_CRITICAL"`

	// Check behavior. LOAD_* thresholds apply to the load average
	// divided by the logical core count.
	CheckTimeout time.Duration `mapstructure:"check_timeout" envconfig:"CHECK_TIMEOUT"`
	CPUSample    time.Duration `mapstructure:"cpu_sample" envconfig:"CPU_SAMPLE"`
	Services     []string      `mapstructure:"services" envconfig:"SERVICES"`
	DNSTestHost  string        `mapstructure:"dns_test_host" envconfig:"DNS_TEST_HOST"`
	LargeFileMB  int64         `mapstructure:"large_file_mb" envconfig:"LARGE_FILE_MB"`

	// Report output.
	OutputDir     string `mapstructure:"output_dir" envconfig:"OUTPUT_DIR"`
	RetentionDays int    `mapstructure:"retention_days" envconfig:"RETENTION_DAYS"`
	HTMLReport    bool   `mapstructure:"html_report" envconfig:"HTML_REPORT"`

	// Run log.
	LogFile   string `mapstructure:"log_file" envconfig:"LOG_FILE"`
	LogLevel  string `mapstructure:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat string `mapstructure:"log_format" envconfig:"LOG_FORMAT"`

	// Mail delivery.
	EmailEnabled    bool   `mapstructure:"email_enabled" envconfig:"EMAIL_ENABLED"`
	AdminEmail      string `mapstructure:"admin_email" envconfig:"ADMIN_EMAIL"`
	SMTPHost        string `mapstructure:"smtp_host" envconfig:"SMTP_HOST"`
	SMTPPort        int    `mapstructure:"smtp_port" envconfig:"SMTP_PORT"`
	SMTPUsername    string `mapstructure:"smtp_username" envconfig:"SMTP_USERNAME"`
	SMTPPassword    string `mapstructure:"smtp_password" envconfig:"SMTP_PASSWORD"`
	SMTPFrom        string `mapstructure:"smtp_from" envconfig:"SMTP_FROM"`
	SMTPImplicitTLS bool   `mapstructure:"smtp_implicit_tls" envconfig:"SMTP_IMPLICIT_TLS"`
	SMTPSkipVerify  bool   `mapstructure:"smtp_skip_verify" envconfig:"SMTP_SKIP_VERIFY"`
}

func DefaultConfig() Config {
	return Config{
		CPUWarning:          75,
		CPUCritical:         90,
		IOWaitWarning:       30,
		IOWaitCritical:      60,
		LoadWarning:         1.0,
		LoadCritical:        2.0,
		MemoryWarning:       80,
		MemoryCritical:      90,
		SwapWarning:         25,
		SwapCritical:        50,
		DiskWarning:         80,
		DiskCritical:        90,
		InodeWarning:        80,
		InodeCritical:       90,
		TempWarning:         70,
		TempCritical:        85,
		UpdatesWarning:      0,
		UpdatesCritical:     100,
		FailedLoginWarning:  10,
		FailedLoginCritical: 50,
		KernelErrWarning:    0,
		KernelErrCritical:   50,

		CheckTimeout: 30 * time.Second,
		CPUSample:    3 * time.Second,
		Services: []string{
			"sshd", "NetworkManager", "chronyd", "rsyslog", "firewalld",
			"postfix", "httpd", "nginx", "mariadb", "postgresql",
		},
		DNSTestHost: "google.com",
		LargeFileMB: 100,

		OutputDir:     "/var/log/syshealth",
		RetentionDays: 30,
		HTMLReport:    false,

		LogFile:   "/var/log/syshealth/syshealth.log",
		LogLevel:  "info",
		LogFormat: "text",

		EmailEnabled: false,
		AdminEmail:   "root@localhost",
		SMTPHost:     "localhost",
		SMTPPort:     25,
		SMTPFrom:     "syshealth@localhost",
	}
}
