package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// Load builds the run configuration in three layers: compiled defaults,
// the key=value config file at path, then environment variables with
// the same key names. An empty path skips the file layer. The file is
// consumed as flat string pairs; unknown keys are ignored.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if err := loadDotEnv(); err != nil {
		return cfg, fmt.Errorf("read .env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		v := viper.New()
		v.SetConfigType("env")
		data = []byte(os.ExpandEnv(string(data)))
		if err := v.ReadConfig(bytes.NewBuffer(data)); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
		// Values that fail to convert keep their defaults; every
		// other key in the file still applies.
		_ = v.Unmarshal(&cfg)
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// loadDotEnv pulls an optional .env file into the process environment
// before overrides are read. Variables already set stay untouched, so a
// real environment variable still beats the .env file.
func loadDotEnv() error {
	filename := ".env"
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ENV"))) {
	case "prd", "prod", "production":
		filename = ".env.production"
	case "dev", "development":
		filename = ".env.development"
	case "local":
		filename = ".env.local"
	}

	envMap, err := godotenv.Read(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	for k, v := range envMap {
		if _, exists := os.LookupEnv(k); exists {
			continue
		}
		_ = os.Setenv(k, v)
	}
	return nil
}

// applyEnvOverrides copies environment values over the loaded config,
// one guarded key at a time. Unset or blank variables leave the file
// value alone.
func applyEnvOverrides(cfg *Config) {
	var ec Config
	if err := envconfig.Process("", &ec); err != nil {
		return
	}

	if envNonEmpty("CPU_WARNING") {
		cfg.CPUWarning = ec.CPUWarning
	}
	if envNonEmpty("CPU_CRITICAL") {
		cfg.CPUCritical = ec.CPUCritical
	}
	if envNonEmpty("IOWAIT_WARNING") {
		cfg.IOWaitWarning = ec.IOWaitWarning
	}
	if envNonEmpty("IOWAIT_CRITICAL") {
		cfg.IOWaitCritical = ec.IOWaitCritical
	}
	if envNonEmpty("LOAD_WARNING") {
		cfg.LoadWarning = ec.LoadWarning
	}
	if envNonEmpty("LOAD_CRITICAL") {
		cfg.LoadCritical = ec.LoadCritical
	}
	if envNonEmpty("MEMORY_WARNING") {
		cfg.MemoryWarning = ec.MemoryWarning
	}
	if envNonEmpty("MEMORY_CRITICAL") {
		cfg.MemoryCritical = ec.MemoryCritical
	}
	if envNonEmpty("SWAP_WARNING") {
		cfg.SwapWarning = ec.SwapWarning
	}
	if envNonEmpty("SWAP_CRITICAL") {
		cfg.SwapCritical = ec.SwapCritical
	}
	if envNonEmpty("DISK_WARNING") {
		cfg.DiskWarning = ec.DiskWarning
	}
	if envNonEmpty("DISK_CRITICAL") {
		cfg.DiskCritical = ec.DiskCritical
	}
	if envNonEmpty("INODE_WARNING") {
		cfg.InodeWarning = ec.InodeWarning
	}
	if envNonEmpty("INODE_CRITICAL") {
		cfg.InodeCritical = ec.InodeCritical
	}
	if envNonEmpty("TEMP_WARNING") {
		cfg.TempWarning = ec.TempWarning
	}
	if envNonEmpty("TEMP_CRITICAL") {
		cfg.TempCritical = ec.TempCritical
	}
	if envNonEmpty("UPDATES_WARNING") {
		cfg.UpdatesWarning = ec.UpdatesWarning
	}
	if envNonEmpty("UPDATES_CRITICAL") {
		cfg.UpdatesCritical = ec.UpdatesCritical
	}
	if envNonEmpty("FAILED_LOGIN_WARNING") {
		cfg.FailedLoginWarning = ec.FailedLoginWarning
	}
	if envNonEmpty("FAILED_LOGIN_CRITICAL") {
		cfg.FailedLoginCritical = ec.FailedLoginCritical
	}
	if envNonEmpty("KERNEL_ERR_WARNING") {
		cfg.KernelErrWarning = ec.KernelErrWarning
	}
	if envNonEmpty("KERNEL_ERR_CRITICAL") {
		cfg.KernelErrCritical = ec.KernelErrCritical
	}

	if envNonEmpty("CHECK_TIMEOUT") {
		cfg.CheckTimeout = ec.CheckTimeout
	}
	if envNonEmpty("CPU_SAMPLE") {
		cfg.CPUSample = ec.CPUSample
	}
	if envNonEmpty("SERVICES") {
		cfg.Services = ec.Services
	}
	if envNonEmpty("DNS_TEST_HOST") {
		cfg.DNSTestHost = ec.DNSTestHost
	}
	if envNonEmpty("LARGE_FILE_MB") {
		cfg.LargeFileMB = ec.LargeFileMB
	}

	if envNonEmpty("OUTPUT_DIR") {
		cfg.OutputDir = ec.OutputDir
	}
	if envNonEmpty("RETENTION_DAYS") {
		cfg.RetentionDays = ec.RetentionDays
	}
	if envNonEmpty("HTML_REPORT") {
		cfg.HTMLReport = ec.HTMLReport
	}

	if envNonEmpty("LOG_FILE") {
		cfg.LogFile = ec.LogFile
	}
	if envNonEmpty("LOG_LEVEL") {
		cfg.LogLevel = ec.LogLevel
	}
	if envNonEmpty("LOG_FORMAT") {
		cfg.LogFormat = ec.LogFormat
	}

	if envNonEmpty("EMAIL_ENABLED") {
		cfg.EmailEnabled = ec.EmailEnabled
	}
	if envNonEmpty("ADMIN_EMAIL") {
		cfg.AdminEmail = ec.AdminEmail
	}
	if envNonEmpty("SMTP_HOST") {
		cfg.SMTPHost = ec.SMTPHost
	}
	if envNonEmpty("SMTP_PORT") {
		cfg.SMTPPort = ec.SMTPPort
	}
	if envNonEmpty("SMTP_USERNAME") {
		cfg.SMTPUsername = ec.SMTPUsername
	}
	if envNonEmpty("SMTP_PASSWORD") {
		cfg.SMTPPassword = ec.SMTPPassword
	}
	if envNonEmpty("SMTP_FROM") {
		cfg.SMTPFrom = ec.SMTPFrom
	}
	if envNonEmpty("SMTP_IMPLICIT_TLS") {
		cfg.SMTPImplicitTLS = ec.SMTPImplicitTLS
	}
	if envNonEmpty("SMTP_SKIP_VERIFY") {
		cfg.SMTPSkipVerify = ec.SMTPSkipVerify
	}
}

func envNonEmpty(key string) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	return strings.TrimSpace(val) != ""
}
