package types

import (
	"fmt"

	"github.com/samber/lo"
)

// Status is the lifecycle status shared by all persisted models
type Status string

const (
	StatusPublished Status = "published"
	StatusDeleted   Status = "deleted"
	StatusArchived  Status = "archived"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Validate() error {
	allowed := []Status{
		StatusPublished,
		StatusDeleted,
		StatusArchived,
	}
	if !lo.Contains(allowed, s) {
		return fmt.Errorf("invalid status: %s", s)
	}
	return nil
}

// RunMode is the deployment mode of the service
type RunMode string

const (
	ModeLocal RunMode = "local"
	ModeProd  RunMode = "prod"
)

// LogLevel is the logging level of the service
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)
