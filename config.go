package tablegate

import (
	"github.com/tablegate/tablegate/logger"
	"github.com/tablegate/tablegate/schema"
)

// Config configures a DB.
type Config struct {
	// Logger receives statement traces and DDL diagnostics. Defaults to the
	// stock writer logger at Warn level.
	Logger logger.Interface

	// StrictDDL makes EnsureSchema surface DDL failures as errors. The
	// default is best-effort: failures are logged and provisioning carries
	// on, matching how deployments tolerate partially provisioned schemas.
	StrictDDL bool

	// NamingStrategy derives table names for definitions that omit one.
	NamingStrategy schema.Namer
}
