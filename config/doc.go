// Package config provides layered configuration for the support workflow.
//
// Values resolve with clear precedence:
//  1. SUPPORTFLOW_* environment variables (highest priority)
//  2. A YAML config file (.supportflow.yaml by default)
//  3. Built-in defaults (lowest priority)
//
// Example usage:
//
//	cfg, err := config.Load(".supportflow.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	controller := supportflow.NewController(collab, supportflow.ControllerConfig{
//	    MaxRetryAttempts: cfg.MaxRetryAttempts,
//	})
package config
