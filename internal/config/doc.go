// Package config loads civiclink settings with viper.
//
// Values come, in increasing priority, from built-in defaults, an optional
// civiclink.yaml, CIVICLINK_* environment variables and bound CLI flags:
//
//	db_path: ~/.civiclink/civiclink.db
//	thresholds:
//	  company: 0.80
//	  person: 0.85
//	  address: 0.75
//	workers: 0          # 0 uses GOMAXPROCS
//	cache:
//	  size: 100
//	  ttl: 5m
//	log:
//	  level: info
//	  format: console
//
// Nested keys map to environment variables with "." replaced by "_", so
// thresholds.company is CIVICLINK_THRESHOLDS_COMPANY.
package config
