// Package config loads and saves the YAML configuration file holding the
// engine defaults: timezone, working hours, slot step, highlight
// threshold, cache TTL, and default calendars. Files are written
// atomically with 0600 permissions; a missing file is created with
// defaults on first run.
package config
