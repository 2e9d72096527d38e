// Package config provides configuration management for the airules CLI.
//
// The configuration file is config.yaml, searched in the current directory,
// then $AIRULES_CONFIG_DIR when set, then the XDG config directory
// (~/.config/airules on Linux):
//
//	version: 1
//	default_agent: claude
//	rules_dir: ./rules            # path or package specifier, optional
//	development_skills: auto      # auto, true or false
//	agents:
//	  claude:
//	    rules_path: .claude/rules
//
// Every key can be overridden from the environment with the AIRULES_
// prefix, for example AIRULES_DEFAULT_AGENT=cursor.
//
// Call [Init] once before [Load]. Loaded configurations are validated with
// [Validate]; the first problem is returned wrapped in "validating config".
package config
