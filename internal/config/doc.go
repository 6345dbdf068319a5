// Package config provides configuration management for karmaconf.
//
// This package implements a layered configuration system that lets a project
// adjust the generated Karma configuration through YAML files. Configuration is
// loaded from multiple sources and merged in a specific order, with later
// sources overriding earlier ones.
//
// # Configuration Layers
//
// Configuration is loaded and merged in the following order:
//
//  1. Default Configuration (defaults.yaml, embedded in binary)
//     - Frameworks, files, browser tables and Sauce Labs launchers
//     - Produces the historical configuration out-of-the-box
//
//  2. User Configuration (~/.config/karmaconf/config.yaml)
//     - User-specific settings that apply to all projects
//
//  3. Project Configuration (./.karmaconf/config.yaml)
//     - Project-specific settings, shared via version control
//
// A single directory can be used instead of layers 2 and 3 with
// LoadConfigFromPath (the --config flag).
//
// # Configuration Structure
//
//	karma:
//	  frameworks: [mocha, chai]
//	  files:
//	    - dist/omnipath.min.js
//	    - pattern: dist/*.map
//	      included: false
//	  browsers:
//	    linux: [ChromeHeadless]
//	  sauceLabs:
//	    launchers:
//	      - name: SauceLabs_Chrome_Latest
//	        base: SauceLabs
//	        platform: Windows 11
//	        browserName: chrome
//	output:
//	  format: yaml
//
// # Merge Rules
//
//   - Lists (frameworks, reporters, files, formats, browser rows) replace the
//     lower layer when non-empty
//   - Scalars override when set
//   - Sauce Labs launchers merge by name: an existing name is replaced in
//     place, new names are appended, so browser order stays stable
package config
