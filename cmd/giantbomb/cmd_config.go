package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func handleConfigCommand(args []string) int {
	if len(args) < 1 {
		fmt.Println("Usage: giantbomb config <command>")
		fmt.Println("Commands: show, init")
		return 1
	}

	switch args[0] {
	case "show":
		return showConfig()
	case "init":
		return initConfig()
	default:
		fmt.Printf("Unknown config command: %s\n", args[0])
		return 1
	}
}

func showConfig() int {
	masked := cfg.Masked()
	if outputCfg.JSON {
		PrintResult(masked)
		return 0
	}

	data, err := yaml.Marshal(masked)
	if err != nil {
		PrintError("Error: failed to marshal config: %v\n", err)
		return 1
	}

	fmt.Println("# Active Configuration")
	fmt.Println(string(data))
	return 0
}

const exampleConfig = `# GiantBomb client configuration
# The API key can also be set with GIANTBOMB_API_KEY.
api_key: ""
base_url: https://www.giantbomb.com/api/
user_agent: giantbomb-go/1.0
timeout: 30s

# Catalog used by the export command
db_path: giantbomb.db

breaker:
  enabled: false
  timeout: 30s
  failure_ratio: 0.5
  min_requests: 5

logging:
  level: warn   # debug, info, warn, error
  format: text  # text or json

tracing:
  enabled: false
  endpoint: localhost:4317
`

func initConfig() int {
	configPath := ".giantbomb.yaml"

	if _, err := os.Stat(configPath); err == nil {
		PrintError("Error: config file already exists at %s\n", configPath)
		return 1
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o600); err != nil {
		PrintError("Error: failed to write config: %v\n", err)
		return 1
	}

	if outputCfg.JSON {
		PrintResult(map[string]string{"path": configPath, "status": "created"})
	} else {
		PrintInfo("Created config file: %s\n", configPath)
	}
	return 0
}
