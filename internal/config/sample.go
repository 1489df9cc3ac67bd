package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const sampleHeader = `# tcgen configuration
#
# Search order: ./.tcgen.yaml, ~/.config/tcgen/config.yaml, /etc/tcgen/config.yaml.
# Any value can be overridden with a TCGEN_* environment variable, for example
# TCGEN_WORKFLOW_NO_DELAY=true or TCGEN_OUTPUT_DIRECTORY=/tmp/cases. A .env file in the working
# directory is read first.

`

const minimalSample = `version: "1.0"
generation:
  output_format: text
  query_types: [count, mapping, quality, business]
  complexity: intermediate
  comment_level: detailed
output:
  directory: ./tcgen-output
`

// SampleConfig renders the defaults as a commented YAML document
func SampleConfig() string {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		// DefaultConfig only holds plain values
		panic(fmt.Sprintf("marshal default config: %v", err))
	}
	return sampleHeader + string(data)
}

// MinimalSampleConfig returns a compact configuration with the generation defaults only
func MinimalSampleConfig() string {
	return sampleHeader + minimalSample
}
