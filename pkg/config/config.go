// Package config defines the producer/consumer scenarios the benchmark
// harness runs, and loads custom scenario sets from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario describes one benchmark workload: how many producer and consumer
// goroutines hammer a single queue.
type Scenario struct {
	NumProducers int `yaml:"producers"`
	NumConsumers int `yaml:"consumers"`
}

// Config is an alias for Scenario. This allows other programs to import the
// queue configuration without pulling in the benchmark harness.
type Config = Scenario

// DefaultScenarios returns the scenarios every benchmark run covers. With
// highConcurrency set, the heavier goroutine counts are appended.
func DefaultScenarios(highConcurrency bool) []Scenario {
	scenarios := []Scenario{
		{NumProducers: 2, NumConsumers: 2},
		{NumProducers: 10, NumConsumers: 10},
		{NumProducers: 50, NumConsumers: 50},
	}
	if highConcurrency {
		scenarios = append(scenarios,
			Scenario{NumProducers: 100, NumConsumers: 100},
			Scenario{NumProducers: 250, NumConsumers: 250},
			Scenario{NumProducers: 500, NumConsumers: 500},
		)
	}
	return scenarios
}

type scenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Load reads a scenario set from a YAML file of the form:
//
//	scenarios:
//	  - producers: 4
//	    consumers: 2
//	  - producers: 100
//	    consumers: 100
//
// Every scenario must name at least one producer and one consumer.
func Load(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var file scenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("config: %s defines no scenarios", path)
	}
	for i, sc := range file.Scenarios {
		if sc.NumProducers < 1 || sc.NumConsumers < 1 {
			return nil, fmt.Errorf("config: scenario %d: producers and consumers must be at least 1, got %d and %d",
				i, sc.NumProducers, sc.NumConsumers)
		}
	}
	return file.Scenarios, nil
}
