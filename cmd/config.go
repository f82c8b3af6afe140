package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProducerConsumerConfig parameterizes the bounded-buffer scenario.
type ProducerConsumerConfig struct {
	MeanInterarrival float64 `yaml:"mean_interarrival"` // mean time between jobs on both sides
	BufferSize       int     `yaml:"buffer_size"`       // bounded buffer capacity
}

// MachineShopConfig parameterizes the single-machine job shop scenario.
type MachineShopConfig struct {
	MeanArrival float64 `yaml:"mean_arrival"` // mean job inter-arrival time
	MeanService float64 `yaml:"mean_service"` // mean service time
	Breaks      bool    `yaml:"breaks"`       // enable machine failures
	RepairLo    float64 `yaml:"repair_lo"`    // uniform repair time bounds
	RepairHi    float64 `yaml:"repair_hi"`
	OperativeLo float64 `yaml:"operative_lo"` // uniform time-between-failures bounds
	OperativeHi float64 `yaml:"operative_hi"`
}

// ScenarioConfig is the yaml scenario file decoded by the run command.
type ScenarioConfig struct {
	Horizon          float64                `yaml:"horizon"` // virtual time to simulate
	ProducerConsumer ProducerConsumerConfig `yaml:"producer_consumer"`
	MachineShop      MachineShopConfig      `yaml:"machine_shop"`
}

// DefaultScenarioConfig mirrors the parameters of the bundled reference
// scenarios.
func DefaultScenarioConfig() *ScenarioConfig {
	return &ScenarioConfig{
		Horizon: 10000,
		ProducerConsumer: ProducerConsumerConfig{
			MeanInterarrival: 10.0,
			BufferSize:       10,
		},
		MachineShop: MachineShopConfig{
			MeanArrival: 8.0,
			MeanService: 8.0,
			Breaks:      false,
			RepairLo:    10,
			RepairHi:    100,
			OperativeLo: 200,
			OperativeHi: 500,
		},
	}
}

// LoadScenarioConfig reads a yaml scenario file over the defaults.
func LoadScenarioConfig(path string) (*ScenarioConfig, error) {
	cfg := DefaultScenarioConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario config %s: %w", path, err)
	}
	if cfg.Horizon <= 0 {
		return nil, fmt.Errorf("scenario config %s: horizon must be > 0, got %v", path, cfg.Horizon)
	}
	return cfg, nil
}
