package cmd

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/heartbeats/poet-go/pkg/poet"
)

// runConfig gathers everything the run command needs, from flags, config file
// and environment via viper.
type runConfig struct {
	Goal        float64 `mapstructure:"goal" validate:"required,gt=0"`
	Period      uint32  `mapstructure:"period" validate:"gte=1"`
	BufferDepth uint32  `mapstructure:"buffer_depth" validate:"gte=1"`

	// Either one TOML file holding both tables, or the pair of classic
	// text files.
	StatesFile  string `mapstructure:"states_file" validate:"required_without=ControlFile"`
	ControlFile string `mapstructure:"control_file" validate:"required_without=StatesFile"`
	CPUFile     string `mapstructure:"cpu_file" validate:"required_with=ControlFile"`

	LogFile string `mapstructure:"log_file"`
	Listen  string `mapstructure:"listen" validate:"omitempty,hostname_port"`
}

func loadRunConfig() (runConfig, error) {
	cfg := runConfig{
		Period:      20,
		BufferDepth: 1,
	}
	if err := viper.Unmarshal(&cfg); err != nil {
		return runConfig{}, fmt.Errorf("parsing configuration: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return runConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadTables resolves the state tables the config points at.
func (c runConfig) loadTables() (poet.StateTables, error) {
	if c.StatesFile != "" {
		return poet.LoadStatesTOML(c.StatesFile)
	}

	control, err := poet.LoadControlStates(c.ControlFile)
	if err != nil {
		return poet.StateTables{}, err
	}
	cpu, err := poet.LoadCPUStates(c.CPUFile)
	if err != nil {
		return poet.StateTables{}, err
	}
	return poet.StateTables{Control: control, CPU: cpu}, nil
}
