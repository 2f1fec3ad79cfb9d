// Package config loads run-time overrides for the simulation from a YAML
// file, following the teacher's viper-then-yaml.v3 two-pass unmarshal
// (reinforcement.FromYaml): viper reads the outer envelope, then a plain
// yaml.v3 decode produces the strongly-typed inner config. Nothing here
// requires viper's remote/live-reload features; it is kept anyway
// because the teacher's own config loading is built on it and there is
// no reason to special-case this one file format away from that pattern.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/boundaryrobots/mapexplore/internal/params"
)

// outerConfig mirrors reinforcement.OuterConfig's kind/def envelope, so a
// single config file format can host more than one kind of payload later
// without a breaking change to this package's signature.
type outerConfig struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// RunConfig overrides the simulation's hard-coded internal/params
// defaults. Zero values mean "use the default". CommunicationRange and
// InitialScoutDepth are threaded by the caller into a params.Params and
// passed to simulation.NewManager, which reaches every agent's phase
// machine and scouting legs; they are not applied here.
type RunConfig struct {
	CommunicationRange int    `yaml:"communicationRange"`
	InitialScoutDepth  int    `yaml:"initialScoutDepth"`
	TickCap            int    `yaml:"tickCap"`
	Serve              bool   `yaml:"serve"`
	ServeAddr          string `yaml:"serveAddr"`
}

// Defaults returns a RunConfig populated entirely from internal/params.
func Defaults() *RunConfig {
	return &RunConfig{
		CommunicationRange: params.CommunicationRange,
		InitialScoutDepth:  params.InitialScoutDepth,
		TickCap:            params.DefaultTickCap,
		ServeAddr:          ":8080",
	}
}

// FromYaml loads a RunConfig from path, falling back to Defaults() for
// any field the file omits (zero value in YAML keeps the default).
func FromYaml(path string) (*RunConfig, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return nil, err
	}

	outer := &outerConfig{}
	if err := vp.Unmarshal(outer); err != nil {
		return nil, err
	}

	spec, err := yaml.Marshal(outer.Def)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(spec, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *RunConfig) {
	d := Defaults()
	if cfg.CommunicationRange == 0 {
		cfg.CommunicationRange = d.CommunicationRange
	}
	if cfg.InitialScoutDepth == 0 {
		cfg.InitialScoutDepth = d.InitialScoutDepth
	}
	if cfg.TickCap == 0 {
		cfg.TickCap = d.TickCap
	}
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = d.ServeAddr
	}
}
