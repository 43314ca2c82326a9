// Copyright 2025 The govengine Authors
// This file is part of the govengine library.
//
// The govengine library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The govengine library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the govengine library. If not, see <http://www.gnu.org/licenses/>.

// Package config loads engine configuration from a TOML file with
// environment-variable overrides. Priority: environment > file > defaults.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/chainvote/govengine/governance"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables overriding file values
const (
	EnvMemberWeight    = "GOVENGINE_MEMBER_WEIGHT"
	EnvMinVotingPeriod = "GOVENGINE_MIN_VOTING_PERIOD"
)

// fileConfig is the TOML representation of the engine configuration
type fileConfig struct {
	MemberWeight    uint64 `toml:"member_weight"`
	MinVotingPeriod uint64 `toml:"min_voting_period"`
}

// Load reads the engine configuration. Path may be empty, in which case
// only defaults and environment overrides apply.
func Load(path string) (*governance.EngineConfig, error) {
	cfg := governance.DefaultEngineConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		var fc fileConfig
		if err := toml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
		if fc.MemberWeight != 0 {
			cfg.MemberWeight = fc.MemberWeight
		}
		if fc.MinVotingPeriod != 0 {
			cfg.MinVotingPeriod = fc.MinVotingPeriod
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration ranges
func Validate(cfg *governance.EngineConfig) error {
	if cfg.MemberWeight == 0 {
		return fmt.Errorf("member weight must be non-zero")
	}
	if cfg.MinVotingPeriod == 0 {
		return fmt.Errorf("minimum voting period must be non-zero")
	}
	return nil
}

// applyEnvOverrides replaces values set through the environment
func applyEnvOverrides(cfg *governance.EngineConfig) error {
	if v, ok, err := uintEnv(EnvMemberWeight); err != nil {
		return err
	} else if ok {
		cfg.MemberWeight = v
	}
	if v, ok, err := uintEnv(EnvMinVotingPeriod); err != nil {
		return err
	} else if ok {
		cfg.MinVotingPeriod = v
	}
	return nil
}

// uintEnv reads an unsigned integer environment variable
func uintEnv(key string) (uint64, bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, true, nil
}
