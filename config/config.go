// This file is part of zwinder.
//
// zwinder is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// zwinder is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with zwinder.  If not, see <https://www.gnu.org/licenses/>.

// Package config loads rewind.Settings from the process environment (and an
// optional .env file), so a host process can tune ring budgets and cadences
// without a recompile.
package config

import (
	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"

	"github.com/jetsetilly/zwinder/curated"
	"github.com/jetsetilly/zwinder/rewind"
	"github.com/jetsetilly/zwinder/zwinder"
)

type envSettings struct {
	CurrentByteBudget uint64 `env:"ZWINDER_CURRENT_BUDGET" envDefault:"8388608"`
	CurrentFrequency  uint32 `env:"ZWINDER_CURRENT_FREQUENCY" envDefault:"1"`

	RecentByteBudget uint64 `env:"ZWINDER_RECENT_BUDGET" envDefault:"33554432"`
	RecentFrequency  uint32 `env:"ZWINDER_RECENT_FREQUENCY" envDefault:"8"`

	GapByteBudget uint64 `env:"ZWINDER_GAP_BUDGET" envDefault:"2097152"`
	GapFrequency  uint32 `env:"ZWINDER_GAP_FREQUENCY" envDefault:"4"`

	AncientInterval uint32 `env:"ZWINDER_ANCIENT_INTERVAL" envDefault:"3600"`
}

// Load reads rewind.Settings from the environment. A .env file in the
// working directory is consulted first, if present; its absence is not an
// error.
func Load() (rewind.Settings, error) {
	_ = godotenv.Load()

	var e envSettings
	if err := env.Parse(&e); err != nil {
		return rewind.Settings{}, curated.Errorf("config: %v", err)
	}

	return rewind.Settings{
		Current: zwinder.Config{
			ByteBudget:      e.CurrentByteBudget,
			RewindFrequency: e.CurrentFrequency,
		},
		Recent: zwinder.Config{
			ByteBudget:      e.RecentByteBudget,
			RewindFrequency: e.RecentFrequency,
		},
		Gap: zwinder.Config{
			ByteBudget:      e.GapByteBudget,
			RewindFrequency: e.GapFrequency,
		},
		AncientInterval: e.AncientInterval,
	}, nil
}
