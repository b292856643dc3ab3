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

package config_test

import (
	"testing"

	"github.com/jetsetilly/zwinder/config"
	"github.com/jetsetilly/zwinder/test"
)

func TestLoadDefaults(t *testing.T) {
	settings, err := config.Load()
	test.ExpectSuccess(t, err)
	test.Equate(t, settings.Current.RewindFrequency, uint32(1))
	test.Equate(t, settings.AncientInterval, uint32(3600))
}

func TestLoadOverride(t *testing.T) {
	t.Setenv("ZWINDER_CURRENT_FREQUENCY", "7")
	t.Setenv("ZWINDER_ANCIENT_INTERVAL", "120")

	settings, err := config.Load()
	test.ExpectSuccess(t, err)
	test.Equate(t, settings.Current.RewindFrequency, uint32(7))
	test.Equate(t, settings.AncientInterval, uint32(120))
}
