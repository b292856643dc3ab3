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

package main

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jetsetilly/zwinder/config"
	"github.com/jetsetilly/zwinder/metrics"
	"github.com/jetsetilly/zwinder/resources"
	"github.com/jetsetilly/zwinder/rewind"
)

// defaultCachePath returns the default cache file location, ignoring any
// error locating the user's home directory (flags can always override it).
func defaultCachePath() string {
	path, err := resources.CacheFilePath("state.cache")
	if err != nil {
		return "state.cache"
	}
	return path
}

// openCache loads a StateManager from path, using ring and ancient-interval
// configuration from the environment. No frames are treated as caller-
// reserved by this tool; it is read-only. A fresh metrics.Collector is
// attached so that commands run with --metrics can report what the load and
// any subsequent queries did.
func openCache(path string) (*rewind.StateManager, *metrics.Collector, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sm, err := rewind.Load(f, settings, nil)
	if err != nil {
		return nil, nil, err
	}

	collector := metrics.New(prometheus.NewRegistry())
	sm.SetMetrics(collector)

	return sm, collector, nil
}
