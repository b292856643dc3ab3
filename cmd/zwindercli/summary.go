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
	"fmt"

	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	var path string
	var showMetrics bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print occupancy across the cache's four stores",
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, collector, err := openCache(path)
			if err != nil {
				return err
			}

			s := sm.GetSummary()
			fmt.Printf("frames %d..%d\n", s.Start, s.End)
			fmt.Printf("current:  %d\n", s.CurrentCount)
			fmt.Printf("recent:   %d\n", s.RecentCount)
			fmt.Printf("gap:      %d\n", s.GapCount)
			fmt.Printf("reserved: %d\n", s.ReservedCount)

			for _, f := range sm.ReservedFrames() {
				fmt.Printf("  reserved frame %d\n", f)
			}

			if showMetrics {
				if err := collector.WriteText(cmd.OutOrStdout()); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&path, "file", defaultCachePath(), "path to the cache file")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print Prometheus metrics gathered during this run")

	return cmd
}
