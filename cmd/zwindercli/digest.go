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

	"github.com/jetsetilly/zwinder/digest"
)

func digestCmd() *cobra.Command {
	var path string
	var showMetrics bool

	cmd := &cobra.Command{
		Use:   "digest <frame>",
		Short: "Print the content digest of the exact snapshot stored at frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var frame uint32
			if _, err := fmt.Sscanf(args[0], "%d", &frame); err != nil {
				return fmt.Errorf("invalid frame %q: %w", args[0], err)
			}

			sm, collector, err := openCache(path)
			if err != nil {
				return err
			}

			data := sm.At(frame)
			if len(data) == 0 {
				return fmt.Errorf("no snapshot stored at frame %d", frame)
			}

			fmt.Println(digest.HashBytes(data))

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
