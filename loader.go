// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/schollz/progressbar/v3"
)

// loadKeyFiles reads every file and inserts its keys into the session,
// showing a progress bar per file when enabled.
func loadKeyFiles(s *Session, paths []string, showProgress bool) (LoadStats, error) {
	var total LoadStats

	for _, path := range paths {
		keys, err := readKeyFile(path)
		if err != nil {
			return total, err
		}

		var bar *progressbar.ProgressBar
		if showProgress && len(keys) > 0 {
			bar = progressbar.NewOptions(len(keys),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription(fmt.Sprintf("Loading %s", path)),
				progressbar.OptionSetWidth(50),
				progressbar.OptionShowCount(),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "█",
					SaucerHead:    "█",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(os.Stderr)
				}),
			)
		}

		var tick func()
		if bar != nil {
			tick = func() { bar.Add(1) }
		}

		stats, err := s.Load(keys, tick)
		if bar != nil {
			bar.Finish()
		}
		if err != nil {
			return total, fmt.Errorf("loading %s: %w", path, err)
		}

		log.Printf("Loaded %s: %d added, %d duplicates", path, stats.Added, stats.Duplicates)
		total.Added += stats.Added
		total.Duplicates += stats.Duplicates
	}

	return total, nil
}
