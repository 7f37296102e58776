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
	"runtime"

	markdown "github.com/MichaelMure/go-term-markdown"
)

// shellCommandSummary is printed by the "help" shell command.
const shellCommandSummary = `insert|add KEY...      add keys (duplicates are ignored)
delete|rm KEY...       remove keys (missing keys are ignored)
contains|has KEY...    membership test
size | height          number of keys, height of the root (-1 when empty)
min | max              smallest and largest key
traverse|ls            keys in ascending order, one per line
array                  keys as [k1, k2, ...]
dump                   tree drawn sideways with balance factors
check                  verify ordering, heights and balance
stats                  size, height, filter and cache figures
clear                  drop every key
help                   this list`

// shellHelpMarkdown is shown in the interactive shell's help pane.
const shellHelpMarkdown = "# Commands\n\n```\n" + shellCommandSummary + "\n```\n\n" +
	"# Keys\n\n" +
	"* `enter` runs the command line\n" +
	"* `up` / `down` recall earlier command lines\n" +
	"* `ctrl+y` copies the sorted keys to the clipboard\n" +
	"* `f1` toggles this help\n" +
	"* `esc` or `ctrl+c` quits\n"

func getHelpMessage() string {
	message := fmt.Sprintf(`

 **avltree %s**

A workbench for a self-balancing (AVL) binary search tree. Load keys from files,
insert and delete interactively, and watch the tree stay balanced.

Built with Go %s

# 1. Commands
* **shell** - interactive shell (default)
* **load FILE...** - load keys and print a summary
* **print FILE...** - print the keys in ascending order (--array, --copy)
* **check FILE...** - load keys and verify every tree invariant
* **dump FILE...** - draw the tree sideways
* **exec SCRIPT** - run shell commands from a file or stdin (-)
* **settings** - show or create ~/.avltree.yaml

# 2. Key files
One key per line. Blank lines and lines starting with # are skipped.
Use --numeric to treat keys as 64-bit integers.

# Please be aware
* Copy to clipboard on Linux or Unix requires 'xclip' or 'xsel' to be installed

# License
Licensed under the Apache License, Version 2.0
Copyright © 2025 Naren Yellavula

`, version, runtime.Version())
	result := markdown.Render(message, 80, 3)
	return string(result)
}
