// Copyright ©2026 The redex Authors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/redex/redex/reduce"
)

// eachTerm parses the command arguments, or each line of the app's Reader
// when there are none, and calls fn with every term. Blank lines and lines
// starting with '#' are skipped.
func eachTerm(cctx *cli.Context, fn func(reduce.Expr) error) error {
	do := func(src string) error {
		e, err := reduce.Parse(src)
		if err == nil {
			err = fn(e)
		}
		if err != nil {
			return fmt.Errorf("%q: %w", src, err)
		}
		return nil
	}

	if cctx.Args().Present() {
		for _, src := range cctx.Args().Slice() {
			if err := do(src); err != nil {
				return err
			}
		}
		return nil
	}

	sc := bufio.NewScanner(cctx.App.Reader)
	for sc.Scan() {
		src := strings.TrimSpace(sc.Text())
		if src == "" || strings.HasPrefix(src, "#") {
			continue
		}
		if err := do(src); err != nil {
			return err
		}
	}
	return sc.Err()
}
