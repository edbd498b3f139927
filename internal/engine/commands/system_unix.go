// Released under an MIT license. See LICENSE.

//go:build unix

package commands

import (
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/null"
	"github.com/michaelmacinnis/ply/internal/common/type/num"
	"github.com/michaelmacinnis/ply/internal/common/type/str"
	"github.com/michaelmacinnis/ply/internal/common/validate"
	"github.com/michaelmacinnis/ply/internal/system/process"
)

func system(r *native.Registry) {
	r.Plain("os/getenv", 1, 1, func(args []cell.I) (cell.I, error) {
		if v, ok := process.Getenv(validate.String(args[0])); ok {
			return str.New(v), nil
		}

		return null.Nil, nil
	})
	r.Plain("os/hostname", 0, 0, func([]cell.I) (cell.I, error) {
		h, err := process.Hostname()
		if err != nil {
			return nil, err
		}

		return str.New(h), nil
	})
	r.Plain("os/pid", 0, 0, integer(process.Pid))
	r.Plain("os/platform", 0, 0, func([]cell.I) (cell.I, error) {
		return str.New(process.Platform), nil
	})
	r.Plain("os/ppid", 0, 0, integer(process.Ppid))
	r.Plain("os/uid", 0, 0, integer(process.Uid))
	r.Plain("os/umask", 1, 1, func(args []cell.I) (cell.I, error) {
		return num.NewInt(int64(process.Umask(int(validate.Int(args[0]))))), nil
	})
}

func integer(f func() int) native.Simple {
	return func([]cell.I) (cell.I, error) {
		return num.NewInt(int64(f())), nil
	}
}
