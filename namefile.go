package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// buildQueue walks the raw argument list left to right and produces the input
// queue. This is deliberately independent of cobra's flag parse: a namefile
// named by -f/--files-from expands eagerly at the point the flag appears, so
// its entries are tagged with the separator in effect right there, while a
// later -F only reaches files queued after it. Positional paths are queued at
// the end with the final separator. This order dependence is documented
// behavior, not an accident.
//
// Only -F/--separator and -f/--files-from take values; every other dash
// token is some boolean flag and is skipped. Short booleans may be bundled
// with a trailing f or F ("-bf names", "-vF;"), matching pflag's parse.
func buildQueue(args []string, defaultSeparator string, stdin io.Reader) ([]queuedPath, error) {
	separator := defaultSeparator
	var queue []queuedPath
	var positional []string
	onlyPaths := false

	appendNamefile := func(name string) error {
		paths, err := readNamefile(name, stdin)
		if err != nil {
			return err
		}
		for _, p := range paths {
			queue = append(queue, queuedPath{path: p, separator: separator})
		}
		return nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if onlyPaths || arg == "" || arg == "-" || !strings.HasPrefix(arg, "-") {
			positional = append(positional, arg)
			continue
		}

		switch {
		case arg == "--":
			onlyPaths = true
		case arg == "--separator":
			if i+1 < len(args) {
				i++
				separator = args[i]
			}
		case strings.HasPrefix(arg, "--separator="):
			separator = strings.TrimPrefix(arg, "--separator=")
		case arg == "--files-from":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("missing namefile argument for %s", arg)
			}
			i++
			if err := appendNamefile(args[i]); err != nil {
				return nil, err
			}
		case strings.HasPrefix(arg, "--files-from="):
			if err := appendNamefile(strings.TrimPrefix(arg, "--files-from=")); err != nil {
				return nil, err
			}
		case strings.HasPrefix(arg, "--"):
			// Some long boolean flag; cobra already validated it.
		default:
			// A short flag group. Booleans may be bundled ("-bf names"), so
			// scan the group the way pflag does: the first value-taking
			// shorthand (f or F) consumes the rest of the token, or the next
			// argument when the token ends there.
			rest := arg[1:]
			for j := 0; j < len(rest); j++ {
				c := rest[j]
				if c != 'f' && c != 'F' {
					continue
				}
				value := rest[j+1:]
				if value == "" {
					if i+1 >= len(args) {
						if c == 'f' {
							return nil, fmt.Errorf("missing namefile argument for %s", arg)
						}
						break
					}
					i++
					value = args[i]
				}
				if c == 'F' {
					separator = value
				} else if err := appendNamefile(value); err != nil {
					return nil, err
				}
				break
			}
		}
	}

	for _, p := range positional {
		queue = append(queue, queuedPath{path: p, separator: separator})
	}
	return queue, nil
}

// readNamefile reads one path per line from a namefile, or from stdin when
// the name is "-". Blank lines are skipped. A missing namefile is a
// configuration error and aborts the run before any file is classified.
func readNamefile(name string, stdin io.Reader) ([]string, error) {
	var r io.Reader
	if name == "-" {
		r = stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("cannot read namefile %s: %w", name, err)
		}
		defer f.Close()
		r = f
	}

	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading namefile %s: %w", name, err)
	}
	return paths, nil
}
