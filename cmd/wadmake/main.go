// Command wadmake is a thin demonstration host over the wad package: it
// loads a WAD or ZIP/PK3 archive and runs one of a handful of
// subcommands against its Directory. It is not the scripting bridge
// spec.md's Purpose & Scope places out of scope — just enough of a
// collaborator to exercise the library end to end.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AlexMax/wadmake-go"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <archive> ls\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s <archive> extract <1-based-pos> <outfile>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s <archive> pack-map <1-based-pos> <name>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s <archive> find <name> <1-based-start>\n", os.Args[0])
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(args[0], args[1], args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(path, cmd string, rest []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dir, err := openArchive(path, data)
	if err != nil {
		return err
	}

	switch cmd {
	case "ls":
		return cmdLs(dir)
	case "extract":
		if len(rest) != 2 {
			return fmt.Errorf("extract requires <1-based-pos> <outfile>")
		}
		return cmdExtract(dir, rest[0], rest[1])
	case "pack-map":
		if len(rest) != 2 {
			return fmt.Errorf("pack-map requires <1-based-pos> <name>")
		}
		return cmdPackMap(dir, rest[0], rest[1])
	case "find":
		if len(rest) != 2 {
			return fmt.Errorf("find requires <name> <1-based-start>")
		}
		return cmdFind(dir, rest[0], rest[1])
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func openArchive(path string, data []byte) (*wad.Directory, error) {
	if strings.HasSuffix(strings.ToLower(path), ".pk3") || strings.HasSuffix(strings.ToLower(path), ".zip") {
		return wad.ParseZip(data)
	}
	w, err := wad.ParseWad(data)
	if err != nil {
		return nil, err
	}
	return w.Lumps, nil
}

func cmdLs(dir *wad.Directory) error {
	var err error
	dir.Each(func(pos int, l wad.Lump) {
		if err != nil {
			return
		}
		_, printErr := fmt.Printf("%4d  %-8s  %8d\n", pos+1, l.Name, len(l.Data))
		if printErr != nil {
			err = printErr
		}
	})
	return err
}

func cmdExtract(dir *wad.Directory, posStr, outfile string) error {
	pos, err := oneBasedPos(posStr)
	if err != nil {
		return err
	}
	l, err := dir.At(pos)
	if err != nil {
		return err
	}
	return os.WriteFile(outfile, l.Data, 0o644)
}

func cmdPackMap(dir *wad.Directory, posStr, name string) error {
	pos, err := oneBasedPos(posStr)
	if err != nil {
		return err
	}
	m, err := wad.UnpackMap(dir, pos)
	if err != nil {
		return err
	}
	packed, err := wad.PackMap(m, name)
	if err != nil {
		return err
	}
	return cmdLs(packed)
}

func cmdFind(dir *wad.Directory, name, startStr string) error {
	start, err := strconv.Atoi(startStr)
	if err != nil {
		return err
	}
	h := wad.NewDirectoryHandle(dir)
	pos, ok := h.Find(name, start)
	if !ok {
		return fmt.Errorf("%s: not found at or after %d", name, start)
	}
	fmt.Println(pos)
	return nil
}

func oneBasedPos(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("position must be 1-based (>= 1)")
	}
	return n - 1, nil
}
