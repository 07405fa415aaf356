package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/profile"
	"golang.org/x/term"

	"mailbox-chess/fenlist"
	"mailbox-chess/logging"
	"mailbox-chess/mailbox"
	"mailbox-chess/movestore"
	"mailbox-chess/refcheck"
)

type options struct {
	side     string
	filter   string
	list     bool
	board    bool
	refcheck bool
	repeat   int
	label    string
}

func main() {
	os.Exit(realMain(os.Args[1:]))
}

// realMain runs the command and returns its exit status: 2 for usage or
// input errors found before any work starts, 1 when a position fails.
func realMain(args []string) int {
	fs := flag.NewFlagSet("movegen", flag.ContinueOnError)
	fen := fs.String("fen", mailbox.FENStartPos, "FEN string (defaults to initial position)")
	file := fs.String("file", "", "FEN-per-line file (.zst and .bz2 are decompressed); overrides -fen")
	var opts options
	fs.StringVar(&opts.side, "side", "", "Side to generate for: white or black (default side to move)")
	fs.StringVar(&opts.filter, "filter", "all", "Move subset: all, captures or quiets")
	fs.BoolVar(&opts.list, "list", false, "Print every generated move")
	fs.BoolVar(&opts.board, "board", false, "Print the board before the moves")
	fs.BoolVar(&opts.refcheck, "refcheck", false, "Compare against dragontoothmg, notnil/chess and goosemg")
	fs.IntVar(&opts.repeat, "repeat", 1, "Generate N times per position and report timing")
	fs.StringVar(&opts.label, "label", "", "Optional label prefix for one-line output")
	parquetPath := fs.String("parquet", "", "Write generated moves to this parquet file")
	cpuProf := fs.String("cpuprofile", "", "Write a CPU profile into this directory")
	logFile := fs.String("log", "", "Append log output to this file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if opts.repeat <= 0 {
		fmt.Fprintln(os.Stderr, "-repeat must be > 0")
		return 2
	}
	switch opts.filter {
	case "all", "captures", "quiets":
	default:
		fmt.Fprintln(os.Stderr, "-filter must be all, captures or quiets")
		return 2
	}
	if _, ok := parseSide(opts.side, mailbox.White); !ok {
		fmt.Fprintln(os.Stderr, "-side must be white or black")
		return 2
	}

	// Open the input before starting the profiler or the parquet writer.
	var (
		list *fenlist.Reader
		pos  *mailbox.Position
		err  error
	)
	if *file != "" {
		if list, err = fenlist.Open(*file); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		defer list.Close()
	} else if pos, err = mailbox.Decode(*fen); err != nil {
		fmt.Fprintf(os.Stderr, "Decode error: %v\n", err)
		return 2
	}

	closer, err := logging.Init(*logFile, "[movegen] ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log: %v\n", err)
		return 2
	}
	defer closer.Close()

	if *cpuProf != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProf), profile.Quiet, profile.NoShutdownHook).Stop()
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	var sink *recordSink
	if *parquetPath != "" {
		sink = newRecordSink(*parquetPath)
	}

	failed := 0
	if list != nil {
		failed = runList(*file, list, opts, sink)
	} else if !run(pos, opts, sink) {
		failed++
	}

	if sink != nil {
		if err := sink.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "writing parquet: %v\n", err)
			return 1
		}
		log.Printf("wrote %d moves to %s", sink.count, *parquetPath)
	}
	if failed > 0 {
		return 1
	}
	return 0
}

func runList(path string, r *fenlist.Reader, opts options, sink *recordSink) int {
	failed := 0
	for r.Scan() {
		e := r.Entry()
		if e.Err != nil {
			fmt.Fprintf(os.Stderr, "%s:%d: %v\n", path, e.Line, e.Err)
			failed++
			continue
		}
		if !run(e.Position, opts, sink) {
			failed++
		}
	}
	if err := r.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", path, err)
		failed++
	}
	log.Printf("read %v from %s", r.BytesRead(), path)
	return failed
}

// run handles one position and reports whether every check passed.
func run(pos *mailbox.Position, opts options, sink *recordSink) bool {
	// opts.side was validated by realMain.
	side, _ := parseSide(opts.side, pos.SideToMove())

	if opts.board {
		fmt.Print(renderBoard(pos))
	}

	buf := make([]mailbox.Move, 0, 64)
	start := time.Now()
	for i := 0; i < opts.repeat; i++ {
		buf = generate(pos, side, opts.filter, buf[:0])
	}
	elapsed := time.Since(start)

	if opts.repeat > 1 {
		per := float64(opts.repeat) / elapsed.Seconds()
		fmt.Printf("%s \t%s \t%d \t\t%s \t%.0f pos/s\n", opts.label, pos.FEN(), len(buf), elapsed, per)
	} else {
		fmt.Printf("%s \t%s \t%d\n", opts.label, pos.FEN(), len(buf))
	}
	if opts.list {
		for _, m := range buf {
			fmt.Printf("%s\t%s\n", m, m.Kind())
		}
	}
	if sink != nil {
		sink.Add(movestore.RecordsFor(pos, side, buf))
	}

	if !opts.refcheck {
		return true
	}
	if side != pos.SideToMove() || opts.filter != "all" {
		log.Printf("refcheck skipped for %s: needs -side to move and -filter all", pos.FEN())
		return true
	}
	reports, err := refcheck.CompareAll(refcheck.Default(), pos.FEN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "refcheck: %v\n", err)
		return false
	}
	ok := true
	for _, rep := range reports {
		fmt.Println("  " + rep.String())
		if !rep.OK() {
			ok = false
		}
	}
	return ok
}

func generate(pos *mailbox.Position, side mailbox.Color, filter string, dst []mailbox.Move) []mailbox.Move {
	switch filter {
	case "captures":
		return pos.GenerateCapturesInto(side, dst)
	case "quiets":
		return pos.GenerateQuietsInto(side, dst)
	default:
		return pos.GenerateMovesInto(side, dst)
	}
}

func parseSide(s string, def mailbox.Color) (mailbox.Color, bool) {
	switch strings.ToLower(s) {
	case "":
		return def, true
	case "w", "white":
		return mailbox.White, true
	case "b", "black":
		return mailbox.Black, true
	}
	return mailbox.NoColor, false
}
