package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"crosswarped.com/freeform"
	"crosswarped.com/freeform/internal/batch"
	"crosswarped.com/freeform/internal/dictionary"
	"crosswarped.com/freeform/internal/wordbank"
)

func main() {
	dictFile := flag.String("dict", "", "JSON dictionary to load words from")
	wordsFile := flag.String("words", "", "Word list to load words from (word, word frequency or word|definition per line)")
	excludedFile := flag.String("excluded", "", "Word list of words never to place")
	saveDict := flag.String("save-dict", "", "Write the loaded dictionary as JSON to this file")

	rows := flag.Int("rows", 11, "The number of rows in the grid")
	cols := flag.Int("cols", 11, "The number of columns in the grid")
	maxLength := flag.Int("max_length", 0, "The maximum word length (0 for no limit)")
	repeats := flag.Bool("repeats", false, "Allow a word to appear more than once in a puzzle")
	selection := flag.String("selection", "uniform", "How to choose among matching words: uniform, frequent or weighted")
	seed := flag.Uint64("seed", 0, "Random seed (0 picks one from the clock)")

	count := flag.Int("count", 1, "The number of puzzles to generate")
	attempts := flag.Int("attempts", 5, "Attempts per puzzle before giving up on a valid one")
	concurrency := flag.Int("concurrency", 0, "Puzzles generated at once (0 for no limit)")
	timeout := flag.Duration("timeout", 1*time.Minute, "The timeout for the generator")

	asJSON := flag.Bool("json", false, "Print puzzles as JSON")
	solve := flag.Bool("solve", false, "Solve the first puzzle interactively")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")

	geminiProject := flag.String("gemini-project", os.Getenv("GCP_PROJECT_ID"), "GCP project used to write missing definitions with Gemini")
	geminiRegion := flag.String("gemini-region", "", "Vertex AI region for Gemini")

	profile := flag.Bool("profile", false, "Profile the generator")
	profileFile := flag.String("profile-file", "cpu.pprof", "The file to write the CPU profile to")
	memoryProfileFile := flag.String("memory-profile-file", "mem.pprof", "The file to write the memory profile to")

	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Println("Invalid -log-level:", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *dictFile == "" && *wordsFile == "" {
		fmt.Println("One of -dict or -words is required")
		os.Exit(1)
	}
	sel, err := wordbank.ParseSelection(*selection)
	if err != nil {
		fmt.Println("Invalid -selection:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	d, err := loadDictionary(*dictFile, *wordsFile)
	if err != nil {
		logger.Error("loading dictionary", "err", err)
		os.Exit(1)
	}
	logger.Info("loaded dictionary", "words", len(d))

	if undefined := d.Undefined(); len(undefined) > 0 && *geminiProject != "" {
		definer, err := dictionary.NewGeminiDefiner(ctx, *geminiProject, *geminiRegion)
		if err != nil {
			logger.Error("creating Gemini client", "err", err)
			os.Exit(1)
		}
		n, err := dictionary.FillDefinitions(ctx, d, definer, 50)
		if err != nil {
			logger.Error("writing definitions", "err", err)
			os.Exit(1)
		}
		logger.Info("wrote definitions", "words", n, "missing", len(undefined)-n)
	}
	if n := d.DropUndefined(); n > 0 {
		logger.Warn("dropped words without definitions", "words", n)
	}

	if *saveDict != "" {
		if err := writeDictionary(*saveDict, d); err != nil {
			logger.Error("saving dictionary", "err", err)
			os.Exit(1)
		}
	}

	var excludedWords []string
	if *excludedFile != "" {
		excluded, err := loadFromFile(*excludedFile)
		if err != nil {
			logger.Error("loading excluded words", "err", err)
			os.Exit(1)
		}
		excludedWords = excluded.Words()
		logger.Info("loaded excluded words", "words", len(excludedWords))
	}

	var mf *os.File
	if *profile {
		f, err := os.Create(*profileFile)
		if err != nil {
			fmt.Println("Error creating profile file:", err)
			os.Exit(1)
		}
		defer f.Close()

		mf, err = os.Create(*memoryProfileFile)
		if err != nil {
			fmt.Println("Error creating memory profile file:", err)
			os.Exit(1)
		}
		defer mf.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Println("Error starting CPU profile:", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	logger.Info("generating", "count", *count, "rows", *rows, "cols", *cols, "seed", *seed)

	results, err := batch.Produce(ctx, d, *count, batch.Params{
		Generator: freeform.GeneratorParams{
			Rows:          *rows,
			Cols:          *cols,
			MaxWordLength: *maxLength,
			AllowRepeats:  *repeats,
			Selection:     sel,
			ExcludedWords: excludedWords,
			Logger:        logger,
		},
		Seed:        *seed,
		Attempts:    *attempts,
		Concurrency: *concurrency,
	})
	if err != nil {
		logger.Error("generating puzzles", "err", err)
		os.Exit(1)
	}

	for _, r := range results {
		logger.Info("generated puzzle", "id", r.Puzzle.ID, "attempts", r.Attempts, "stats", r.Stats)
		if *asJSON {
			if err := json.NewEncoder(os.Stdout).Encode(r.Puzzle); err != nil {
				logger.Error("encoding puzzle", "err", err)
				os.Exit(1)
			}
			continue
		}
		printPuzzle(os.Stdout, r.Puzzle)
	}

	if mf != nil {
		pprof.WriteHeapProfile(mf)
	}

	if *solve && len(results) > 0 {
		runSession(os.Stdin, os.Stdout, freeform.NewSession(results[0].Puzzle))
	}
}

func loadDictionary(dictFile, wordsFile string) (dictionary.Dictionary, error) {
	d := make(dictionary.Dictionary)
	if dictFile != "" {
		f, err := os.Open(dictFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if d, err = dictionary.LoadJSON(f); err != nil {
			return nil, fmt.Errorf("%s: %w", dictFile, err)
		}
	}
	if wordsFile != "" {
		list, err := loadFromFile(wordsFile)
		if err != nil {
			return nil, err
		}
		for word, e := range list {
			if _, ok := d[word]; !ok {
				d[word] = e
			}
		}
	}
	return d, nil
}

func loadFromFile(path string) (dictionary.Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := dictionary.LoadWordList(f, freeform.MinWordLength, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func writeDictionary(path string, d dictionary.Dictionary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printPuzzle(w io.Writer, p *freeform.Puzzle) {
	fmt.Fprintln(w, "--------------------------------")
	fmt.Fprintln(w, p.Grid.Repr())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Across")
	for _, c := range p.Across {
		fmt.Fprintln(w, "  "+c.Label())
	}
	fmt.Fprintln(w, "Down")
	for _, c := range p.Down {
		fmt.Fprintln(w, "  "+c.Label())
	}
}

// runSession reads commands until the puzzle is solved or input ends:
// "3 down" selects a clue, "?" shows the next definition and anything else is
// an answer to the selected clue.
func runSession(in io.Reader, out io.Writer, s *freeform.Session) {
	fmt.Fprintln(out, s.Selected().Label())
	scanner := bufio.NewScanner(in)
	for fmt.Fprint(out, "> "); scanner.Scan(); fmt.Fprint(out, "> ") {
		command := strings.TrimSpace(scanner.Text())
		switch {
		case command == "":
			continue
		case command == "?":
			def, err := s.CycleDefinition()
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintln(out, def)
		case command[0] >= '0' && command[0] <= '9':
			index, o, err := freeform.ParseClueRef(command)
			if err == nil {
				_, err = s.Select(index, o)
			}
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintln(out, s.Selected().Label())
		default:
			done, err := s.Answer(command)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintln(out, strings.Join(s.Lines(), "\n"))
			if done {
				fmt.Fprintln(out, "Solved!")
				return
			}
		}
	}
}
