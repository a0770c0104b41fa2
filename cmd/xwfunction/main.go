package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/goccy/go-json"

	"crosswarped.com/freeform"
	"crosswarped.com/freeform/internal/batch"
	"crosswarped.com/freeform/internal/dictionary"
	"crosswarped.com/freeform/internal/wordbank"
)

const maxPuzzles = 10

type GenerateCrosswordRequest struct {
	Rows          int      `json:"rows"`
	Cols          int      `json:"cols"`
	MaxWordLength int      `json:"maxWordLength"`
	WordScope     string   `json:"wordScope"`
	MinFrequency  int      `json:"minFrequency"`
	ExcludedWords []string `json:"excludedWords"`
	AllowRepeats  bool     `json:"allowRepeats"`
	Selection     string   `json:"selection"`
	Seed          uint64   `json:"seed"`
	Attempts      int      `json:"attempts"`
	MaxPuzzles    int      `json:"maxPuzzles"`
}

type GenerateCrosswordResponse struct {
	Success bool               `json:"success"`
	Puzzles []*freeform.Puzzle `json:"puzzles"`
	Error   string             `json:"error,omitempty"`
}

type server struct {
	logger *slog.Logger
	// loadScope fetches the dictionary for a word scope.
	loadScope func(ctx context.Context, scope string, minFrequency int) (dictionary.Dictionary, error)
	// loadDefault returns the dictionary used when no scope is requested.
	loadDefault func() (dictionary.Dictionary, error)
}

func newServer(logger *slog.Logger) *server {
	source := dictionary.BigQuerySource{
		ProjectID: os.Getenv("GCP_PROJECT_ID"),
		Table:     os.Getenv("BIGQUERY_TABLE"),
	}
	return &server{
		logger:      logger,
		loadScope:   source.Load,
		loadDefault: sync.OnceValues(func() (dictionary.Dictionary, error) { return loadFile(os.Getenv("DICTIONARY_PATH")) }),
	}
}

func loadFile(path string) (dictionary.Dictionary, error) {
	if path == "" {
		return nil, fmt.Errorf("DICTIONARY_PATH is not set and no wordScope was given")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dictionary.LoadJSON(f)
}

func (s *server) execute(ctx context.Context, req GenerateCrosswordRequest) ([]*freeform.Puzzle, error) {
	if req.Rows < 1 || req.Cols < freeform.MinWordLength {
		return nil, fmt.Errorf("rows must be at least 1 and cols at least %d", freeform.MinWordLength)
	}
	if req.MaxPuzzles <= 0 {
		return nil, fmt.Errorf("maxPuzzles must be at least 1")
	}
	if req.MaxPuzzles > maxPuzzles {
		return nil, fmt.Errorf("maxPuzzles must be at most %d", maxPuzzles)
	}
	sel, err := wordbank.ParseSelection(req.Selection)
	if err != nil {
		return nil, err
	}

	var d dictionary.Dictionary
	if req.WordScope != "" {
		if d, err = s.loadScope(ctx, req.WordScope, req.MinFrequency); err != nil {
			return nil, fmt.Errorf("loading scope %q: %w", req.WordScope, err)
		}
	} else if d, err = s.loadDefault(); err != nil {
		return nil, fmt.Errorf("loading dictionary: %w", err)
	}
	s.logger.Info("loaded dictionary", "words", len(d), "scope", req.WordScope)

	excluded := make([]string, 0, len(req.ExcludedWords))
	for _, w := range req.ExcludedWords {
		if key, err := dictionary.Normalize(w); err == nil {
			excluded = append(excluded, key)
		}
	}

	seed := req.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	deadline, ok := ctx.Deadline()
	timeout := 1 * time.Minute
	if ok {
		timeout = time.Until(deadline) - 5*time.Second
		s.logger.Info("setting timeout", "timeout", timeout)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results, err := batch.Produce(ctx, d, req.MaxPuzzles, batch.Params{
		Generator: freeform.GeneratorParams{
			Rows:          req.Rows,
			Cols:          req.Cols,
			MaxWordLength: req.MaxWordLength,
			AllowRepeats:  req.AllowRepeats,
			Selection:     sel,
			ExcludedWords: excluded,
			Logger:        s.logger,
		},
		Seed:     seed,
		Attempts: max(req.Attempts, 1),
	})
	if err != nil {
		return nil, err
	}

	puzzles := make([]*freeform.Puzzle, len(results))
	for i, r := range results {
		s.logger.Info("generated puzzle", "n", i+1, "of", len(results), "id", r.Puzzle.ID, "stats", r.Stats)
		puzzles[i] = r.Puzzle
	}
	return puzzles, nil
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func (s *server) generateCrossword(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	// Handle OPTIONS request for CORS preflight
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	var req GenerateCrosswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("parsing JSON body", "err", err)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(GenerateCrosswordResponse{
			Success: false,
			Error:   fmt.Sprintf("Invalid JSON: %v", err),
		})
		return
	}

	puzzles, err := s.execute(r.Context(), req)

	response := GenerateCrosswordResponse{
		Success: err == nil,
		Puzzles: puzzles,
	}
	if err != nil {
		s.logger.Error("generating crossword", "err", err)
		response.Error = err.Error()
	}

	b, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("marshaling response", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "Internal server error"}`)
		return
	}
	w.Write(b)
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	funcframework.RegisterHTTPFunction("/generate-crossword", newServer(logger).generateCrossword)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		logger.Error("funcframework.StartHostPort", "err", err)
		os.Exit(1)
	}
}
