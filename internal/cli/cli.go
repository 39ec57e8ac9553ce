package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/ref-stats/internal/enrich"
	"github.com/pfrederiksen/ref-stats/internal/extract"
	"github.com/pfrederiksen/ref-stats/internal/geocode"
	"github.com/pfrederiksen/ref-stats/internal/logger"
	"github.com/pfrederiksen/ref-stats/internal/referee"
	"github.com/pfrederiksen/ref-stats/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Environment variables checked for the API key when --google-api-key is
// not given, in order.
const (
	EnvGeocodingKey = "GOOGLE_GEOCODING_API_KEY"
	EnvMapsKey      = "GOOGLE_MAPS_API_KEY"
)

// ErrNoParseableRecords is returned when every input document fails
// extraction. No output is written in that case.
var ErrNoParseableRecords = errors.New("no parseable referee HTML files found")

var (
	flagInputDir      string
	flagOutput        string
	flagAPIKey        string
	flagSkipGeocoding bool
	flagVerbose       bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ref-stats",
		Short: "Extract referee game records from saved HTML pages",
		Long: `Parses a directory of saved referee HTML pages into structured records,
resolves each game location to coordinates via the Google Geocoding API, and
writes a JSON snapshot with derived travel and workload statistics
(total miles travelled, most common teams, longest days-worked streak).`,
		RunE: runPipeline,
	}

	cmd.Flags().StringVar(&flagInputDir, "input-dir", ".", "Directory containing referee HTML files")
	cmd.Flags().StringVar(&flagOutput, "output", "referees.json", "Output JSON file path")
	cmd.Flags().StringVar(&flagAPIKey, "google-api-key", "",
		fmt.Sprintf("Google Geocoding API key (or env: %s / %s)", EnvGeocodingKey, EnvMapsKey))
	cmd.Flags().BoolVar(&flagSkipGeocoding, "skip-geocoding", false,
		"Write extracted records without coordinates or derived statistics")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging and a per-referee summary")

	return cmd
}

// runPipeline is the main command logic
func runPipeline(cmd *cobra.Command, args []string) error {
	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, os.Stderr)
	logger.SetDefault(log)

	// Missing credential is a startup failure, caught before any file is read.
	apiKey := resolveAPIKey(flagAPIKey)
	if !flagSkipGeocoding && apiKey == "" {
		return fmt.Errorf("missing Google API key: provide --google-api-key or set %s", EnvGeocodingKey)
	}

	docs, err := storage.ReadDocuments(flagInputDir)
	if err != nil {
		return err
	}
	log.Debug("scanned input directory", logger.Fields{"dir": flagInputDir, "files": len(docs)})

	refs := extractAll(docs, log)
	if len(refs) == 0 {
		return fmt.Errorf("%w in: %s", ErrNoParseableRecords, flagInputDir)
	}

	if !flagSkipGeocoding {
		client := geocode.NewGoogleClient(apiKey, geocode.DefaultTimeout, log)
		enricher := enrich.New(client, log)
		failures := enricher.All(cmd.Context(), refs, geocode.NewCache())
		if len(failures) > 0 {
			log.Warn("some referees could not be enriched", logger.Fields{"failed": len(failures)})
		}
	}

	if err := storage.WriteReferees(flagOutput, refs); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d referees to %s\n", len(refs), flagOutput)
	if flagVerbose {
		writeSummary(cmd.OutOrStdout(), refs)
		log.Debug("run counters", countersAsFields())
	}
	return nil
}

// resolveAPIKey returns the explicit key if set, otherwise the first
// non-empty fallback environment variable.
func resolveAPIKey(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if key := os.Getenv(EnvGeocodingKey); key != "" {
		return key
	}
	return os.Getenv(EnvMapsKey)
}

// extractAll parses every document, skipping and logging the ones that fail
// a document-level precondition.
func extractAll(docs []storage.Document, log *logger.Logger) []*referee.Referee {
	refs := make([]*referee.Referee, 0, len(docs))
	for _, doc := range docs {
		name := filepath.Base(doc.Path)

		ref, err := extract.Document(doc.Contents)
		if err != nil {
			logger.IncrCounter("extract.documents_skipped")
			log.Warn("skipping document", logger.Fields{
				"file":   name,
				"reason": extractErrorKind(err),
			})
			continue
		}

		logger.IncrCounter("extract.documents_parsed")
		log.Debug("parsed referee", logger.Fields{
			"file":       name,
			"referee_id": ref.ID,
			"games":      len(ref.Games),
		})
		refs = append(refs, ref)
	}
	return refs
}

// extractErrorKind names the unmet precondition for skip diagnostics.
func extractErrorKind(err error) string {
	switch {
	case errors.Is(err, extract.ErrMissingID):
		return "missing referee id"
	case errors.Is(err, extract.ErrMissingName):
		return "missing referee name"
	case errors.Is(err, extract.ErrMissingTable):
		return "missing ratings table"
	default:
		return err.Error()
	}
}

func countersAsFields() logger.Fields {
	fields := logger.Fields{}
	for name, value := range logger.GetMetricsSnapshot() {
		fields[name] = value
	}
	return fields
}
