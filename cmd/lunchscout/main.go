package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/jmoon-dev/lunchscout/internal/aggregator"
	"github.com/jmoon-dev/lunchscout/internal/enrich"
	"github.com/jmoon-dev/lunchscout/internal/geo"
	"github.com/jmoon-dev/lunchscout/internal/geocode"
	"github.com/jmoon-dev/lunchscout/internal/menu"
	"github.com/jmoon-dev/lunchscout/internal/prefs"
	"github.com/jmoon-dev/lunchscout/internal/provider"
	"github.com/jmoon-dev/lunchscout/internal/storage"
	"github.com/jmoon-dev/lunchscout/pkg/types"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

const legacyCachePath = "search_cache.json"

func main() {
	var (
		query       = flag.String("query", "", "location search query, e.g. \"강남역 맛집\"")
		modeFlag    = flag.String("mode", "popular", "result ordering: popular or random")
		refresh     = flag.Bool("refresh", false, "bypass the cache and refetch")
		topN        = flag.Int("top", 5, "menu keywords to suggest")
		dbPath      = flag.String("db", "lunchscout.db", "cache database path")
		prefsPath   = flag.String("prefs", "prefs.json", "preference file path")
		lat         = flag.Float64("lat", 0, "current latitude for distance filtering")
		lon         = flag.Float64("lon", 0, "current longitude for distance filtering")
		verbose     = flag.Bool("verbose", false, "debug logging")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("LunchScout\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Build Mode: %s\n", storage.BuildMode)
		fmt.Printf("SQLite Driver: %s\n", storage.DriverName)
		os.Exit(0)
	}

	// Local .env keeps provider credentials out of the shell history.
	_ = godotenv.Load()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger, options{
		query:     *query,
		mode:      aggregator.Mode(*modeFlag),
		refresh:   *refresh,
		topN:      *topN,
		dbPath:    *dbPath,
		prefsPath: *prefsPath,
		lat:       *lat,
		lon:       *lon,
	}); err != nil {
		logger.Error().Err(err).Msg("lunchscout failed")
		os.Exit(1)
	}
}

type options struct {
	query     string
	mode      aggregator.Mode
	refresh   bool
	topN      int
	dbPath    string
	prefsPath string
	lat, lon  float64
}

func run(ctx context.Context, logger zerolog.Logger, opts options) error {
	if opts.mode != aggregator.ModePopular && opts.mode != aggregator.ModeRandom {
		return fmt.Errorf("unknown mode %q (want popular or random)", opts.mode)
	}

	query := strings.TrimSpace(opts.query)
	if query == "" && !hasPosition(opts) {
		return fmt.Errorf("either -query or -lat/-lon is required")
	}

	client := newSearchClient(logger)

	store, err := storage.Open(opts.dbPath, logger)
	if err != nil {
		return fmt.Errorf("open cache store: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	if migrated, err := store.MigrateLegacyJSON(ctx, legacyCachePath); err != nil {
		logger.Warn().Err(err).Msg("legacy cache migration failed")
	} else if migrated > 0 {
		logger.Info().Int("entries", migrated).Msg("migrated legacy JSON cache")
	}

	preferences := prefs.NewFileStore(opts.prefsPath).Load()

	// When only coordinates are given, resolve them to a place name so the
	// provider query reads like something a person would type.
	if query == "" {
		name := geocode.New(logger).Locate(ctx, opts.lat, opts.lon)
		if name == "" {
			return fmt.Errorf("could not resolve a place name for %.5f,%.5f", opts.lat, opts.lon)
		}
		query = aggregator.BuildQuery(name, nil)
		logger.Info().Str("query", query).Msg("resolved position to query")
	}

	agg := aggregator.New(client, store, logger, nil)
	records, err := agg.Search(ctx, query, opts.mode, opts.refresh)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("검색 결과가 없습니다.")
		return nil
	}

	records = enrich.NewPipeline().Process(records)
	records = applyDislikes(records, preferences)

	searchRadius := 0.0
	if hasPosition(opts) {
		kept, radius, ok := geo.FilterProgressive(records, opts.lat, opts.lon, geo.DefaultRadii)
		if ok {
			records, searchRadius = kept, radius
		} else {
			logger.Warn().Msg("no places within the largest radius, keeping all results")
		}
	}

	extractor := menu.NewExtractor()
	keywords := extractor.Extract(records, opts.topN, preferences)

	printReport(query, records, keywords, extractor.PickRandom(keywords), searchRadius)
	return nil
}

func hasPosition(opts options) bool {
	return opts.lat != 0 || opts.lon != 0
}

// newSearchClient returns the real provider when credentials are configured,
// otherwise a canned demo client so the pipeline stays explorable offline.
func newSearchClient(logger zerolog.Logger) provider.Client {
	client, err := provider.NewFromEnv(logger)
	if err != nil {
		logger.Warn().Err(err).Msg("no provider credentials, using built-in demo data")
		return demoClient{}
	}
	return client
}

func applyDislikes(records []types.PlaceRecord, set types.PreferenceSet) []types.PlaceRecord {
	if len(set.Dislikes) == 0 {
		return records
	}

	kept := records[:0]
	for _, record := range records {
		disliked := false
		for _, keyword := range set.Dislikes {
			if record.MatchesKeyword(keyword) {
				disliked = true
				break
			}
		}
		if !disliked {
			kept = append(kept, record)
		}
	}
	return kept
}

func printReport(query string, records []types.PlaceRecord, keywords []string, pick string, radius float64) {
	fmt.Printf("🍽  %s 점심 추천 (%d곳)\n\n", query, len(records))
	if radius > 0 {
		fmt.Printf("반경 %.0fm 이내\n\n", radius)
	}

	limit := len(records)
	if limit > 10 {
		limit = 10
	}
	for i, record := range records[:limit] {
		fmt.Printf("%2d. %s\n", i+1, record.CleanTitle())
		fmt.Printf("    %s\n", record.Category)
		if addr := record.RoadAddress; addr != "" {
			fmt.Printf("    %s\n", addr)
		}
		if e := record.Enrichment; e != nil {
			fmt.Printf("    평점 %.2f (%s) · 점심점수 %d · %s\n",
				e.AdjustedRating, e.DeviationLabel, e.LunchScore, sentimentLabel(e.Sentiment))
			if len(e.LunchKeywords) > 0 {
				fmt.Printf("    리뷰 키워드: %s\n", strings.Join(e.LunchKeywords, ", "))
			}
		}
		fmt.Println()
	}

	if len(keywords) > 0 {
		fmt.Printf("오늘의 메뉴 후보: %s\n", strings.Join(keywords, ", "))
	}
	if pick != "" {
		fmt.Printf("오늘은 이거다: %s\n", pick)
	}
}

func sentimentLabel(s types.Sentiment) string {
	switch s {
	case types.SentimentGood:
		return "점심 추천"
	case types.SentimentBad:
		return "점심엔 비추"
	case types.SentimentNeutral:
		return "무난"
	default:
		return "리뷰 정보 없음"
	}
}
