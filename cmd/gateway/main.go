package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"

	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/config"
	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/detect"
	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/enhance"
	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/httputil"
	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/intel"
	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/learning"
	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/lexicon"
	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/telemetry"
)

const Version = "1.0.0"

// Engine bundles the detection components behind the HTTP and CLI fronts.
type Engine struct {
	analyzer     *detect.Analyzer
	orchestrator *enhance.Orchestrator
	learner      *learning.Learner
}

// NewEngine assembles the engine from configuration. Every optional
// collaborator degrades gracefully: no Redis means in-memory learned
// state, no blacklist URL means lookups are skipped.
func NewEngine(cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	lex := lexicon.Default()
	if cfg.LexiconPath != "" {
		loaded, err := lexicon.Load(cfg.LexiconPath)
		if err != nil {
			log.Printf("[WARN] lexicon file ignored: %v", err)
		} else {
			lex = loaded
			log.Printf("[STARTUP] lexicon extended from %s", cfg.LexiconPath)
		}
	}

	var store learning.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		rs := learning.NewRedisStore(client, cfg.RedisKeyPrefix)
		if err := rs.Ping(context.Background()); err != nil {
			log.Printf("[WARN] redis unreachable, learned state is in-memory only: %v", err)
			store = learning.NewMemoryStore()
		} else {
			store = rs
			log.Printf("[STARTUP] learned state persisted to redis at %s", cfg.RedisAddr)
		}
	} else {
		store = learning.NewMemoryStore()
		log.Println("[STARTUP] no redis configured, learned state is in-memory only")
	}

	var checker intel.Checker = intel.NullChecker{}
	if cfg.BlacklistURL != "" {
		sem := httputil.NewSemaphore(cfg.EnrichmentCapacity)
		checker = intel.NewHTTPChecker(cfg.BlacklistURL, cfg.BlacklistTimeout, sem)
		log.Printf("[STARTUP] blacklist feed enabled at %s", cfg.BlacklistURL)
	}

	analyzer := detect.NewAnalyzer(lex)
	learner := learning.NewLearner(context.Background(), store)
	return &Engine{
		analyzer:     analyzer,
		orchestrator: enhance.NewOrchestrator(analyzer, learner, checker, cfg.MaxEnrichments),
		learner:      learner,
	}
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cfg := config.NewDefaultConfig()
		if len(os.Args) > 2 {
			cfg.Port = os.Args[2]
		}
		runHTTPServer(cfg)
	case "analyze":
		if len(os.Args) < 3 {
			fmt.Println("Usage: phishdetect analyze <text>")
			os.Exit(1)
		}
		runCLIAnalyze(strings.Join(os.Args[2:], " "))
	case "version":
		fmt.Printf("phishdetect v%s\n", Version)
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("phishdetect v%s - phishing detection engine\n\n", Version)
	fmt.Println("Usage:")
	fmt.Println("  phishdetect serve [port]     Start HTTP server (default: 8080)")
	fmt.Println("  phishdetect analyze <text>   Analyze a message from the command line")
	fmt.Println("  phishdetect version          Show version")
	fmt.Println("")
	fmt.Println("Environment Variables:")
	fmt.Println("  PHISHDETECT_PORT           HTTP listen port")
	fmt.Println("  PHISHDETECT_REDIS_ADDR     Redis address for learned state (optional)")
	fmt.Println("  PHISHDETECT_BLACKLIST_URL  External threat-feed endpoint (optional)")
	fmt.Println("  PHISHDETECT_LEXICON_PATH   YAML file appended to the built-in lexicon")
}

func runCLIAnalyze(text string) {
	engine := NewEngine(config.NewDefaultConfig())
	result := engine.orchestrator.Analyze(context.Background(), text)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("encode result: %v", err)
	}
	fmt.Println(string(out))
}

func runHTTPServer(cfg *config.Config) {
	engine := NewEngine(cfg)

	app := fiber.New(fiber.Config{
		AppName: "phishdetect",
	})

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"version":  Version,
			"counters": telemetry.Snapshot(),
		})
	})

	app.Post("/analyze", func(c fiber.Ctx) error {
		var req struct {
			Text string `json:"text"`
		}
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
		}
		if req.Text == "" {
			return c.Status(400).JSON(fiber.Map{"error": "text field is required"})
		}

		telemetry.IncAnalysis()
		return c.JSON(engine.analyzer.AnalyzeText(req.Text))
	})

	app.Post("/analyze/enhanced", func(c fiber.Ctx) error {
		var req struct {
			Text string `json:"text"`
		}
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
		}
		if req.Text == "" {
			return c.Status(400).JSON(fiber.Map{"error": "text field is required"})
		}

		telemetry.IncEnhancedAnalysis()
		return c.JSON(engine.orchestrator.Analyze(c.Context(), req.Text))
	})

	app.Post("/feedback", func(c fiber.Ctx) error {
		var req struct {
			Text      string               `json:"text"`
			URLs      []string             `json:"urls"`
			Predicted string               `json:"predicted"`
			Actual    string               `json:"actual"`
			Features  detect.FeatureVector `json:"features"`
		}
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
		}

		predicted := detect.ThreatLevel(req.Predicted)
		actual := detect.ThreatLevel(req.Actual)
		if !predicted.Valid() || !actual.Valid() {
			return c.Status(400).JSON(fiber.Map{"error": "predicted and actual must be low, medium, or high"})
		}

		telemetry.IncFeedback()
		entry := engine.learner.RecordFeedback(c.Context(), req.Text, req.URLs, predicted, actual, req.Features)
		return c.JSON(fiber.Map{
			"recorded":    entry,
			"adjustments": engine.learner.WeightAdjustments(),
		})
	})

	app.Get("/reputation/:domain", func(c fiber.Ctx) error {
		domain := c.Params("domain")
		rep, ok := engine.learner.DomainReputation(domain)
		if !ok {
			return c.Status(404).JSON(fiber.Map{"error": "no reputation record"})
		}
		return c.JSON(fiber.Map{
			"reputation": rep,
			"knownBad":   engine.learner.CheckKnownBadDomain(domain),
		})
	})

	app.Get("/samples", func(c fiber.Ctx) error {
		return c.JSON(lexicon.Samples())
	})

	log.Printf("[STARTUP] phishdetect v%s listening on :%s", Version, cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
