// Package config loads runtime configuration from the environment,
// with a .env file picked up when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults matching the deployed pipeline.
const (
	DefaultStartCongress = 1
	DefaultEndCongress   = 16
	DefaultBillTypes     = "hr,s,hjres,sjres,hconres,sconres,hres,sres"
	DefaultDataset       = "RevolutionCrossroads/loc_chronicling_america_1770-1810"
	DefaultListenAddr    = ":8080"
)

// Config holds every knob the commands need. Zero values mean the
// corresponding feature is disabled or defaulted at the wiring site.
type Config struct {
	// Congress API.
	CongressAPIKey string

	// Object storage. LocalStorePath selects the SQLite store for
	// local runs; empty means S3 against Bucket.
	Bucket         string
	LocalStorePath string

	// Collection scope.
	StartCongress    int
	EndCongress      int
	BillTypes        []string
	Dataset          string
	MaxNewspaperRows int

	// Downstream knowledge base.
	KnowledgeBaseID string
	ModelARN        string

	// Query service.
	ListenAddr string
	PromptsDir string
}

// Load reads the configuration from the environment. A missing .env
// file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		CongressAPIKey:   os.Getenv("CONGRESS_API_KEY"),
		Bucket:           os.Getenv("BUCKET_NAME"),
		LocalStorePath:   os.Getenv("LOCAL_STORE_PATH"),
		StartCongress:    intEnv("START_CONGRESS", DefaultStartCongress),
		EndCongress:      intEnv("END_CONGRESS", DefaultEndCongress),
		BillTypes:        splitEnv("BILL_TYPES", DefaultBillTypes),
		Dataset:          stringEnv("HUGGINGFACE_DATASET", DefaultDataset),
		MaxNewspaperRows: intEnv("MAX_NEWSPAPER_PAGES", 0),
		KnowledgeBaseID:  os.Getenv("KNOWLEDGE_BASE_ID"),
		ModelARN:         os.Getenv("MODEL_ARN"),
		ListenAddr:       stringEnv("LISTEN_ADDR", DefaultListenAddr),
		PromptsDir:       os.Getenv("PROMPTS_DIR"),
	}

	if cfg.StartCongress < 1 || cfg.EndCongress < cfg.StartCongress {
		return nil, fmt.Errorf("invalid congress range %d..%d", cfg.StartCongress, cfg.EndCongress)
	}
	return cfg, nil
}

// Congresses expands the configured range into the list of congress
// numbers to collect.
func (c *Config) Congresses() []int {
	var out []int
	for n := c.StartCongress; n <= c.EndCongress; n++ {
		out = append(out, n)
	}
	return out
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitEnv(key, fallback string) []string {
	raw := stringEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}
