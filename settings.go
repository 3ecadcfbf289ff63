package valutatrade

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// CoinGeckoSettings configures the crypto price source.
type CoinGeckoSettings struct {
	URL        string            `yaml:"url" env:"VTH_COINGECKO_URL" env-default:"https://api.coingecko.com/api/v3/simple/price"`
	Currencies []string          `yaml:"currencies" env:"VTH_CRYPTO_CURRENCIES" env-default:"BTC,ETH,SOL"`
	IDMap      map[string]string `yaml:"id_map"`
}

// ExchangeRateSettings configures the fiat price source.
type ExchangeRateSettings struct {
	URL        string   `yaml:"url" env:"VTH_EXCHANGERATE_URL" env-default:"https://v6.exchangerate-api.com/v6"`
	APIKey     string   `yaml:"api_key" env:"EXCHANGERATE_API_KEY"`
	Currencies []string `yaml:"currencies" env:"VTH_FIAT_CURRENCIES" env-default:"EUR,GBP,RUB"`
}

// Settings is the configuration surface of the ledger. Values are read from
// an optional YAML file with environment overrides; every field carries a
// workable default so the CLI runs with no configuration at all.
type Settings struct {
	DataDir        string        `yaml:"data_dir" env:"VTH_DATA_DIR" env-default:"data"`
	ActionLogPath  string        `yaml:"action_log" env:"VTH_ACTION_LOG" env-default:"logs/actions.log"`
	BaseCurrency   string        `yaml:"base_currency" env:"VTH_BASE_CURRENCY" env-default:"USD"`
	RatesTTL       time.Duration `yaml:"rates_ttl" env:"VTH_RATES_TTL" env-default:"300s"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"VTH_REQUEST_TIMEOUT" env-default:"10s"`

	// Background refresh loop.
	RefreshInterval time.Duration `yaml:"refresh_interval" env:"VTH_REFRESH_INTERVAL" env-default:"1h"`
	ErrorBackoff    time.Duration `yaml:"error_backoff" env:"VTH_ERROR_BACKOFF" env-default:"60s"`

	CoinGecko    CoinGeckoSettings    `yaml:"coingecko"`
	ExchangeRate ExchangeRateSettings `yaml:"exchangerate"`
}

// defaultCryptoIDs maps currency codes to CoinGecko identifiers for the
// currencies supported out of the box.
var defaultCryptoIDs = map[string]string{
	"BTC": "bitcoin",
	"ETH": "ethereum",
	"SOL": "solana",
}

// LoadSettings reads settings from path (YAML) with environment overrides.
// An empty path, or a path that does not exist, falls back to environment
// and defaults only.
func LoadSettings(path string) (*Settings, error) {
	var s Settings
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &s); err != nil {
				return nil, fmt.Errorf("could not read config %q: %w", path, err)
			}
			return s.withDefaults(), nil
		}
	}
	if err := cleanenv.ReadEnv(&s); err != nil {
		return nil, fmt.Errorf("could not read settings from environment: %w", err)
	}
	return s.withDefaults(), nil
}

func (s *Settings) withDefaults() *Settings {
	if len(s.CoinGecko.IDMap) == 0 {
		s.CoinGecko.IDMap = defaultCryptoIDs
	}
	return s
}
