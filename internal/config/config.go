// Package config provides application configuration.
//
// Configuration is layered: built-in defaults, then an optional furg.toml
// config file, then FURG_-prefixed environment variables. Engine tunables
// (rebalance threshold, insight thresholds, risk-profile targets) live here so
// deployments can adjust them without a rebuild.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the full application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Engine   EngineConfig
	DemoMode bool `mapstructure:"demo_mode"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string
	Port string
}

// Address returns the full address to bind the server to.
func (s ServerConfig) Address() string {
	return s.Host + ":" + s.Port
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// SessionConfig holds session settings.
type SessionConfig struct {
	MaxAgeHours int `mapstructure:"max_age_hours"`
}

// EngineConfig holds projection engine tunables.
type EngineConfig struct {
	// RebalanceThreshold is the stock/bond drift, in percentage points, above
	// which a portfolio is flagged off-balance.
	RebalanceThreshold float64 `mapstructure:"rebalance_threshold"`

	// Insight rule thresholds.
	BaseLivingExpenses  float64 `mapstructure:"base_living_expenses"`
	EmergencyMinMonths  float64 `mapstructure:"emergency_min_months"`
	EmergencyMaxMonths  float64 `mapstructure:"emergency_max_months"`
	UtilizationWarning  float64 `mapstructure:"utilization_warning"`
	InvestmentThreshold float64 `mapstructure:"investment_threshold"`
	MilestoneMinimum    float64 `mapstructure:"milestone_minimum"`
	MilestoneStep       float64 `mapstructure:"milestone_step"`

	// DealMatchThreshold is the maximum normalized edit distance for a deal
	// title to match a wishlist item.
	DealMatchThreshold float64 `mapstructure:"deal_match_threshold"`

	// DiversificationWeights weight the named factors of the diversification
	// score. Unlisted factors count with weight 1.
	DiversificationWeights map[string]float64 `mapstructure:"diversification_weights"`

	// Targets holds per-profile allocation targets as percentages.
	Targets map[string]TargetConfig `mapstructure:"targets"`
}

// TargetConfig is the target allocation for one risk profile.
type TargetConfig struct {
	Stocks      float64
	Bonds       float64
	Alternative float64
	Cash        float64
}

// Load reads configuration from file and env. Env var overrides use prefix FURG_.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("database.path", filepath.Join("data", "furg.db"))
	v.SetDefault("session.max_age_hours", 24*7)
	v.SetDefault("demo_mode", false)

	v.SetDefault("engine.rebalance_threshold", 5.0)
	v.SetDefault("engine.base_living_expenses", 2500.0)
	v.SetDefault("engine.emergency_min_months", 3.0)
	v.SetDefault("engine.emergency_max_months", 6.0)
	v.SetDefault("engine.utilization_warning", 30.0)
	v.SetDefault("engine.investment_threshold", 50000.0)
	v.SetDefault("engine.milestone_minimum", 100000.0)
	v.SetDefault("engine.milestone_step", 50000.0)
	v.SetDefault("engine.deal_match_threshold", 0.4)
	v.SetDefault("engine.targets.conservative", map[string]any{
		"stocks": 40.0, "bonds": 45.0, "alternative": 5.0, "cash": 10.0,
	})
	v.SetDefault("engine.targets.moderate", map[string]any{
		"stocks": 60.0, "bonds": 30.0, "alternative": 5.0, "cash": 5.0,
	})
	v.SetDefault("engine.targets.aggressive", map[string]any{
		"stocks": 80.0, "bonds": 10.0, "alternative": 7.0, "cash": 3.0,
	})

	v.SetConfigType("toml")
	if cfgPath := os.Getenv("FURG_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "furg"))
		v.SetConfigName("furg")
	}

	v.SetEnvPrefix("FURG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// config file is optional
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
