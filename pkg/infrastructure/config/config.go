package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/polyfab/resin-planner/pkg/domain/entities"
	"github.com/polyfab/resin-planner/pkg/domain/services"
)

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Planning PlanningConfig `mapstructure:"planning"`
	Advisor  AdvisorConfig  `mapstructure:"advisor"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PlanningConfig carries the opening state and policy knobs. Values are
// plain numbers at this boundary and converted to decimals before they reach
// the domain.
type PlanningConfig struct {
	OpeningFGInventory     float64 `mapstructure:"opening_fg_inventory"`
	OpeningResinInventory  float64 `mapstructure:"opening_resin_inventory"`
	OpeningBlendedPrice    float64 `mapstructure:"opening_blended_price"`
	FGSafetyDays           float64 `mapstructure:"fg_safety_days"`
	ResinSafetyDays        float64 `mapstructure:"resin_safety_days"`
	ProductionDaysPerMonth int     `mapstructure:"production_days_per_month"`
	UsageRatio             float64 `mapstructure:"usage_ratio"`
	CapacityRule           string  `mapstructure:"capacity_rule"`
	FGCapacity             float64 `mapstructure:"fg_capacity"`
}

// AdvisorConfig selects the safety-stock advisor. With no trend labels the
// fixed advisor applies; with labels, resin coverage is widened or narrowed
// per period by the configured adjustment.
type AdvisorConfig struct {
	ResinAdjustmentDays float64  `mapstructure:"resin_adjustment_days"`
	Trends              []string `mapstructure:"trends"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load reads configuration with priority: environment variables
// (RESINPLAN_ prefix), then the config file, then defaults. A missing config
// file is not an error; the defaults reproduce the planner's historical
// baseline setup.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("resin-planner")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/resin-planner")
	}

	v.SetEnvPrefix("RESINPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Only the config-file-not-found case is tolerated; an explicitly
		// named file must exist and parse.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if _, err := cfg.Parameters(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := cfg.PolicyAdvisor(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("planning.opening_fg_inventory", 465.0)
	v.SetDefault("planning.opening_resin_inventory", 132.0)
	v.SetDefault("planning.opening_blended_price", 694.0)
	v.SetDefault("planning.fg_safety_days", 15.0)
	v.SetDefault("planning.resin_safety_days", 5.0)
	v.SetDefault("planning.production_days_per_month", 25)
	v.SetDefault("planning.usage_ratio", 0.725)
	v.SetDefault("planning.capacity_rule", string(entities.CapacityNone))
	v.SetDefault("planning.fg_capacity", 0.0)

	v.SetDefault("advisor.resin_adjustment_days", 3.0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)
}

// Parameters converts the planning section into validated domain parameters.
func (c *Config) Parameters() (entities.PlanningParameters, error) {
	params := entities.PlanningParameters{
		OpeningFGInventory:     decimal.NewFromFloat(c.Planning.OpeningFGInventory),
		OpeningResinInventory:  decimal.NewFromFloat(c.Planning.OpeningResinInventory),
		OpeningBlendedPrice:    decimal.NewFromFloat(c.Planning.OpeningBlendedPrice),
		FGSafetyDays:           decimal.NewFromFloat(c.Planning.FGSafetyDays),
		ResinSafetyDays:        decimal.NewFromFloat(c.Planning.ResinSafetyDays),
		ProductionDaysPerMonth: c.Planning.ProductionDaysPerMonth,
		UsageRatio:             decimal.NewFromFloat(c.Planning.UsageRatio),
		Capacity:               entities.CapacityRule(c.Planning.CapacityRule),
		FGCapacity:             decimal.NewFromFloat(c.Planning.FGCapacity),
	}

	if err := params.Validate(); err != nil {
		return entities.PlanningParameters{}, err
	}
	return params, nil
}

// PolicyAdvisor builds the advisor configured for the run: fixed coverage
// when no trends are given, trend-varying otherwise.
func (c *Config) PolicyAdvisor() (services.PolicyAdvisor, error) {
	fgDays := decimal.NewFromFloat(c.Planning.FGSafetyDays)
	resinDays := decimal.NewFromFloat(c.Planning.ResinSafetyDays)

	if len(c.Advisor.Trends) == 0 {
		return services.NewFixedPolicyAdvisor(fgDays, resinDays), nil
	}

	trends := make([]services.PriceTrend, len(c.Advisor.Trends))
	for i, label := range c.Advisor.Trends {
		trend, err := services.ParsePriceTrend(label)
		if err != nil {
			return nil, fmt.Errorf("advisor trend %d: %w", i, err)
		}
		trends[i] = trend
	}

	base := entities.SafetyDays{FG: fgDays, Resin: resinDays}
	adjustment := decimal.NewFromFloat(c.Advisor.ResinAdjustmentDays)
	if adjustment.IsNegative() {
		return nil, fmt.Errorf("advisor resin_adjustment_days must be non-negative, got %s", adjustment)
	}

	return services.NewTrendPolicyAdvisor(base, adjustment, trends), nil
}
