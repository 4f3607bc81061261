package gate

import (
	"escaperoom/internal/config"
)

const (
	// SecretEnvVar names the variable inspected by level 2.
	SecretEnvVar = "SECRET_KEY"
	// ExpectedSecret is the value level 2 requires. It is the clue revealed by level 1.
	ExpectedSecret = "Fusion-the-goats"
	// ExpectedGoal is the trimmed content level 3 requires. It is the clue revealed by level 2.
	ExpectedGoal = "LEVEL 4 IS DOCKER COMPOSE"

	DefaultGoalPath = "/data/GOAL.txt"
	DefaultAPIURL   = "http://api:5000"
	DefaultGameURL  = "http://game"
)

// Rules holds the expectations of every level.
type Rules struct {
	SecretEnvVar   string
	ExpectedSecret string
	GoalPath       string
	ExpectedGoal   string
	APIURL         string
	GameURL        string
}

// DefaultRules returns the rules of the workshop deployment.
func DefaultRules() Rules {
	return Rules{
		SecretEnvVar:   SecretEnvVar,
		ExpectedSecret: ExpectedSecret,
		GoalPath:       DefaultGoalPath,
		ExpectedGoal:   ExpectedGoal,
		APIURL:         DefaultAPIURL,
		GameURL:        DefaultGameURL,
	}
}

// NewRules constructs Rules from the application config. The secret and the
// goal phrase are not configurable.
func NewRules(cfg *config.Config) Rules {
	r := DefaultRules()
	if cfg.Gates.GoalPath != "" {
		r.GoalPath = cfg.Gates.GoalPath
	}
	if cfg.Gates.APIURL != "" {
		r.APIURL = cfg.Gates.APIURL
	}
	if cfg.Gates.GameURL != "" {
		r.GameURL = cfg.Gates.GameURL
	}

	return r
}
