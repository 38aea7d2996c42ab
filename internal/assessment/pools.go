package assessment

import (
	_ "embed"
	"fmt"

	domain "hireflow/internal/domain/assessment"

	"gopkg.in/yaml.v3"
)

//go:embed fallback.yaml
var fallbackYAML []byte

// Pools is the static question bank used whenever the model is unavailable or
// its reply does not validate.
type Pools struct {
	Questions []domain.Question        `yaml:"questions"`
	Reasoning []domain.Question        `yaml:"reasoning"`
	Aptitude  []domain.Question        `yaml:"aptitude"`
	Coding    []domain.CodingChallenge `yaml:"coding"`
}

// Second-round fallback sample sizes.
const (
	fallbackReasoning = 3
	fallbackAptitude  = 3
	fallbackCoding    = 2
)

func LoadPools(b []byte) (Pools, error) {
	var p Pools
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Pools{}, fmt.Errorf("decode fallback pools: %w", err)
	}
	for i, q := range append(append(append([]domain.Question{}, p.Questions...), p.Reasoning...), p.Aptitude...) {
		if !validQuestion(q) {
			return Pools{}, fmt.Errorf("fallback question %d is invalid: %q", i, q.Question)
		}
	}
	if len(p.Reasoning) < fallbackReasoning || len(p.Aptitude) < fallbackAptitude || len(p.Coding) < fallbackCoding {
		return Pools{}, fmt.Errorf("fallback pools too small for a second round")
	}
	return p, nil
}

// DefaultPools is the embedded bank. It panics on a malformed build.
func DefaultPools() Pools {
	p, err := LoadPools(fallbackYAML)
	if err != nil {
		panic(err)
	}
	return p
}

func validQuestion(q domain.Question) bool {
	return q.Question != "" && q.CorrectAnswer != "" && len(q.Options) == 4
}
