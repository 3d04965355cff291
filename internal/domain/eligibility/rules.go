package eligibility

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules criterios del programa. Se pueden sobreescribir con un archivo YAML
// (ELIGIBILITY_RULES_FILE); los campos vacíos conservan los valores por defecto.
type Rules struct {
	Degrees        []string `yaml:"degrees"`
	Courses        []string `yaml:"courses"`
	ResumeKeywords []string `yaml:"resume_keywords"`
	// RequireResume: si es true, un lead sin señal del CV no es elegible.
	RequireResume bool `yaml:"require_resume"`
}

// DefaultRules criterios vigentes: MTech en CSE, IT o Machine Learning.
func DefaultRules() Rules {
	return Rules{
		Degrees: []string{"mtech"},
		Courses: []string{"cse", "it", "machine learning"},
		ResumeKeywords: []string{
			"m.tech",
			"mtech",
			"m. tech.",
			"master of technology",
			"mtech (cse)",
			"mtech (ece)",
			"mtech (ai)",
			"m.tech in computer science",
		},
	}
}

// LoadRules lee el archivo YAML de reglas. path vacío devuelve DefaultRules.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("leer reglas de elegibilidad: %w", err)
	}
	var file Rules
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return rules, fmt.Errorf("parsear reglas de elegibilidad: %w", err)
	}
	if len(file.Degrees) > 0 {
		rules.Degrees = file.Degrees
	}
	if len(file.Courses) > 0 {
		rules.Courses = file.Courses
	}
	if len(file.ResumeKeywords) > 0 {
		rules.ResumeKeywords = file.ResumeKeywords
	}
	rules.RequireResume = file.RequireResume
	return rules, nil
}
