package compare

import (
	"github.com/goccy/go-json"
)

// JSONFormatter writes a comparison set as JSON, with a summary of the
// scenario that reaches independence earliest.
type JSONFormatter struct {
	Pretty bool
}

type comparisonDocument struct {
	*ComparisonSet
	EarliestFire *earliestFire `json:"earliestFire,omitempty"`
}

type earliestFire struct {
	ScenarioName string  `json:"scenarioName"`
	Age          float64 `json:"age"`
	OnTarget     bool    `json:"onTarget"`
}

// Format renders compSet. Ties on age go to the base plan, then to the
// earlier alternative.
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	doc := comparisonDocument{ComparisonSet: compSet, EarliestFire: findEarliestFire(compSet)}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func findEarliestFire(compSet *ComparisonSet) *earliestFire {
	if compSet == nil {
		return nil
	}
	candidates := make([]ComparisonResult, 0, len(compSet.AlternativeResults)+1)
	if compSet.BaseResult != nil {
		candidates = append(candidates, *compSet.BaseResult)
	}
	candidates = append(candidates, compSet.AlternativeResults...)

	var best *earliestFire
	for _, r := range candidates {
		age, ok := r.FireAge()
		if !ok || (best != nil && age >= best.Age) {
			continue
		}
		best = &earliestFire{ScenarioName: r.ScenarioName, Age: age, OnTarget: r.AchievedAge != nil}
	}
	return best
}
