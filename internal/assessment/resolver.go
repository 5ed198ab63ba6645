package assessment

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Answers maps "<section>_<questionIndex>" to the chosen option index.
type Answers map[string]int

// AnswerKey builds the Answers key for a question.
func AnswerKey(section Section, questionIndex int) string {
	return fmt.Sprintf("%s_%d", section, questionIndex)
}

type Result struct {
	ServiceType      ServiceType      `json:"serviceType"`
	Complete         bool             `json:"complete"`
	Category         Category         `json:"category,omitempty"`
	CategoryLabel    string           `json:"categoryLabel,omitempty"`
	ServiceLabel     string           `json:"serviceLabel,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	InteriorCategory Category         `json:"interiorCategory,omitempty"`
	ExteriorCategory Category         `json:"exteriorCategory,omitempty"`
	Answered         int              `json:"answered"`
	TotalQuestions   int              `json:"totalQuestions"`
}

type selection struct {
	section  Section
	category Category
}

// sectionsFor lists the questionnaire sections a service type is scored on.
func sectionsFor(serviceType ServiceType) []Section {
	switch serviceType {
	case ServiceTypeInterior:
		return []Section{SectionInterior}
	case ServiceTypeExterior:
		return []Section{SectionExterior}
	default:
		return []Section{SectionInterior, SectionExterior}
	}
}

// Resolve never fails. Entries naming an unknown section, question or option
// are dropped, as are answers for a section outside the chosen service type.
// A response set with nothing usable comes back incomplete.
func Resolve(answers Answers, serviceType ServiceType) Result {
	serviceType = ParseServiceType(string(serviceType))
	sections := sectionsFor(serviceType)

	result := Result{ServiceType: serviceType}
	for _, section := range sections {
		result.TotalQuestions += len(questionsFor(section))
	}

	var interior, exterior Category
	for key, optionIndex := range answers {
		selected, ok := lookup(key, optionIndex)
		if !ok || !slices.Contains(sections, selected.section) {
			continue
		}
		result.Answered++

		switch selected.section {
		case SectionInterior:
			interior = moreSevere(interior, selected.category)
		case SectionExterior:
			exterior = moreSevere(exterior, selected.category)
		}
	}
	result.InteriorCategory = interior
	result.ExteriorCategory = exterior

	var (
		overall Category
		price   decimal.Decimal
	)
	switch serviceType {
	case ServiceTypeInterior:
		overall = interior
		price, _ = Price(SectionInterior, interior)
	case ServiceTypeExterior:
		overall = exterior
		price, _ = Price(SectionExterior, exterior)
	default:
		overall = moreSevere(interior, exterior)
		interiorPrice, _ := Price(SectionInterior, interior)
		exteriorPrice, _ := Price(SectionExterior, exterior)
		price = interiorPrice.Add(exteriorPrice)
	}

	if !overall.IsValid() {
		return result
	}

	result.Complete = true
	result.Category = overall
	result.CategoryLabel = overall.Label()
	result.ServiceLabel = ServiceLabel(overall, serviceType)
	result.Price = &price
	return result
}

func lookup(key string, optionIndex int) (selection, bool) {
	sectionName, indexText, found := strings.Cut(key, "_")
	if !found {
		return selection{}, false
	}

	section := Section(sectionName)
	questions := questionsFor(section)
	questionIndex, err := strconv.Atoi(indexText)
	if err != nil || questionIndex < 0 || questionIndex >= len(questions) {
		return selection{}, false
	}
	// One spelling per question, so "interior_01" cannot answer twice.
	if key != AnswerKey(section, questionIndex) {
		return selection{}, false
	}

	options := questions[questionIndex].Options
	if optionIndex < 0 || optionIndex >= len(options) {
		return selection{}, false
	}

	return selection{section: section, category: options[optionIndex].Category}, true
}
