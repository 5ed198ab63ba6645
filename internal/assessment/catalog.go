// Package assessment scores the vehicle self-assessment questionnaire and
// turns it into a severity category, a booking service label and a price.
// Nothing here touches storage; every function is deterministic.
package assessment

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryLight    Category = "Light"
	CategoryModerate Category = "Moderate"
	CategorySevere   Category = "Severe"
)

// Categories is ordered from least to most severe.
var Categories = []Category{CategoryLight, CategoryModerate, CategorySevere}

func (c Category) severity() int {
	switch c {
	case CategoryLight:
		return 1
	case CategoryModerate:
		return 2
	case CategorySevere:
		return 3
	default:
		return 0
	}
}

func (c Category) IsValid() bool {
	return c.severity() > 0
}

func (c Category) Label() string {
	switch c {
	case CategoryLight:
		return "🚗 Light Condition"
	case CategoryModerate:
		return "🚙 Moderate Condition"
	case CategorySevere:
		return "🌊 Severe / Flooded Condition"
	default:
		return ""
	}
}

// moreSevere returns whichever of a and b ranks higher. An empty category
// loses to any valid one.
func moreSevere(a, b Category) Category {
	if b.severity() > a.severity() {
		return b
	}
	return a
}

type Section string

const (
	SectionInterior Section = "interior"
	SectionExterior Section = "exterior"
)

type ServiceType string

const (
	ServiceTypeInterior ServiceType = "interior"
	ServiceTypeExterior ServiceType = "exterior"
	ServiceTypeBoth     ServiceType = "both"
)

var ServiceTypes = []ServiceType{ServiceTypeInterior, ServiceTypeExterior, ServiceTypeBoth}

// ParseServiceType maps anything unrecognised to a full service.
func ParseServiceType(value string) ServiceType {
	switch ServiceType(value) {
	case ServiceTypeInterior, ServiceTypeExterior:
		return ServiceType(value)
	default:
		return ServiceTypeBoth
	}
}

func (t ServiceType) Label() string {
	switch t {
	case ServiceTypeInterior:
		return "Interior Only"
	case ServiceTypeExterior:
		return "Exterior Only"
	default:
		return "Full Service"
	}
}

// ServiceLabel is the booking service name for a category and scope, e.g.
// "🚙 Moderate Condition (Exterior Only)".
func ServiceLabel(category Category, serviceType ServiceType) string {
	return fmt.Sprintf("%s (%s)", category.Label(), serviceType.Label())
}

type ServiceOption struct {
	Label       string      `json:"label"`
	Category    Category    `json:"category"`
	ServiceType ServiceType `json:"serviceType"`
}

// ServiceOptions lists every bookable service, most severe first.
func ServiceOptions() []ServiceOption {
	options := make([]ServiceOption, 0, len(Categories)*len(ServiceTypes))
	for i := len(Categories) - 1; i >= 0; i-- {
		for _, serviceType := range ServiceTypes {
			options = append(options, ServiceOption{
				Label:       ServiceLabel(Categories[i], serviceType),
				Category:    Categories[i],
				ServiceType: serviceType,
			})
		}
	}
	return options
}

type sectionPrices struct {
	interior decimal.Decimal
	exterior decimal.Decimal
}

var priceTable = map[Category]sectionPrices{
	CategoryLight:    {interior: decimal.NewFromInt(400), exterior: decimal.NewFromInt(400)},
	CategoryModerate: {interior: decimal.NewFromInt(800), exterior: decimal.NewFromInt(900)},
	CategorySevere:   {interior: decimal.NewFromInt(2000), exterior: decimal.NewFromInt(1500)},
}

// Price is the PHP price of detailing one section at the given category.
func Price(section Section, category Category) (decimal.Decimal, bool) {
	prices, ok := priceTable[category]
	if !ok {
		return decimal.Zero, false
	}

	switch section {
	case SectionInterior:
		return prices.interior, true
	case SectionExterior:
		return prices.exterior, true
	default:
		return decimal.Zero, false
	}
}

type Option struct {
	Label    string   `json:"label"`
	Category Category `json:"category"`
}

type Question struct {
	Text    string   `json:"text"`
	Icon    string   `json:"icon"`
	Options []Option `json:"options"`
}

func question(text, icon, light, moderate, severe string) Question {
	return Question{
		Text: text,
		Icon: icon,
		Options: []Option{
			{Label: light, Category: CategoryLight},
			{Label: moderate, Category: CategoryModerate},
			{Label: severe, Category: CategorySevere},
		},
	}
}

var interiorQuestions = []Question{
	question("Overall Interior Cleanliness", "🏠",
		"Just needs a quick tidy-up",
		"Has visible dirt and some stains",
		"Very dirty, muddy, or has mold"),
	question("Interior Smell", "👃",
		"Smells fresh and clean",
		"Has a slight, noticeable odor",
		"Has a strong, bad smell"),
	question("Seats & Upholstery", "🪑",
		"Seats are clean, no stains",
		"Seats have stains or pet hair",
		"Seats are moldy or water-damaged"),
	question("Carpets & Mats", "🧽",
		"Light crumbs or dust",
		"Visible dirt, mud, or spills",
		"Flooded, soaked, or moldy"),
	question("Dashboard & Panels", "🎛️",
		"Mostly clean, not sticky",
		"Dusty vents or smudges",
		"Sticky, moldy, or water-damaged"),
}

var exteriorQuestions = []Question{
	question("Paint Condition", "🎨",
		"Shiny and clean, no major flaws",
		"Light water spots or fine scratches",
		"Paint is dull, scratched, or faded"),
	question("Stuck-on Grime (Tar, Sap)", "🌳",
		"No stuck-on grime",
		"A few spots of tar or sap",
		"Lots of stuck-on grime"),
	question("Wheels & Tires", "🛞",
		"Wheels are clean, tires look new",
		"Noticeable brake dust or dirt",
		"Heavy grime, very dirty"),
	question("Windows & Glass", "🪟",
		"Clean and streak-free",
		"Water spots or bug splatters",
		"Hard water stains or heavy grime"),
	question("Undercarriage & Wheel Wells", "🔧",
		"Clean or lightly soiled",
		"Some mud or road dirt",
		"Heavy mud or caked-on dirt"),
}

func questionsFor(section Section) []Question {
	switch section {
	case SectionInterior:
		return interiorQuestions
	case SectionExterior:
		return exteriorQuestions
	default:
		return nil
	}
}

type Catalog struct {
	Interior     []Question    `json:"interior"`
	Exterior     []Question    `json:"exterior"`
	ServiceTypes []ServiceType `json:"serviceTypes"`
}

// Questions returns a copy of the questionnaire; callers may not mutate the
// shared catalog.
func Questions() Catalog {
	return Catalog{
		Interior:     cloneQuestions(interiorQuestions),
		Exterior:     cloneQuestions(exteriorQuestions),
		ServiceTypes: append([]ServiceType(nil), ServiceTypes...),
	}
}

func cloneQuestions(questions []Question) []Question {
	cloned := make([]Question, len(questions))
	for i, q := range questions {
		cloned[i] = Question{
			Text:    q.Text,
			Icon:    q.Icon,
			Options: append([]Option(nil), q.Options...),
		}
	}
	return cloned
}
