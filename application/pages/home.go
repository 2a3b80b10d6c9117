package pages

import (
	"context"

	"pom_automation/application/pom"
	"pom_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

type HomeElement string

const (
	HomeHero        HomeElement = "hero"
	HomeHeroTitle   HomeElement = "heroTitle"
	HomeHeroCTA     HomeElement = "heroCTA"
	HomeFeatureList HomeElement = "featureList"
	HomeFeature     HomeElement = "feature"
)

const HomePath = "/"

var homeSelectors = pom.SelectorTable[HomeElement]{
	HomeHero:        "section.hero",
	HomeHeroTitle:   "section.hero h1",
	HomeHeroCTA:     "section.hero [data-testid='cta']",
	HomeFeatureList: ".features",
	HomeFeature:     ".features .feature",
}

// HomePage is the landing page
type HomePage struct {
	*pom.Page[HomeElement]
	Header *Header
	Footer *Footer
}

func NewHomePage(b interfaces.Browser, settings pom.Settings, logger *logrus.Logger) (*HomePage, error) {
	page, err := pom.NewPage(b, "home", HomePath, homeSelectors, settings, logger)
	if err != nil {
		return nil, err
	}
	header, err := NewHeader(b, settings, logger)
	if err != nil {
		return nil, err
	}
	footer, err := NewFooter(b, settings, logger)
	if err != nil {
		return nil, err
	}
	return &HomePage{Page: page, Header: header, Footer: footer}, nil
}

// IsLoaded reports whether the page finished loading and header, footer and hero are visible
func (h *HomePage) IsLoaded(ctx context.Context) (bool, error) {
	return h.Loaded(ctx,
		h.Header.IsVisible,
		h.Footer.IsVisible,
		func(ctx context.Context) (bool, error) { return h.IsElementVisible(ctx, HomeHero) },
	)
}

func (h *HomePage) GetHeroTitle(ctx context.Context) (string, error) {
	return h.GetText(ctx, HomeHeroTitle)
}

func (h *HomePage) ClickCallToAction(ctx context.Context) error {
	return h.Click(ctx, HomeHeroCTA)
}

// FeatureCount counts feature cards without waiting for them
func (h *HomePage) FeatureCount(ctx context.Context) (int, error) {
	return h.Count(ctx, HomeFeature)
}
