package profile

import (
	"context"
	"fmt"
	"strings"

	"overstats/internal/components/assert"
	"overstats/internal/components/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("overstats.internal.profile")

const (
	report_builder_mode         = "builder.mode"
	report_builder_comparisons  = "builder.comparisons"
	report_builder_stats        = "builder.stats"
	report_builder_achievements = "builder.achievements"
)

// data-group-id of the dropdowns on the profile page
const (
	groupComparisons  = "comparisons"
	groupStats        = "stats"
	groupAchievements = "achievements"
)

const (
	classStatCard        = "card-stat-block"
	classAchievementCard = "achievement-card"
	classDisabled        = "m-disabled"
)

func categorySelector(categoryId string) Selector {
	return ByAttr("div", "data-category-id", categoryId)
}

// Builder turns a parsed profile page into a Model.
type Builder struct {
	tel    telemetry.API
	coerce Coercer
}

func NewBuilder(tel telemetry.API, useDecimal bool) Builder {
	assert.NotNil(tel)
	return Builder{
		tel:    telemetry.NewScopedAPI("profile", tel),
		coerce: NewCoercer(useDecimal),
	}
}

// Build scrapes every mode and the achievements off doc. Modes missing from the
// page are skipped. Any other problem aborts the build and no model is returned.
func (b Builder) Build(ctx context.Context, doc Node) (Model, error) {
	_, span := tracer.Start(ctx, "Builder.Build")
	defer span.End()

	fail := func(id string, err error) (Model, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build failed")
		b.tel.ReportBroken(id, err)
		return Model{}, err
	}

	var model Model
	for _, mode := range Modes {
		container, ok, err := FindUnique(doc, ByAttr("div", "id", mode))
		if err != nil {
			return fail(report_builder_mode, fmt.Errorf("mode %q: %w", mode, err))
		}
		if !ok {
			b.tel.ReportDebug(report_builder_mode, fmt.Errorf("%w: %s", ErrModeUnavailable, mode))
			span.AddEvent("mode unavailable", trace.WithAttributes(attribute.String("mode", mode)))
			continue
		}

		comparisons, err := b.comparisons(container)
		if err != nil {
			return fail(report_builder_comparisons, fmt.Errorf("mode %q: %w", mode, err))
		}
		stats, err := b.stats(container)
		if err != nil {
			return fail(report_builder_stats, fmt.Errorf("mode %q: %w", mode, err))
		}
		model.Modes.Set(mode, Mode{
			Comparisons: comparisons,
			Stats:       stats,
		})
	}

	achievements, err := b.achievements(doc)
	if err != nil {
		return fail(report_builder_achievements, err)
	}
	model.Achievements = achievements

	span.SetAttributes(
		attribute.Int("modes", model.Modes.Len()),
		attribute.Int("achievement_types", model.Achievements.Len()),
	)
	return model, nil
}

// comparisons reads the "Top Heroes" section, each comparison fragment is a list
// of alternating hero names and values.
func (b Builder) comparisons(container Node) (Ordered[Pairs], error) {
	var result Ordered[Pairs]

	dropdown, err := IndexDropdown(container, groupComparisons)
	if err != nil {
		return result, err
	}

	for _, label := range dropdown.Keys() {
		categoryId, _ := dropdown.Get(label)
		fragment, ok, err := FindUnique(container, categorySelector(categoryId))
		if err != nil {
			return Ordered[Pairs]{}, fmt.Errorf("comparison %q: %w", label, err)
		}
		if !ok {
			result.Set(label, Pairs{})
			continue
		}
		pairs, err := ExtractPairs(fragment.Text(), b.coerce)
		if err != nil {
			return Ordered[Pairs]{}, fmt.Errorf("comparison %q: %w", label, err)
		}
		result.Set(label, pairs)
	}
	return result, nil
}

// stats reads the "Career Stats" section, each hero fragment is made of cards
// whose first line is the title followed by alternating stat names and values.
func (b Builder) stats(container Node) (Ordered[HeroStats], error) {
	var result Ordered[HeroStats]

	dropdown, err := IndexDropdown(container, groupStats)
	if err != nil {
		return result, err
	}

	for _, hero := range dropdown.Keys() {
		categoryId, _ := dropdown.Get(hero)
		fragment, ok, err := FindUnique(container, categorySelector(categoryId))
		if err != nil {
			return Ordered[HeroStats]{}, fmt.Errorf("hero %q: %w", hero, err)
		}
		if !ok {
			result.Set(hero, HeroStats{})
			continue
		}

		var cards HeroStats
		for _, card := range fragment.Select(ByClass(classStatCard)) {
			lines := strings.Split(card.Text(), "\n")
			title := lines[0]
			if title == "" {
				return Ordered[HeroStats]{}, fmt.Errorf("%w: hero %q has a card without a title", ErrStructuralParse, hero)
			}
			pairs, err := pairLines(lines[1:], b.coerce)
			if err != nil {
				return Ordered[HeroStats]{}, fmt.Errorf("hero %q: card %q: %w", hero, title, err)
			}
			cards.Set(title, pairs)
		}
		result.Set(hero, cards)
	}
	return result, nil
}

func (b Builder) achievements(doc Node) (Ordered[AchievementList], error) {
	var result Ordered[AchievementList]

	dropdown, err := IndexDropdown(doc, groupAchievements)
	if err != nil {
		return result, err
	}

	for _, achievementType := range dropdown.Keys() {
		categoryId, _ := dropdown.Get(achievementType)
		fragment, ok, err := FindUnique(doc, categorySelector(categoryId))
		if err != nil {
			return Ordered[AchievementList]{}, fmt.Errorf("achievement type %q: %w", achievementType, err)
		}

		list := AchievementList{
			Earned:  []string{},
			Missing: []string{},
		}
		if ok {
			for _, card := range fragment.Select(ByClass(classAchievementCard)) {
				name := card.Text()
				if len(card.Select(ByClass(classDisabled))) > 0 {
					list.Missing = append(list.Missing, name)
					continue
				}
				list.Earned = append(list.Earned, name)
			}
		}
		result.Set(achievementType, list)
	}
	return result, nil
}
