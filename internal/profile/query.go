package profile

import (
	"context"
)

// Query arguments narrow progressively, an argument may only be given if every
// argument before it is given too. An empty string means "not given", the
// builder never stores an empty label so every key can be queried.
//
// Everything returned is a copy, modifying it does not affect the Profile.

type ComparisonQuery struct {
	Mode string
	// Type is the comparison, e.g. "Games Won".
	Type string
	Hero string
}

type StatQuery struct {
	Mode     string
	Hero     string
	Category string
	Name     string
}

type AchievementQuery struct {
	Type string
	// List is ListEarned or ListMissing.
	List string
}

type arg struct {
	name  string
	value string
}

// narrowDepth returns how many leading args are given.
func narrowDepth(args ...arg) (int, error) {
	depth := 0
	for i, a := range args {
		if a.value == "" {
			continue
		}
		if depth != i {
			return 0, invalidArgument("%s=%q given without %s", a.name, a.value, args[depth].name)
		}
		depth++
	}
	return depth, nil
}

func required(name, value string) error {
	if value == "" {
		return invalidArgument("%s is required", name)
	}
	return nil
}

func checkMode(mode string) error {
	if !validMode(mode) {
		return invalidArgument("mode=%q is not one of %v", mode, Modes)
	}
	return nil
}

func lookup[V any](o Ordered[V], path []string, key string) (V, error) {
	v, ok := o.Get(key)
	if !ok {
		return v, notFound(path, key, o.Keys())
	}
	return v, nil
}

func (p *Profile) mode(ctx context.Context, mode string) (Mode, error) {
	model, err := p.load(ctx)
	if err != nil {
		return Mode{}, err
	}
	return lookup(model.Modes, nil, mode)
}

// Modes returns the modes the player has data for.
func (p *Profile) Modes(ctx context.Context) ([]string, error) {
	model, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	return model.Modes.Keys(), nil
}

func (p *Profile) ComparisonTypes(ctx context.Context, mode string) ([]string, error) {
	if err := checkMode(mode); err != nil {
		return nil, err
	}
	m, err := p.mode(ctx, mode)
	if err != nil {
		return nil, err
	}
	return m.Comparisons.Keys(), nil
}

func (p *Profile) ComparisonHeroes(ctx context.Context, mode, comparisonType string) ([]string, error) {
	if err := required("comparison_type", comparisonType); err != nil {
		return nil, err
	}
	pairs, err := p.Comparisons(ctx, ComparisonQuery{Mode: mode, Type: comparisonType})
	if err != nil {
		return nil, err
	}
	return pairs.(Pairs).Keys(), nil
}

// Comparisons returns an Ordered[Pairs] of every comparison in the mode, the
// Pairs of a single comparison or the Value of a single hero, depending on how
// far q narrows.
func (p *Profile) Comparisons(ctx context.Context, q ComparisonQuery) (any, error) {
	if err := checkMode(q.Mode); err != nil {
		return nil, err
	}
	depth, err := narrowDepth(
		arg{"comparison_type", q.Type},
		arg{"comparison_hero", q.Hero},
	)
	if err != nil {
		return nil, err
	}

	m, err := p.mode(ctx, q.Mode)
	if err != nil {
		return nil, err
	}
	if depth == 0 {
		return m.Comparisons.Clone(clonePairs), nil
	}
	pairs, err := lookup(m.Comparisons, []string{q.Mode}, q.Type)
	if err != nil {
		return nil, err
	}
	if depth == 1 {
		return clonePairs(pairs), nil
	}
	return lookup(pairs, []string{q.Mode, q.Type}, q.Hero)
}

// Comparison is Comparisons fully narrowed.
func (p *Profile) Comparison(ctx context.Context, mode, comparisonType, hero string) (Value, error) {
	if err := required("comparison_hero", hero); err != nil {
		return Value{}, err
	}
	v, err := p.Comparisons(ctx, ComparisonQuery{Mode: mode, Type: comparisonType, Hero: hero})
	if err != nil {
		return Value{}, err
	}
	return v.(Value), nil
}

func (p *Profile) StatHeroes(ctx context.Context, mode string) ([]string, error) {
	if err := checkMode(mode); err != nil {
		return nil, err
	}
	m, err := p.mode(ctx, mode)
	if err != nil {
		return nil, err
	}
	return m.Stats.Keys(), nil
}

func (p *Profile) StatCategories(ctx context.Context, mode, hero string) ([]string, error) {
	if err := required("hero", hero); err != nil {
		return nil, err
	}
	cards, err := p.Stats(ctx, StatQuery{Mode: mode, Hero: hero})
	if err != nil {
		return nil, err
	}
	return cards.(HeroStats).Keys(), nil
}

func (p *Profile) StatNames(ctx context.Context, mode, hero, category string) ([]string, error) {
	if err := required("category", category); err != nil {
		return nil, err
	}
	pairs, err := p.Stats(ctx, StatQuery{Mode: mode, Hero: hero, Category: category})
	if err != nil {
		return nil, err
	}
	return pairs.(Pairs).Keys(), nil
}

// Stats returns an Ordered[HeroStats] of every hero in the mode, the HeroStats
// of one hero, the Pairs of one stat card or a single Value, depending on how
// far q narrows.
func (p *Profile) Stats(ctx context.Context, q StatQuery) (any, error) {
	if err := checkMode(q.Mode); err != nil {
		return nil, err
	}
	depth, err := narrowDepth(
		arg{"hero", q.Hero},
		arg{"category", q.Category},
		arg{"stat_name", q.Name},
	)
	if err != nil {
		return nil, err
	}

	m, err := p.mode(ctx, q.Mode)
	if err != nil {
		return nil, err
	}
	if depth == 0 {
		return m.Stats.Clone(cloneHeroStats), nil
	}
	cards, err := lookup(m.Stats, []string{q.Mode}, q.Hero)
	if err != nil {
		return nil, err
	}
	if depth == 1 {
		return cloneHeroStats(cards), nil
	}
	pairs, err := lookup(cards, []string{q.Mode, q.Hero}, q.Category)
	if err != nil {
		return nil, err
	}
	if depth == 2 {
		return clonePairs(pairs), nil
	}
	return lookup(pairs, []string{q.Mode, q.Hero, q.Category}, q.Name)
}

// Stat is Stats fully narrowed.
func (p *Profile) Stat(ctx context.Context, mode, hero, category, name string) (Value, error) {
	if err := required("stat_name", name); err != nil {
		return Value{}, err
	}
	v, err := p.Stats(ctx, StatQuery{Mode: mode, Hero: hero, Category: category, Name: name})
	if err != nil {
		return Value{}, err
	}
	return v.(Value), nil
}

func (p *Profile) AchievementTypes(ctx context.Context) ([]string, error) {
	model, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	return model.Achievements.Keys(), nil
}

// Achievements returns an Ordered[AchievementList] of every achievement type,
// the AchievementList of one type or one of its []string lists, depending on
// how far q narrows.
func (p *Profile) Achievements(ctx context.Context, q AchievementQuery) (any, error) {
	depth, err := narrowDepth(
		arg{"achievement_type", q.Type},
		arg{"list_name", q.List},
	)
	if err != nil {
		return nil, err
	}
	if depth == 2 && q.List != ListEarned && q.List != ListMissing {
		return nil, invalidArgument("list_name=%q is not %q or %q", q.List, ListEarned, ListMissing)
	}

	model, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	if depth == 0 {
		return model.Achievements.Clone(AchievementList.clone), nil
	}
	list, err := lookup(model.Achievements, nil, q.Type)
	if err != nil {
		return nil, err
	}
	switch {
	case depth == 1:
		return list.clone(), nil
	case q.List == ListEarned:
		return append([]string{}, list.Earned...), nil
	}
	return append([]string{}, list.Missing...), nil
}

// AchievementNames is Achievements fully narrowed.
func (p *Profile) AchievementNames(ctx context.Context, achievementType, listName string) ([]string, error) {
	if err := required("list_name", listName); err != nil {
		return nil, err
	}
	names, err := p.Achievements(ctx, AchievementQuery{Type: achievementType, List: listName})
	if err != nil {
		return nil, err
	}
	return names.([]string), nil
}
