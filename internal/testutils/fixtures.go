package testutils

import "github.com/aretw0/goap/pkg/domain"

func action(key string, cost float64, pre, eff map[string]float64) domain.Action {
	return domain.Action{
		Key:           key,
		Cost:          cost,
		Preconditions: domain.NewState(key+".pre", pre),
		Effects:       domain.NewState(key, eff),
	}
}

// Household returns the reference catalogue used across tests: from a start
// of {HasDirtyDishes: 1}, reaching {Fed: 1} takes Idle, Work, DishWash, Shop, Eat.
func Household() domain.Catalogue {
	return domain.Catalogue{
		"Eat": action("Eat", 1,
			map[string]float64{"HasFood": 1, "HasCleanDishes": 1},
			map[string]float64{"HasDirtyDishes": 1, "HasCleanDishes": -1, "Fed": 1, "HasFood": -1}),
		"Shop": action("Shop", 1,
			map[string]float64{"Money": 10},
			map[string]float64{"HasFood": 1, "Money": -10}),
		"DishWash": action("DishWash", 1,
			map[string]float64{"HasDirtyDishes": 1, "Rested": 1},
			map[string]float64{"HasDirtyDishes": -1, "HasCleanDishes": 1, "Rested": -1}),
		"Work": action("Work", 1,
			map[string]float64{"Rested": 1},
			map[string]float64{"Money": 10}),
		"Idle": action("Idle", 1,
			nil,
			map[string]float64{"Rested": 1}),
	}
}

// HouseholdStart is the start state paired with Household.
func HouseholdStart() domain.State {
	return domain.NewState("START", map[string]float64{"HasDirtyDishes": 1})
}

// HouseholdGoal is the goal paired with Household (checked with "at least").
func HouseholdGoal() domain.State {
	return domain.NewState("END", map[string]float64{"Fed": 1})
}

// HouseholdPlan is the action sequence expected for the Household problem.
func HouseholdPlan() []string {
	return []string{"Idle", "Work", "DishWash", "Shop", "Eat"}
}

// Debug returns the minimal single-action catalogue: "DebugGetSimple" sets Debug to 1.
func Debug() domain.Catalogue {
	return domain.Catalogue{
		"DebugGetSimple": action("DebugGetSimple", 1, nil, map[string]float64{"Debug": 1}),
	}
}
