package game

import (
	"github.com/hexciv/hexciv/internal/config"
)

// Map generation functions
func MapRadius() int {
	return config.Get().Game.Map.Radius
}

func MapNoiseScale() float64 {
	return config.Get().Game.Map.NoiseScale
}

func MapSeed() int64 {
	return config.Get().Game.Map.Seed
}

// Combat functions
func AttackMovementCost() int {
	return config.Get().Game.Combat.AttackMovementCost
}

func CounterattackMultiplier() float64 {
	return config.Get().Game.Combat.CounterattackMultiplier
}

// Culture functions
func CultureBaseThreshold() int {
	return config.Get().Game.Culture.BaseThreshold
}

func CultureThresholdStep() int {
	return config.Get().Game.Culture.ThresholdStep
}

func MaxExpansionRings() int {
	return config.Get().Game.Culture.MaxExpansionRings
}

// City functions
func CityCenterFood() int {
	return config.Get().Game.City.CenterFood
}

func CityCenterProduction() int {
	return config.Get().Game.City.CenterProduction
}

func CityGrowthFactor() int {
	return config.Get().Game.City.GrowthFactor
}
