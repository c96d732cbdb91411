package metrics

import (
	"context"
	"strings"

	"github.com/baserep/baserep/internal/identity"
	"github.com/baserep/baserep/internal/types"
)

const onchainSummerPointsPerBadge = 20

// Hackathon placement points, keyed by keyword found in the attestation
// payload.
const (
	hackathonWinnerPoints     = 50
	hackathonFinalistPoints   = 30
	hackathonSubmissionPoints = 20
)

// BadgeSource supplies attestation lookups for the seasonal badge metrics.
type BadgeSource interface {
	Attestations(ctx context.Context, schemaUID string, recipient types.Address) ([]identity.Attestation, error)
}

// OnchainSummerCalculator scores Onchain Summer participation: a flat per
// badge value, capped. Zero when the schema UID is not configured.
type OnchainSummerCalculator struct {
	source    BadgeSource
	schemaUID string
}

func NewOnchainSummerCalculator(source BadgeSource, schemaUID string) *OnchainSummerCalculator {
	return &OnchainSummerCalculator{source: source, schemaUID: schemaUID}
}

func (c *OnchainSummerCalculator) Name() string { return types.MetricOnchainSummer }

func (c *OnchainSummerCalculator) Calculate(ctx context.Context, input types.ScoreInput) types.MetricScore {
	maxScore := float64(types.WeightOnchainSummer * 10)

	if c.schemaUID == "" {
		return degraded(types.MetricOnchainSummer, types.WeightOnchainSummer, maxScore, nil, "badge schema not configured")
	}

	attestations, err := c.source.Attestations(ctx, c.schemaUID, input.Address)
	if err != nil {
		return degraded(types.MetricOnchainSummer, types.WeightOnchainSummer, maxScore, err, "badge lookup failed")
	}

	score := float64(len(attestations) * onchainSummerPointsPerBadge)
	return bounded(types.MetricOnchainSummer, types.WeightOnchainSummer, maxScore, score)
}

// HackathonCalculator scores hackathon participation, tiered by the best
// placement keyword found in the attestation payloads.
type HackathonCalculator struct {
	source    BadgeSource
	schemaUID string
}

func NewHackathonCalculator(source BadgeSource, schemaUID string) *HackathonCalculator {
	return &HackathonCalculator{source: source, schemaUID: schemaUID}
}

func (c *HackathonCalculator) Name() string { return types.MetricHackathon }

func (c *HackathonCalculator) Calculate(ctx context.Context, input types.ScoreInput) types.MetricScore {
	maxScore := float64(types.WeightHackathon * 10)

	if c.schemaUID == "" {
		return degraded(types.MetricHackathon, types.WeightHackathon, maxScore, nil, "hackathon schema not configured")
	}

	attestations, err := c.source.Attestations(ctx, c.schemaUID, input.Address)
	if err != nil {
		return degraded(types.MetricHackathon, types.WeightHackathon, maxScore, err, "hackathon lookup failed")
	}

	score := 0.0
	for _, attestation := range attestations {
		score += float64(placementPoints(attestation.DecodedDataJSON))
	}

	return bounded(types.MetricHackathon, types.WeightHackathon, maxScore, score)
}

func placementPoints(payload string) int {
	lowered := strings.ToLower(payload)
	switch {
	case strings.Contains(lowered, "winner"):
		return hackathonWinnerPoints
	case strings.Contains(lowered, "finalist"):
		return hackathonFinalistPoints
	default:
		return hackathonSubmissionPoints
	}
}
