// Package normalize turns raw remote match records into stored entities.
//
// Positions come from a stable sort by descending combat score, so ties keep
// the provider's order. Results compare the participant's team rounds to the
// opposing team's. A record missing a required field fails with a
// *models.NormalizationError naming the field.
package normalize
