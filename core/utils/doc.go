// Package utils provides small conversion and arithmetic helpers shared by the
// handlers and the stat calculations.
package utils
